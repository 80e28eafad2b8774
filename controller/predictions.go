package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mfields/courtside/db"
	"github.com/mfields/courtside/model"
)

// scheduleWindow is how far ahead the schedule view looks.
const scheduleWindow = 3 * 24 * time.Hour

// GetSchedule returns the player's upcoming games over the next three
// days across all their leagues, grouped by day. A Pending prediction is
// created the first time a game shows up in the view, so submitting later
// is just a state transition on an existing row.
func (c *controller) GetSchedule(ctx context.Context, playerID model.PlayerID) ([]model.ScheduleDay, error) {
	leagues, err := c.db.ListLeaguesForPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("error loading leagues: %w", err)
	}

	now := c.clock.Now().UTC()
	games, err := c.db.ListGamesBetween(ctx, now, now.Add(scheduleWindow))
	if err != nil {
		return nil, fmt.Errorf("error loading games: %w", err)
	}

	days := make([]model.ScheduleDay, 0, 3)
	for _, game := range games {
		if !game.Date.After(now) {
			continue
		}

		included := includedLeagues(leagues, &game)
		if len(included) == 0 {
			continue
		}

		entry, err := c.scheduleEntry(ctx, playerID, &game, included)
		if err != nil {
			return nil, err
		}

		day := entry.Date.Format(time.DateOnly)
		if n := len(days); n > 0 && days[n-1].Date == day {
			days[n-1].Games = append(days[n-1].Games, *entry)
		} else {
			days = append(days, model.ScheduleDay{Date: day, Games: []model.ScheduleEntry{*entry}})
		}
	}

	return days, nil
}

func (c *controller) scheduleEntry(ctx context.Context, playerID model.PlayerID, game *model.Game, included []model.League) (*model.ScheduleEntry, error) {
	p, err := c.db.FindPrediction(ctx, playerID, game.ID)
	if err != nil {
		if !errors.Is(err, db.ErrPredictionNotFound) {
			return nil, fmt.Errorf("error looking up prediction: %w", err)
		}
		p, err = c.db.AddPrediction(ctx, playerID, game.ID)
		if err != nil {
			return nil, fmt.Errorf("error creating prediction: %w", err)
		}
	}

	names := make([]string, 0, len(included))
	for _, l := range included {
		names = append(names, l.Name)
	}

	entry := &model.ScheduleEntry{
		PredictionID: p.ID,
		Date:         game.Date,
		Status:       p.Status,
		AwayTeam:     game.AwayTeam.Friendly(),
		HomeTeam:     game.HomeTeam.Friendly(),
		Leagues:      names,
	}
	if p.Status != model.PREDICTION_PENDING {
		entry.AwayScore = p.AwayScore
		entry.HomeScore = p.HomeScore
	}
	return entry, nil
}

// SubmitPrediction moves a prediction from Pending to Submitted, exactly
// once, and freezes both the predicted scores and the set of leagues the
// prediction counts toward. Leagues the player joins afterwards never
// pick it up.
func (c *controller) SubmitPrediction(ctx context.Context, playerID model.PlayerID, predictionID model.PredictionID, awayScore, homeScore int) error {
	if awayScore < 0 || homeScore < 0 {
		return model.Validationf("predicted scores must not be negative")
	}

	p, err := c.db.GetPrediction(ctx, predictionID)
	if err != nil {
		return err
	}
	if p.PlayerID != playerID {
		return &model.AuthorizationError{
			Msg: fmt.Sprintf("prediction %d does not belong to player %d", predictionID, playerID),
		}
	}
	if p.Status != model.PREDICTION_PENDING {
		return &model.ConflictError{
			Msg: fmt.Sprintf("prediction %d has already been submitted", predictionID),
		}
	}

	game, err := c.db.GetGame(ctx, p.GameID)
	if err != nil {
		return fmt.Errorf("error looking up game for prediction %d: %w", predictionID, err)
	}
	if !game.Date.After(c.clock.Now().UTC()) {
		// Signaled distinctly so the client knows to refresh its view.
		return &model.ConflictError{
			Msg:     fmt.Sprintf("game %d has already started, predictions can no longer be submitted", game.ID),
			Expired: true,
		}
	}

	leagues, err := c.db.ListLeaguesForPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("error loading leagues for prediction %d: %w", predictionID, err)
	}
	leagueIDs := make([]model.LeagueID, 0, len(leagues))
	for _, l := range includedLeagues(leagues, game) {
		leagueIDs = append(leagueIDs, l.ID)
	}

	ok, err := c.db.SubmitPrediction(ctx, predictionID, awayScore, homeScore, leagueIDs)
	if err != nil {
		return err
	}
	if !ok {
		// Lost a race with another submit of the same prediction.
		return &model.ConflictError{
			Msg: fmt.Sprintf("prediction %d has already been submitted", predictionID),
		}
	}
	return nil
}

func includedLeagues(leagues []model.League, game *model.Game) []model.League {
	included := make([]model.League, 0, len(leagues))
	for _, l := range leagues {
		if l.Counts(game) {
			included = append(included, l)
		}
	}
	return included
}
