package controller

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/mfields/courtside/model"
	"github.com/mfields/courtside/testutils"
)

func TestGetSchedule(t *testing.T) {
	ctrl, fakeBDL := newTestController(t)
	defer fakeBDL.Close()

	ctx := context.Background()

	// A team league keeps the view independent of games other tests add.
	player := addTestPlayer(t, "sched-p", "92000001")
	league, err := ctrl.CreateLeague(ctx, player.ID, "Jazz Watchers", model.MODE_TEAM, "UTA")
	if err != nil {
		t.Fatalf("error creating league: %v", err)
	}

	inWindow := testutils.NewTestGame(930, "UTA", "DEN", 24*time.Hour)
	wrongTeams := testutils.NewTestGame(931, "MIL", "IND", 24*time.Hour)
	pastWindow := testutils.NewTestGame(932, "UTA", "SAC", 5*24*time.Hour)
	for _, g := range []*model.Game{inWindow, wrongTeams, pastWindow} {
		if err := testDB.DB.AddGame(ctx, g); err != nil {
			t.Fatalf("error adding game: %v", err)
		}
	}

	days, err := ctrl.GetSchedule(ctx, player.ID)
	if err != nil {
		t.Fatalf("error getting schedule: %v", err)
	}
	if len(days) != 1 || len(days[0].Games) != 1 {
		t.Fatalf("schedule not as expected - actual: %v", days)
	}
	if days[0].Date != "2025-01-16" {
		t.Errorf("expected day 2025-01-16, got: %s", days[0].Date)
	}

	entry := days[0].Games[0]
	if entry.Status != model.PREDICTION_PENDING {
		t.Errorf("expected a pending prediction, got: %s", entry.Status)
	}
	if entry.AwayTeam != "Utah Jazz" || entry.HomeTeam != "Denver Nuggets" {
		t.Errorf("teams not as expected: %s at %s", entry.AwayTeam, entry.HomeTeam)
	}
	if !reflect.DeepEqual([]string{league.Name}, entry.Leagues) {
		t.Errorf("leagues not as expected: %v", entry.Leagues)
	}
	if entry.PredictionID <= 0 {
		t.Fatalf("prediction was not created: %v", entry)
	}

	// The same view twice reuses the prediction instead of making another.
	again, err := ctrl.GetSchedule(ctx, player.ID)
	if err != nil {
		t.Fatalf("error getting schedule again: %v", err)
	}
	if again[0].Games[0].PredictionID != entry.PredictionID {
		t.Errorf("expected prediction %d, got %d", entry.PredictionID, again[0].Games[0].PredictionID)
	}
}

func TestSubmitPrediction(t *testing.T) {
	ctrl, fakeBDL := newTestController(t)
	defer fakeBDL.Close()

	ctx := context.Background()

	player := addTestPlayer(t, "submit-p", "92000002")
	league, err := ctrl.CreateLeague(ctx, player.ID, "Submitters", model.MODE_CLASSIC, "")
	if err != nil {
		t.Fatalf("error creating league: %v", err)
	}

	game := testutils.NewTestGame(940, "BKN", "PHI", 24*time.Hour)
	if err := testDB.DB.AddGame(ctx, game); err != nil {
		t.Fatalf("error adding game: %v", err)
	}
	pred, err := testDB.DB.AddPrediction(ctx, player.ID, game.ID)
	if err != nil {
		t.Fatalf("error adding prediction: %v", err)
	}

	// Rejected inputs first, all of which must leave the row Pending.
	var vErr *model.ValidationError
	if err := ctrl.SubmitPrediction(ctx, player.ID, pred.ID, -1, 100); !errors.As(err, &vErr) {
		t.Errorf("expected a validation error for a negative score, got: %v", err)
	}

	var aErr *model.AuthorizationError
	if err := ctrl.SubmitPrediction(ctx, testutils.Ava.ID, pred.ID, 100, 100); !errors.As(err, &aErr) {
		t.Errorf("expected an authorization error for another player's prediction, got: %v", err)
	}

	if err := ctrl.SubmitPrediction(ctx, player.ID, pred.ID, 105, 99); err != nil {
		t.Fatalf("error submitting prediction: %v", err)
	}

	saved, err := testDB.DB.GetPrediction(ctx, pred.ID)
	if err != nil {
		t.Fatalf("error reading prediction back: %v", err)
	}
	if saved.Status != model.PREDICTION_SUBMITTED || saved.AwayScore != 105 || saved.HomeScore != 99 {
		t.Errorf("prediction not submitted as expected: %v", saved)
	}
	if !reflect.DeepEqual([]model.LeagueID{league.ID}, saved.LeagueIDs) {
		t.Errorf("frozen league set not as expected: %v", saved.LeagueIDs)
	}

	// A second submit is a conflict, but not an expired one.
	var cErr *model.ConflictError
	if err := ctrl.SubmitPrediction(ctx, player.ID, pred.ID, 90, 90); !errors.As(err, &cErr) {
		t.Fatalf("expected a conflict error on resubmit, got: %v", err)
	}
	if cErr.Expired {
		t.Error("resubmit conflict should not be marked expired")
	}
}

func TestSubmitPredictionAfterTipOff(t *testing.T) {
	ctrl, fakeBDL := newTestController(t)
	defer fakeBDL.Close()

	ctx := context.Background()

	player := addTestPlayer(t, "late-p", "92000003")
	game := testutils.NewTestGame(941, "UTA", "PHX", -2*time.Hour)
	if err := testDB.DB.AddGame(ctx, game); err != nil {
		t.Fatalf("error adding game: %v", err)
	}
	pred, err := testDB.DB.AddPrediction(ctx, player.ID, game.ID)
	if err != nil {
		t.Fatalf("error adding prediction: %v", err)
	}

	var cErr *model.ConflictError
	err = ctrl.SubmitPrediction(ctx, player.ID, pred.ID, 100, 100)
	if !errors.As(err, &cErr) {
		t.Fatalf("expected a conflict error, got: %v", err)
	}
	if !cErr.Expired {
		t.Error("submitting after tip-off should be marked expired")
	}

	saved, err := testDB.DB.GetPrediction(ctx, pred.ID)
	if err != nil {
		t.Fatalf("error reading prediction back: %v", err)
	}
	if saved.Status != model.PREDICTION_PENDING {
		t.Errorf("expected the prediction to stay pending, got: %s", saved.Status)
	}
}
