// Package demo runs a handful of bot accounts that react to invites and
// fill in predictions, so a fresh install has someone to play against.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/mfields/courtside/auth"
	"github.com/mfields/courtside/controller"
	"github.com/mfields/courtside/db"
	"github.com/mfields/courtside/model"
)

var botNames = []string{
	"bot1", "bot2", "bot3",
	"bot4", "bot5", "bot6",
	"bot7", "bot8", "bot9",
}

type Bots struct {
	ctrl controller.C
	auth auth.Service
	db   db.DB
}

func New(ctrl controller.C, auth auth.Service, db db.DB) *Bots {
	return &Bots{
		ctrl: ctrl,
		auth: auth,
		db:   db,
	}
}

// UpdateAll runs every bot once. A failing bot is logged and skipped so
// the others still get their turn.
func (b *Bots) UpdateAll(ctx context.Context) {
	for _, name := range botNames {
		if err := b.update(ctx, name); err != nil {
			log.Printf("error updating bot %s: %v", name, err)
		}
	}
}

func (b *Bots) update(ctx context.Context, name string) error {
	bot, err := b.ensure(ctx, name)
	if err != nil {
		return err
	}

	if err := b.acceptFriendRequests(ctx, bot); err != nil {
		return err
	}
	if err := b.acceptLeagueInvites(ctx, bot); err != nil {
		return err
	}
	return b.submitPredictions(ctx, bot)
}

// ensure registers the bot account on first use. Bots never log in, so
// the password is random and thrown away.
func (b *Bots) ensure(ctx context.Context, name string) (*model.Player, error) {
	bot, err := b.db.GetPlayerByUsername(ctx, name)
	if err == nil {
		return bot, nil
	}
	if !errors.Is(err, db.ErrPlayerNotFound) {
		return nil, fmt.Errorf("error looking up bot: %w", err)
	}

	return b.auth.Register(ctx, name, gofakeit.Password(true, true, true, false, false, 20))
}

func (b *Bots) acceptFriendRequests(ctx context.Context, bot *model.Player) error {
	requests, err := b.ctrl.ListFriendRequests(ctx, bot.ID)
	if err != nil {
		return err
	}
	for _, r := range requests {
		if err := b.ctrl.AcceptFriend(ctx, bot.ID, r.FromID); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bots) acceptLeagueInvites(ctx context.Context, bot *model.Player) error {
	invites, err := b.db.ListLeagueInvites(ctx, bot.ID)
	if err != nil {
		return err
	}
	for _, leagueID := range invites {
		if err := b.ctrl.AcceptInvite(ctx, bot.ID, leagueID); err != nil {
			return err
		}
	}
	return nil
}

// submitPredictions fills in every pending prediction on the bot's
// schedule with a plausible NBA score.
func (b *Bots) submitPredictions(ctx context.Context, bot *model.Player) error {
	days, err := b.ctrl.GetSchedule(ctx, bot.ID)
	if err != nil {
		return err
	}

	for _, day := range days {
		for _, game := range day.Games {
			if game.Status != model.PREDICTION_PENDING {
				continue
			}
			away := gofakeit.Number(85, 130)
			home := gofakeit.Number(85, 130)
			err := b.ctrl.SubmitPrediction(ctx, bot.ID, game.PredictionID, away, home)
			if err != nil {
				// Another run may have raced us to it, or the game just
				// tipped off. Neither should stop the rest.
				var cErr *model.ConflictError
				if errors.As(err, &cErr) {
					continue
				}
				return err
			}
		}
	}
	return nil
}

// RunPeriodicUpdates keeps the bots responsive until shutdown.
func (b *Bots) RunPeriodicUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			b.UpdateAll(ctx)
			cancel()
		}
	}
}
