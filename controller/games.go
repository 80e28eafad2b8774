package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mfields/courtside/bdl"
	"github.com/mfields/courtside/db"
	"github.com/mfields/courtside/model"
)

// reconcileWindow is how far back and forward the drivers look.
const reconcileWindow = 7 * 24 * time.Hour

// LoadGames ingests the provider's schedule for the next week. Games that
// already exist locally are left untouched; their identity fields never
// change after creation.
func (c *controller) LoadGames(ctx context.Context) (int, error) {
	start := c.clock.Now().UTC()
	games, err := c.bdl.FetchGames(ctx, start, start.Add(reconcileWindow))
	if err != nil {
		return 0, &model.UpstreamError{Op: "LoadGames", Err: err}
	}

	added := 0
	for i := range games {
		g := games[i]
		_, err := c.db.GetGameByBDLID(ctx, g.BDLID)
		if err == nil {
			continue
		}
		if !errors.Is(err, db.ErrGameNotFound) {
			return added, fmt.Errorf("error checking for game (bdl %d): %w", g.BDLID, err)
		}

		if err := c.db.AddGame(ctx, &g); err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				continue
			}
			return added, fmt.Errorf("error adding game (bdl %d): %w", g.BDLID, err)
		}
		added++
	}

	log.Printf("load games finished, %d games added", added)
	return added, nil
}

// ReconcileGames settles the last week of games against the provider.
// First a bulk fetch catches games that went final normally; then every
// remaining unresolved past game is looked up individually, which also
// catches games the provider canceled. A failure on one game is logged
// and skipped so the rest of the batch still settles, and the whole run
// is restartable since finalizing and completing are both guarded.
func (c *controller) ReconcileGames(ctx context.Context) (int, error) {
	now := c.clock.Now().UTC()
	updated := 0

	games, err := c.bdl.FetchGames(ctx, now.Add(-reconcileWindow), now)
	if err != nil {
		// The per-game pass below can still make progress.
		log.Printf("error fetching recent games: %v", err)
	} else {
		for i := range games {
			remote := games[i]
			if remote.Status != model.GAME_FINAL {
				continue
			}

			local, err := c.db.GetGameByBDLID(ctx, remote.BDLID)
			if err != nil {
				if !errors.Is(err, db.ErrGameNotFound) {
					log.Printf("error looking up game (bdl %d): %v", remote.BDLID, err)
				}
				continue
			}

			// Already-Final games go through finalizeGame too, so a run
			// that died mid-settlement gets its stragglers on the next
			// pass.
			changed, err := c.finalizeGame(ctx, local, remote.AwayScore, remote.HomeScore)
			if err != nil {
				log.Printf("error finalizing game %d: %v", local.ID, err)
				continue
			}
			if changed {
				updated++
			}
		}
	}

	// Games past their tip-off that still aren't Final either slipped
	// through the bulk window or were removed by the provider.
	stale, err := c.db.ListUnresolvedGamesBefore(ctx, now)
	if err != nil {
		return updated, fmt.Errorf("error listing unresolved games: %w", err)
	}

	for i := range stale {
		local := stale[i]
		remote, err := c.bdl.FetchGame(ctx, local.BDLID)
		if err != nil {
			if errors.Is(err, bdl.ErrGameNotFound) {
				// Canceled upstream: drop the game and its predictions
				// rather than let them pend forever.
				if err := c.db.DeleteGame(ctx, local.ID); err != nil {
					log.Printf("error deleting canceled game %d: %v", local.ID, err)
				}
				continue
			}
			log.Printf("error fetching game (bdl %d): %v", local.BDLID,
				&model.UpstreamError{Op: "ReconcileGames", Err: err})
			continue
		}

		if remote.Status != model.GAME_FINAL {
			continue
		}
		changed, err := c.finalizeGame(ctx, &local, remote.AwayScore, remote.HomeScore)
		if err != nil {
			log.Printf("error finalizing game %d: %v", local.ID, err)
			continue
		}
		if changed {
			updated++
		}
	}

	return updated, nil
}

// finalizeGame records the final score and settles every Submitted
// prediction for the game. Settlement runs even when the game was
// already Final: an earlier run may have flipped it and then died
// partway through completing predictions, and those must not stay
// Submitted forever. Both writes are guarded by status so a concurrent
// or repeated run cannot double-score anything. Pending predictions are
// abandoned: they never complete and never score. Returns whether this
// run flipped the game to Final.
func (c *controller) finalizeGame(ctx context.Context, game *model.Game, awayScore, homeScore int) (bool, error) {
	changed, err := c.db.FinalizeGame(ctx, game.ID, awayScore, homeScore)
	if err != nil {
		return false, err
	}

	predictions, err := c.db.ListSubmittedPredictionsForGame(ctx, game.ID)
	if err != nil {
		return changed, fmt.Errorf("error listing predictions: %w", err)
	}

	for _, p := range predictions {
		score := calculateScore(awayScore, homeScore, p.AwayScore, p.HomeScore)
		if _, err := c.db.CompletePrediction(ctx, p.ID, score); err != nil {
			return changed, fmt.Errorf("error completing prediction %d: %w", p.ID, err)
		}
	}
	return changed, nil
}

// RunPeriodicGameUpdates reconciles on a fixed schedule until shutdown.
// Runs never overlap because they share this single goroutine.
func (c *controller) RunPeriodicGameUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)

			if _, err := c.LoadGames(ctx); err != nil {
				log.Printf("%v", err)
			}
			if n, err := c.ReconcileGames(ctx); err != nil {
				log.Printf("%v", err)
			} else if n > 0 {
				log.Printf("reconciled %d games", n)
			}

			cancel()
		}
	}
}
