package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mfields/courtside/db"
	"github.com/mfields/courtside/model"
	"github.com/mfields/courtside/testutils"
)

func TestLoadGames(t *testing.T) {
	ctrl, fakeBDL := newTestController(t)
	defer fakeBDL.Close()

	ctx := context.Background()

	added, err := ctrl.LoadGames(ctx)
	if err != nil {
		t.Fatalf("error loading games: %v", err)
	}
	if added != 3 {
		t.Errorf("expected 3 games added, got: %d", added)
	}

	g, err := testDB.DB.GetGameByBDLID(ctx, 201)
	if err != nil {
		t.Fatalf("error looking up loaded game: %v", err)
	}
	if g.Status != model.GAME_UPCOMING {
		t.Errorf("expected an upcoming game, got: %s", g.Status)
	}
	if g.AwayTeam.Friendly() != "Boston Celtics" || g.HomeTeam.Friendly() != "New York Knicks" {
		t.Errorf("teams not as expected: %s at %s", g.AwayTeam.Friendly(), g.HomeTeam.Friendly())
	}

	// A second run finds everything already present.
	added, err = ctrl.LoadGames(ctx)
	if err != nil {
		t.Fatalf("error loading games again: %v", err)
	}
	if added != 0 {
		t.Errorf("expected 0 games added on the second run, got: %d", added)
	}
}

func TestReconcileGames(t *testing.T) {
	ctrl, fakeBDL := newTestController(t)
	defer fakeBDL.Close()

	ctx := context.Background()

	finished := testutils.NewTestGame(101, "BOS", "NYK", -24*time.Hour)
	inProgress := testutils.NewTestGame(103, "DEN", "PHX", -1*time.Hour)
	missedWindow := testutils.NewTestGame(104, "SAS", "DAL", -3*24*time.Hour)
	canceled := testutils.NewTestGame(105, "CHA", "WAS", -2*24*time.Hour)
	for _, g := range []*model.Game{finished, inProgress, missedWindow, canceled} {
		if err := testDB.DB.AddGame(ctx, g); err != nil {
			t.Fatalf("error adding game: %v", err)
		}
	}

	// Ava called the finished game exactly, Ben never submitted, and
	// Cleo predicted the game that gets dropped upstream.
	perfect, err := testDB.DB.AddPrediction(ctx, testutils.Ava.ID, finished.ID)
	if err != nil {
		t.Fatalf("error adding prediction: %v", err)
	}
	if ok, err := testDB.DB.SubmitPrediction(ctx, perfect.ID, 112, 108, nil); err != nil || !ok {
		t.Fatalf("error submitting prediction: ok=%t err=%v", ok, err)
	}
	abandoned, err := testDB.DB.AddPrediction(ctx, testutils.Ben.ID, finished.ID)
	if err != nil {
		t.Fatalf("error adding prediction: %v", err)
	}
	doomed, err := testDB.DB.AddPrediction(ctx, testutils.Cleo.ID, canceled.ID)
	if err != nil {
		t.Fatalf("error adding prediction: %v", err)
	}
	if ok, err := testDB.DB.SubmitPrediction(ctx, doomed.ID, 99, 99, nil); err != nil || !ok {
		t.Fatalf("error submitting prediction: ok=%t err=%v", ok, err)
	}

	updated, err := ctrl.ReconcileGames(ctx)
	if err != nil {
		t.Fatalf("error reconciling games: %v", err)
	}
	// The finished game settles from the bulk fetch, the one that missed
	// the window from its individual lookup.
	if updated != 2 {
		t.Errorf("expected 2 games updated, got: %d", updated)
	}

	g, err := testDB.DB.GetGame(ctx, finished.ID)
	if err != nil {
		t.Fatalf("error reading game back: %v", err)
	}
	if g.Status != model.GAME_FINAL || g.AwayScore != 112 || g.HomeScore != 108 {
		t.Errorf("game not finalized as expected: %v", g)
	}

	p, err := testDB.DB.GetPrediction(ctx, perfect.ID)
	if err != nil {
		t.Fatalf("error reading prediction back: %v", err)
	}
	if p.Status != model.PREDICTION_COMPLETE || p.Score != 100 {
		t.Errorf("prediction not settled as expected: %v", p)
	}

	// Pending predictions are abandoned, never scored.
	p, err = testDB.DB.GetPrediction(ctx, abandoned.ID)
	if err != nil {
		t.Fatalf("error reading prediction back: %v", err)
	}
	if p.Status != model.PREDICTION_PENDING {
		t.Errorf("expected the unsubmitted prediction to stay pending: %v", p)
	}

	g, err = testDB.DB.GetGame(ctx, inProgress.ID)
	if err != nil {
		t.Fatalf("error reading game back: %v", err)
	}
	if g.Status == model.GAME_FINAL {
		t.Error("an in-progress game must not be finalized")
	}

	g, err = testDB.DB.GetGame(ctx, missedWindow.ID)
	if err != nil {
		t.Fatalf("error reading game back: %v", err)
	}
	if g.Status != model.GAME_FINAL || g.AwayScore != 110 || g.HomeScore != 116 {
		t.Errorf("stale game not finalized as expected: %v", g)
	}

	// The game the provider dropped is gone along with its predictions.
	if _, err := testDB.DB.GetGame(ctx, canceled.ID); !errors.Is(err, db.ErrGameNotFound) {
		t.Errorf("expected the canceled game to be deleted, got: %v", err)
	}
	if _, err := testDB.DB.GetPrediction(ctx, doomed.ID); !errors.Is(err, db.ErrPredictionNotFound) {
		t.Errorf("expected the canceled game's prediction to be deleted, got: %v", err)
	}

	// Reconciling again changes nothing.
	updated, err = ctrl.ReconcileGames(ctx)
	if err != nil {
		t.Fatalf("error reconciling games again: %v", err)
	}
	if updated != 0 {
		t.Errorf("expected 0 games updated on the second run, got: %d", updated)
	}
	p, err = testDB.DB.GetPrediction(ctx, perfect.ID)
	if err != nil {
		t.Fatalf("error reading prediction back: %v", err)
	}
	if p.Score != 100 {
		t.Errorf("settled score changed on the second run: %v", p)
	}
}

func TestReconcileGamesResumesSettlement(t *testing.T) {
	ctrl, fakeBDL := newTestController(t)
	defer fakeBDL.Close()

	ctx := context.Background()

	// A previous run finalized this game and then died before completing
	// its predictions, stranding one at Submitted.
	game := testutils.NewTestGame(102, "LAL", "GSW", -24*time.Hour)
	if err := testDB.DB.AddGame(ctx, game); err != nil {
		t.Fatalf("error adding game: %v", err)
	}
	stranded, err := testDB.DB.AddPrediction(ctx, testutils.Drew.ID, game.ID)
	if err != nil {
		t.Fatalf("error adding prediction: %v", err)
	}
	if ok, err := testDB.DB.SubmitPrediction(ctx, stranded.ID, 99, 120, nil); err != nil || !ok {
		t.Fatalf("error submitting prediction: ok=%t err=%v", ok, err)
	}
	if changed, err := testDB.DB.FinalizeGame(ctx, game.ID, 99, 120); err != nil || !changed {
		t.Fatalf("error finalizing game: changed=%t err=%v", changed, err)
	}

	// The next run settles the straggler even though the game is already
	// Final, and does not count the game as updated again.
	updated, err := ctrl.ReconcileGames(ctx)
	if err != nil {
		t.Fatalf("error reconciling games: %v", err)
	}
	if updated != 0 {
		t.Errorf("expected 0 games updated, got: %d", updated)
	}

	p, err := testDB.DB.GetPrediction(ctx, stranded.ID)
	if err != nil {
		t.Fatalf("error reading prediction back: %v", err)
	}
	if p.Status != model.PREDICTION_COMPLETE || p.Score != 100 {
		t.Errorf("expected the stranded prediction to be settled, got: %v", p)
	}
}
