package model

import (
	"strings"
	"time"
)

type PredictionID int64

type PredictionStatus string

const (
	PREDICTION_PENDING   PredictionStatus = "Pending"
	PREDICTION_SUBMITTED PredictionStatus = "Submitted"
	PREDICTION_COMPLETE  PredictionStatus = "Complete"
)

func ParsePredictionStatus(s string) PredictionStatus {
	switch strings.ToLower(s) {
	case "submitted":
		return PREDICTION_SUBMITTED
	case "complete":
		return PREDICTION_COMPLETE
	default:
		return PREDICTION_PENDING
	}
}

// Prediction is one player's forecast for one game. There is at most one
// per (player, game) pair. The lifecycle is Pending -> Submitted ->
// Complete and never moves backwards: the player submits exactly once
// before tip-off, and the reconciliation driver completes it exactly once
// after the game goes final. LeagueIDs is frozen at submission time; a
// league joined later never retroactively counts the prediction.
type Prediction struct {
	ID        PredictionID
	PlayerID  PlayerID
	GameID    GameID
	AwayScore int // predicted, valid once Submitted
	HomeScore int
	Status    PredictionStatus
	Score     int // settled accuracy 0-100, valid once Complete
	LeagueIDs []LeagueID
	Created   time.Time
}
