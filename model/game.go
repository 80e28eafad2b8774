package model

import (
	"strings"
	"time"
)

type GameID int64

type GameStatus string

const (
	GAME_UPCOMING GameStatus = "Upcoming"
	GAME_PENDING  GameStatus = "Pending"
	GAME_FINAL    GameStatus = "Final"
)

func ParseGameStatus(s string) GameStatus {
	switch strings.ToLower(s) {
	case "upcoming":
		return GAME_UPCOMING
	case "pending", "in progress":
		return GAME_PENDING
	case "final":
		return GAME_FINAL
	default:
		return GAME_UPCOMING
	}
}

// Game is a single NBA game as ingested from the schedule provider.
// Identity, teams, and date never change after ingestion; status and the
// two scores are only written by the reconciliation driver when the
// provider reports a final result.
type Game struct {
	ID        GameID
	BDLID     int64 // the provider's id for this game
	Date      time.Time
	Season    int
	Status    GameStatus
	AwayTeam  *NBATeam
	HomeTeam  *NBATeam
	AwayScore int // only meaningful when Status == GAME_FINAL
	HomeScore int
	Created   time.Time
}

// Involves reports whether team plays in this game. Used to decide
// whether a team-mode league counts the game.
func (g *Game) Involves(team *NBATeam) bool {
	if team == nil {
		return false
	}
	return g.AwayTeam.Equals(team) || g.HomeTeam.Equals(team)
}
