package bdl

import (
	"log"
	"time"

	"github.com/mfields/courtside/model"
)

type gamesPage struct {
	Data []bdlGame `json:"data"`
	Meta struct {
		NextCursor *int64 `json:"next_cursor"`
	} `json:"meta"`
}

type gameResponse struct {
	Data bdlGame `json:"data"`
}

type bdlGame struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	Season    int     `json:"season"`
	Status    string  `json:"status"`
	Period    int     `json:"period"`
	HomeTeam  bdlTeam `json:"home_team"`
	AwayTeam  bdlTeam `json:"visitor_team"`
	HomeScore int     `json:"home_team_score"`
	AwayScore int     `json:"visitor_team_score"`
}

type bdlTeam struct {
	ID           int64  `json:"id"`
	Abbreviation string `json:"abbreviation"`
	FullName     string `json:"full_name"`
}

func (g *bdlGame) toGame() *model.Game {
	return &model.Game{
		BDLID:     g.ID,
		Date:      parseGameDate(g.Date, g.ID),
		Season:    g.Season,
		Status:    parseStatus(g.Status, g.Period),
		AwayTeam:  model.ParseTeam(g.AwayTeam.Abbreviation),
		HomeTeam:  model.ParseTeam(g.HomeTeam.Abbreviation),
		AwayScore: g.AwayScore,
		HomeScore: g.HomeScore,
	}
}

// The provider reports "Final" for finished games, a quarter or halftime
// label while in progress, and a tip-off time string before the game.
func parseStatus(status string, period int) model.GameStatus {
	if status == "Final" {
		return model.GAME_FINAL
	}
	if period > 0 {
		return model.GAME_PENDING
	}
	return model.GAME_UPCOMING
}

// Dates come back either as date-only or as a full RFC 3339 timestamp
// depending on the endpoint.
func parseGameDate(d string, gameID int64) time.Time {
	if t, err := time.Parse(time.RFC3339, d); err == nil {
		return t
	}

	t, err := time.Parse(time.DateOnly, d)
	if err != nil {
		log.Printf("error parsing date for game %d (%s): %v", gameID, d, err)
		return time.Time{}
	}
	return t
}
