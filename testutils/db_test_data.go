package testutils

import (
	"context"
	"time"

	"github.com/mfields/courtside/db"
	"github.com/mfields/courtside/model"
)

// Fixture players shared by every test against a TestDB. IDs are filled
// in by InsertTestPlayers since the database assigns them.
var (
	Ava   = &model.Player{Username: "ava", FriendCode: "11111111"}
	Ben   = &model.Player{Username: "ben", FriendCode: "22222222"}
	Cleo  = &model.Player{Username: "cleo", FriendCode: "33333333"}
	Drew  = &model.Player{Username: "drew", FriendCode: "44444444"}
	Elena = &model.Player{Username: "elena", FriendCode: "55555555"}
)

// A bcrypt hash of the string "password", good enough for fixtures.
const testPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func InsertTestPlayers(db db.DB) error {
	players := []*model.Player{Ava, Ben, Cleo, Drew, Elena}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, p := range players {
		saved, err := db.AddPlayer(ctx, p.Username, testPasswordHash, p.FriendCode)
		if err != nil {
			return err
		}
		p.ID = saved.ID
		p.Created = saved.Created
	}

	return nil
}

// NewTestGame is an upcoming game offset from TestTime by delta.
func NewTestGame(bdlID int64, away, home string, delta time.Duration) *model.Game {
	return &model.Game{
		BDLID:    bdlID,
		Date:     TestTime.Add(delta),
		Season:   2024,
		Status:   model.GAME_UPCOMING,
		AwayTeam: model.ParseTeam(away),
		HomeTeam: model.ParseTeam(home),
	}
}
