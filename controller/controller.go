package controller

import (
	"context"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mfields/courtside/bdl"
	"github.com/mfields/courtside/db"
	"github.com/mfields/courtside/model"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// GetSchedule returns the player's upcoming games for the next three
	// days, grouped by day, lazily creating a Pending prediction for any
	// game the player has not seen yet.
	GetSchedule(ctx context.Context, playerID model.PlayerID) ([]model.ScheduleDay, error)
	// SubmitPrediction commits the player's predicted scores. It fails
	// if the prediction is not the player's own, has already been
	// submitted, or the game has already tipped off.
	SubmitPrediction(ctx context.Context, playerID model.PlayerID, predictionID model.PredictionID, awayScore, homeScore int) error
	// GetRanking is the player's placement among all predictions for
	// one game.
	GetRanking(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Ranking, error)

	CreateLeague(ctx context.Context, ownerID model.PlayerID, name string, mode model.LeagueMode, team string) (*model.League, error)
	// GetLeague requires the caller to be in one of the league's sets.
	GetLeague(ctx context.Context, playerID model.PlayerID, id model.LeagueID) (*model.League, error)
	ListLeagues(ctx context.Context, playerID model.PlayerID) ([]model.League, error)
	DeleteLeague(ctx context.Context, actorID model.PlayerID, id model.LeagueID) error
	InvitePlayers(ctx context.Context, actorID model.PlayerID, leagueID model.LeagueID, usernames []string) (*model.InviteResult, error)
	AcceptInvite(ctx context.Context, playerID model.PlayerID, leagueID model.LeagueID) error
	RequestJoin(ctx context.Context, playerID model.PlayerID, joinCode string) (*model.League, error)
	ApproveRequest(ctx context.Context, actorID model.PlayerID, leagueID model.LeagueID, playerID model.PlayerID) error
	RemovePlayer(ctx context.Context, actorID model.PlayerID, leagueID model.LeagueID, playerID model.PlayerID) error
	// GetLeaderboard sums every member's Complete prediction scores and
	// ranks them 1..N.
	GetLeaderboard(ctx context.Context, leagueID model.LeagueID) (*model.Leaderboard, error)

	RequestFriend(ctx context.Context, playerID model.PlayerID, friendCode string) error
	AcceptFriend(ctx context.Context, playerID, fromID model.PlayerID) error
	RemoveFriend(ctx context.Context, playerID, friendID model.PlayerID) error
	ListFriends(ctx context.Context, playerID model.PlayerID) ([]model.Player, error)
	ListFriendRequests(ctx context.Context, playerID model.PlayerID) ([]model.FriendRequest, error)

	// LoadGames ingests the next week of the provider's schedule.
	// Returns the number of new games added.
	LoadGames(ctx context.Context) (int, error)
	// ReconcileGames pulls authoritative results for the last week,
	// finalizes games, settles their predictions, and cleans up games
	// the provider no longer knows. Returns the number of games updated.
	ReconcileGames(ctx context.Context) (int, error)
	RunPeriodicGameUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)
}

type controller struct {
	clock clock.Clock
	bdl   bdl.Client
	db    db.DB
}

func New(clock clock.Clock, bdl bdl.Client, db db.DB) (C, error) {
	c := &controller{
		clock: clock,
		bdl:   bdl,
		db:    db,
	}
	return c, nil
}

func (c *controller) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return c.db.GetPlayer(ctx, id)
}
