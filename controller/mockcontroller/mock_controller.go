package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/mfields/courtside/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	args := c.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (c *C) GetSchedule(ctx context.Context, playerID model.PlayerID) ([]model.ScheduleDay, error) {
	args := c.Called(ctx, playerID)

	var days []model.ScheduleDay
	if args.Get(0) != nil {
		days = args.Get(0).([]model.ScheduleDay)
	}
	return days, args.Error(1)
}

func (c *C) SubmitPrediction(ctx context.Context, playerID model.PlayerID, predictionID model.PredictionID, awayScore, homeScore int) error {
	args := c.Called(ctx, playerID, predictionID, awayScore, homeScore)
	return args.Error(0)
}

func (c *C) GetRanking(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Ranking, error) {
	args := c.Called(ctx, gameID, playerID)

	var r *model.Ranking
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Ranking)
	}
	return r, args.Error(1)
}

func (c *C) CreateLeague(ctx context.Context, ownerID model.PlayerID, name string, mode model.LeagueMode, team string) (*model.League, error) {
	args := c.Called(ctx, ownerID, name, mode, team)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (c *C) GetLeague(ctx context.Context, playerID model.PlayerID, id model.LeagueID) (*model.League, error) {
	args := c.Called(ctx, playerID, id)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (c *C) ListLeagues(ctx context.Context, playerID model.PlayerID) ([]model.League, error) {
	args := c.Called(ctx, playerID)

	var leagues []model.League
	if args.Get(0) != nil {
		leagues = args.Get(0).([]model.League)
	}
	return leagues, args.Error(1)
}

func (c *C) DeleteLeague(ctx context.Context, actorID model.PlayerID, id model.LeagueID) error {
	args := c.Called(ctx, actorID, id)
	return args.Error(0)
}

func (c *C) InvitePlayers(ctx context.Context, actorID model.PlayerID, leagueID model.LeagueID, usernames []string) (*model.InviteResult, error) {
	args := c.Called(ctx, actorID, leagueID, usernames)

	var r *model.InviteResult
	if args.Get(0) != nil {
		r = args.Get(0).(*model.InviteResult)
	}
	return r, args.Error(1)
}

func (c *C) AcceptInvite(ctx context.Context, playerID model.PlayerID, leagueID model.LeagueID) error {
	args := c.Called(ctx, playerID, leagueID)
	return args.Error(0)
}

func (c *C) RequestJoin(ctx context.Context, playerID model.PlayerID, joinCode string) (*model.League, error) {
	args := c.Called(ctx, playerID, joinCode)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (c *C) ApproveRequest(ctx context.Context, actorID model.PlayerID, leagueID model.LeagueID, playerID model.PlayerID) error {
	args := c.Called(ctx, actorID, leagueID, playerID)
	return args.Error(0)
}

func (c *C) RemovePlayer(ctx context.Context, actorID model.PlayerID, leagueID model.LeagueID, playerID model.PlayerID) error {
	args := c.Called(ctx, actorID, leagueID, playerID)
	return args.Error(0)
}

func (c *C) GetLeaderboard(ctx context.Context, leagueID model.LeagueID) (*model.Leaderboard, error) {
	args := c.Called(ctx, leagueID)

	var lb *model.Leaderboard
	if args.Get(0) != nil {
		lb = args.Get(0).(*model.Leaderboard)
	}
	return lb, args.Error(1)
}

func (c *C) RequestFriend(ctx context.Context, playerID model.PlayerID, friendCode string) error {
	args := c.Called(ctx, playerID, friendCode)
	return args.Error(0)
}

func (c *C) AcceptFriend(ctx context.Context, playerID, fromID model.PlayerID) error {
	args := c.Called(ctx, playerID, fromID)
	return args.Error(0)
}

func (c *C) RemoveFriend(ctx context.Context, playerID, friendID model.PlayerID) error {
	args := c.Called(ctx, playerID, friendID)
	return args.Error(0)
}

func (c *C) ListFriends(ctx context.Context, playerID model.PlayerID) ([]model.Player, error) {
	args := c.Called(ctx, playerID)

	var friends []model.Player
	if args.Get(0) != nil {
		friends = args.Get(0).([]model.Player)
	}
	return friends, args.Error(1)
}

func (c *C) ListFriendRequests(ctx context.Context, playerID model.PlayerID) ([]model.FriendRequest, error) {
	args := c.Called(ctx, playerID)

	var requests []model.FriendRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]model.FriendRequest)
	}
	return requests, args.Error(1)
}

func (c *C) LoadGames(ctx context.Context) (int, error) {
	args := c.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (c *C) ReconcileGames(ctx context.Context) (int, error) {
	args := c.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (c *C) RunPeriodicGameUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}
