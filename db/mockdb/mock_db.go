package mockdb

import (
	"context"
	"time"

	"github.com/mfields/courtside/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) AddPlayer(ctx context.Context, username, passwordHash, friendCode string) (*model.Player, error) {
	args := db.Called(ctx, username, passwordHash, friendCode)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (db *DB) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	args := db.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (db *DB) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	args := db.Called(ctx, username)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (db *DB) GetPlayerByFriendCode(ctx context.Context, code string) (*model.Player, error) {
	args := db.Called(ctx, code)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (db *DB) GetCredentials(ctx context.Context, username string) (model.PlayerID, string, error) {
	args := db.Called(ctx, username)
	return args.Get(0).(model.PlayerID), args.String(1), args.Error(2)
}

func (db *DB) AddFriendRequest(ctx context.Context, from, to model.PlayerID) error {
	args := db.Called(ctx, from, to)
	return args.Error(0)
}

func (db *DB) AcceptFriendRequest(ctx context.Context, from, to model.PlayerID) error {
	args := db.Called(ctx, from, to)
	return args.Error(0)
}

func (db *DB) DeleteFriendRequest(ctx context.Context, from, to model.PlayerID) error {
	args := db.Called(ctx, from, to)
	return args.Error(0)
}

func (db *DB) DeleteFriend(ctx context.Context, a, b model.PlayerID) error {
	args := db.Called(ctx, a, b)
	return args.Error(0)
}

func (db *DB) ListFriends(ctx context.Context, id model.PlayerID) ([]model.PlayerID, error) {
	args := db.Called(ctx, id)

	var r []model.PlayerID
	if args.Get(0) != nil {
		r = args.Get(0).([]model.PlayerID)
	}
	return r, args.Error(1)
}

func (db *DB) ListFriendRequests(ctx context.Context, to model.PlayerID) ([]model.FriendRequest, error) {
	args := db.Called(ctx, to)

	var r []model.FriendRequest
	if args.Get(0) != nil {
		r = args.Get(0).([]model.FriendRequest)
	}
	return r, args.Error(1)
}

func (db *DB) AddGame(ctx context.Context, g *model.Game) error {
	args := db.Called(ctx, g)
	return args.Error(0)
}

func (db *DB) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	args := db.Called(ctx, id)

	var g *model.Game
	if args.Get(0) != nil {
		g = args.Get(0).(*model.Game)
	}
	return g, args.Error(1)
}

func (db *DB) GetGameByBDLID(ctx context.Context, bdlID int64) (*model.Game, error) {
	args := db.Called(ctx, bdlID)

	var g *model.Game
	if args.Get(0) != nil {
		g = args.Get(0).(*model.Game)
	}
	return g, args.Error(1)
}

func (db *DB) ListGamesBetween(ctx context.Context, start, end time.Time) ([]model.Game, error) {
	args := db.Called(ctx, start, end)

	var r []model.Game
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Game)
	}
	return r, args.Error(1)
}

func (db *DB) ListUnresolvedGamesBefore(ctx context.Context, cutoff time.Time) ([]model.Game, error) {
	args := db.Called(ctx, cutoff)

	var r []model.Game
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Game)
	}
	return r, args.Error(1)
}

func (db *DB) FinalizeGame(ctx context.Context, id model.GameID, awayScore, homeScore int) (bool, error) {
	args := db.Called(ctx, id, awayScore, homeScore)
	return args.Bool(0), args.Error(1)
}

func (db *DB) DeleteGame(ctx context.Context, id model.GameID) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) AddPrediction(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (*model.Prediction, error) {
	args := db.Called(ctx, playerID, gameID)

	var p *model.Prediction
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Prediction)
	}
	return p, args.Error(1)
}

func (db *DB) GetPrediction(ctx context.Context, id model.PredictionID) (*model.Prediction, error) {
	args := db.Called(ctx, id)

	var p *model.Prediction
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Prediction)
	}
	return p, args.Error(1)
}

func (db *DB) FindPrediction(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (*model.Prediction, error) {
	args := db.Called(ctx, playerID, gameID)

	var p *model.Prediction
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Prediction)
	}
	return p, args.Error(1)
}

func (db *DB) SubmitPrediction(ctx context.Context, id model.PredictionID, awayScore, homeScore int, leagueIDs []model.LeagueID) (bool, error) {
	args := db.Called(ctx, id, awayScore, homeScore, leagueIDs)
	return args.Bool(0), args.Error(1)
}

func (db *DB) CompletePrediction(ctx context.Context, id model.PredictionID, score int) (bool, error) {
	args := db.Called(ctx, id, score)
	return args.Bool(0), args.Error(1)
}

func (db *DB) ListPredictionsForGame(ctx context.Context, gameID model.GameID) ([]model.Prediction, error) {
	args := db.Called(ctx, gameID)

	var r []model.Prediction
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Prediction)
	}
	return r, args.Error(1)
}

func (db *DB) ListSubmittedPredictionsForGame(ctx context.Context, gameID model.GameID) ([]model.Prediction, error) {
	args := db.Called(ctx, gameID)

	var r []model.Prediction
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Prediction)
	}
	return r, args.Error(1)
}

func (db *DB) ListCompletedPredictions(ctx context.Context, playerID model.PlayerID) ([]model.Prediction, error) {
	args := db.Called(ctx, playerID)

	var r []model.Prediction
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Prediction)
	}
	return r, args.Error(1)
}

func (db *DB) AddLeague(ctx context.Context, l *model.League) error {
	args := db.Called(ctx, l)
	return args.Error(0)
}

func (db *DB) GetLeague(ctx context.Context, id model.LeagueID) (*model.League, error) {
	args := db.Called(ctx, id)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (db *DB) GetLeagueByJoinCode(ctx context.Context, code string) (*model.League, error) {
	args := db.Called(ctx, code)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (db *DB) ListLeaguesForPlayer(ctx context.Context, playerID model.PlayerID) ([]model.League, error) {
	args := db.Called(ctx, playerID)

	var r []model.League
	if args.Get(0) != nil {
		r = args.Get(0).([]model.League)
	}
	return r, args.Error(1)
}

func (db *DB) ListLeagueInvites(ctx context.Context, playerID model.PlayerID) ([]model.LeagueID, error) {
	args := db.Called(ctx, playerID)

	var ids []model.LeagueID
	if args.Get(0) != nil {
		ids = args.Get(0).([]model.LeagueID)
	}
	return ids, args.Error(1)
}

func (db *DB) DeleteLeague(ctx context.Context, id model.LeagueID) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) AddLeaguePlayer(ctx context.Context, leagueID model.LeagueID, playerID model.PlayerID, role model.LeagueRole) error {
	args := db.Called(ctx, leagueID, playerID, role)
	return args.Error(0)
}

func (db *DB) MoveLeaguePlayer(ctx context.Context, leagueID model.LeagueID, playerID model.PlayerID, from, to model.LeagueRole) (bool, error) {
	args := db.Called(ctx, leagueID, playerID, from, to)
	return args.Bool(0), args.Error(1)
}

func (db *DB) RemoveLeaguePlayer(ctx context.Context, leagueID model.LeagueID, playerID model.PlayerID) (bool, error) {
	args := db.Called(ctx, leagueID, playerID)
	return args.Bool(0), args.Error(1)
}
