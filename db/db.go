package db

import (
	"context"
	"time"

	"github.com/mfields/courtside/model"
)

type DB interface {
	// Players and credentials
	AddPlayer(ctx context.Context, username, passwordHash, friendCode string) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error)
	GetPlayerByFriendCode(ctx context.Context, code string) (*model.Player, error)
	GetCredentials(ctx context.Context, username string) (model.PlayerID, string, error)

	// Friends
	AddFriendRequest(ctx context.Context, from, to model.PlayerID) error
	// Removes the request and makes from and to mutual friends in one transaction.
	AcceptFriendRequest(ctx context.Context, from, to model.PlayerID) error
	DeleteFriendRequest(ctx context.Context, from, to model.PlayerID) error
	DeleteFriend(ctx context.Context, a, b model.PlayerID) error
	ListFriends(ctx context.Context, id model.PlayerID) ([]model.PlayerID, error)
	ListFriendRequests(ctx context.Context, to model.PlayerID) ([]model.FriendRequest, error)

	// Games. Identity, teams, and date are immutable after AddGame;
	// FinalizeGame is the only mutation and reports whether the row
	// actually moved to Final so re-runs are no-ops.
	AddGame(ctx context.Context, g *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GetGameByBDLID(ctx context.Context, bdlID int64) (*model.Game, error)
	ListGamesBetween(ctx context.Context, start, end time.Time) ([]model.Game, error)
	ListUnresolvedGamesBefore(ctx context.Context, cutoff time.Time) ([]model.Game, error)
	FinalizeGame(ctx context.Context, id model.GameID, awayScore, homeScore int) (bool, error)
	// Removes a game the provider no longer recognizes along with every
	// prediction that references it.
	DeleteGame(ctx context.Context, id model.GameID) error

	// Predictions
	AddPrediction(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (*model.Prediction, error)
	GetPrediction(ctx context.Context, id model.PredictionID) (*model.Prediction, error)
	FindPrediction(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (*model.Prediction, error)
	// Guarded on status Pending; reports whether the row transitioned.
	SubmitPrediction(ctx context.Context, id model.PredictionID, awayScore, homeScore int, leagueIDs []model.LeagueID) (bool, error)
	// Guarded on status Submitted; reports whether the row transitioned.
	CompletePrediction(ctx context.Context, id model.PredictionID, score int) (bool, error)
	ListPredictionsForGame(ctx context.Context, gameID model.GameID) ([]model.Prediction, error)
	ListSubmittedPredictionsForGame(ctx context.Context, gameID model.GameID) ([]model.Prediction, error)
	ListCompletedPredictions(ctx context.Context, playerID model.PlayerID) ([]model.Prediction, error)

	// Leagues. Set moves are single statements so the member/invited/
	// requesting sets can never overlap, even across a crash.
	AddLeague(ctx context.Context, l *model.League) error
	GetLeague(ctx context.Context, id model.LeagueID) (*model.League, error)
	GetLeagueByJoinCode(ctx context.Context, code string) (*model.League, error)
	ListLeaguesForPlayer(ctx context.Context, playerID model.PlayerID) ([]model.League, error)
	// Leagues where the player has an open invite.
	ListLeagueInvites(ctx context.Context, playerID model.PlayerID) ([]model.LeagueID, error)
	DeleteLeague(ctx context.Context, id model.LeagueID) error
	AddLeaguePlayer(ctx context.Context, leagueID model.LeagueID, playerID model.PlayerID, role model.LeagueRole) error
	// Moves a player between sets, guarded on the source role; reports
	// whether the move happened.
	MoveLeaguePlayer(ctx context.Context, leagueID model.LeagueID, playerID model.PlayerID, from, to model.LeagueRole) (bool, error)
	RemoveLeaguePlayer(ctx context.Context, leagueID model.LeagueID, playerID model.PlayerID) (bool, error)
}
