package db

import (
	"context"
	"errors"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPlayerNotFound     error = errors.New("player not found")
	ErrGameNotFound       error = errors.New("game not found")
	ErrPredictionNotFound error = errors.New("prediction not found")
	ErrLeagueNotFound     error = errors.New("league not found")

	// ErrDuplicate is returned when an insert breaks a uniqueness
	// constraint, e.g. a second prediction for the same (player, game)
	// or a taken username, league name, or join code.
	ErrDuplicate error = errors.New("duplicate entry")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
