package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mfields/courtside/model"
)

const gameColumns = `id, bdl_id, game_date, season, status, away_team, home_team, away_score, home_score, created`

func (db *postgresDB) AddGame(ctx context.Context, g *model.Game) error {
	const query = `INSERT INTO games (
		bdl_id,
		game_date,
		season,
		status,
		away_team,
		home_team,
		away_score,
		home_score,
		created
	) VALUES (
		@bdlID,
		@date,
		@season,
		@status,
		@awayTeam,
		@homeTeam,
		@awayScore,
		@homeScore,
		@created
	) RETURNING id`

	args := pgx.NamedArgs{
		"bdlID":     g.BDLID,
		"date":      timestamptz(g.Date),
		"season":    g.Season,
		"status":    string(g.Status),
		"awayTeam":  g.AwayTeam.String(),
		"homeTeam":  g.HomeTeam.String(),
		"awayScore": g.AwayScore,
		"homeScore": g.HomeScore,
		"created":   timestamptz(db.clock.Now().UTC()),
	}

	if err := db.pool.QueryRow(ctx, query, args).Scan(&g.ID); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error inserting game (bdl %d): %w", g.BDLID, err)
	}
	return nil
}

func (db *postgresDB) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games WHERE id=@id`, gameColumns)

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": int64(id)})
	g, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("error scanning game %d: %w", id, err)
	}
	return g, nil
}

func (db *postgresDB) GetGameByBDLID(ctx context.Context, bdlID int64) (*model.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games WHERE bdl_id=@bdlID`, gameColumns)

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"bdlID": bdlID})
	g, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("error scanning game (bdl %d): %w", bdlID, err)
	}
	return g, nil
}

func (db *postgresDB) ListGamesBetween(ctx context.Context, start, end time.Time) ([]model.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games
			WHERE game_date >= @start AND game_date < @end
			ORDER BY game_date`, gameColumns)

	args := pgx.NamedArgs{
		"start": timestamptz(start),
		"end":   timestamptz(end),
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing games: %w", err)
	}
	return collectGames(rows)
}

func (db *postgresDB) ListUnresolvedGamesBefore(ctx context.Context, cutoff time.Time) ([]model.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games
			WHERE status <> 'Final' AND game_date < @cutoff
			ORDER BY game_date`, gameColumns)

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"cutoff": timestamptz(cutoff)})
	if err != nil {
		return nil, fmt.Errorf("error listing unresolved games: %w", err)
	}
	return collectGames(rows)
}

// FinalizeGame moves a game to Final and records its scores. The status
// guard makes a second call a no-op, which is what keeps overlapping
// reconciliation runs from double-scoring a game.
func (db *postgresDB) FinalizeGame(ctx context.Context, id model.GameID, awayScore, homeScore int) (bool, error) {
	const query = `UPDATE games
			SET status='Final', away_score=@awayScore, home_score=@homeScore
			WHERE id=@id AND status <> 'Final'`

	args := pgx.NamedArgs{
		"id":        int64(id),
		"awayScore": awayScore,
		"homeScore": homeScore,
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("error finalizing game %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (db *postgresDB) DeleteGame(ctx context.Context, id model.GameID) error {
	// Predictions reference games with ON DELETE CASCADE, so this is a
	// single atomic statement.
	_, err := db.pool.Exec(ctx, `DELETE FROM games WHERE id=@id`, pgx.NamedArgs{"id": int64(id)})
	if err != nil {
		return fmt.Errorf("error deleting game %d: %w", id, err)
	}
	return nil
}

func scanGame(row pgx.Row) (*model.Game, error) {
	var result model.Game
	var date, created pgtype.Timestamptz
	var status, awayTeam, homeTeam string
	err := row.Scan(
		&result.ID,
		&result.BDLID,
		&date,
		&result.Season,
		&status,
		&awayTeam,
		&homeTeam,
		&result.AwayScore,
		&result.HomeScore,
		&created)

	if err != nil {
		return nil, err
	}

	result.Date = date.Time
	result.Created = created.Time
	result.Status = model.ParseGameStatus(status)
	result.AwayTeam = model.ParseTeam(awayTeam)
	result.HomeTeam = model.ParseTeam(homeTeam)

	return &result, nil
}

func collectGames(rows pgx.Rows) ([]model.Game, error) {
	defer rows.Close()

	results := make([]model.Game, 0, 8)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *g)
	}
	return results, rows.Err()
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             t,
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}
