package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mfields/courtside/model"
)

const predictionColumns = `id, player, game, away_score, home_score, status, score, league_ids, created`

func (db *postgresDB) AddPrediction(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (*model.Prediction, error) {
	const query = `INSERT INTO predictions (player, game, created)
			VALUES (@player, @game, @created)
			RETURNING id, created`

	args := pgx.NamedArgs{
		"player":  int64(playerID),
		"game":    int64(gameID),
		"created": timestamptz(db.clock.Now().UTC()),
	}

	p := &model.Prediction{
		PlayerID: playerID,
		GameID:   gameID,
		Status:   model.PREDICTION_PENDING,
	}
	var created pgtype.Timestamptz
	if err := db.pool.QueryRow(ctx, query, args).Scan(&p.ID, &created); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("error inserting prediction (player %d, game %d): %w", playerID, gameID, err)
	}
	p.Created = created.Time
	return p, nil
}

func (db *postgresDB) GetPrediction(ctx context.Context, id model.PredictionID) (*model.Prediction, error) {
	query := fmt.Sprintf(`SELECT %s FROM predictions WHERE id=@id`, predictionColumns)

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": int64(id)})
	p, err := scanPrediction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("error scanning prediction %d: %w", id, err)
	}
	return p, nil
}

func (db *postgresDB) FindPrediction(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (*model.Prediction, error) {
	query := fmt.Sprintf(`SELECT %s FROM predictions WHERE player=@player AND game=@game`, predictionColumns)

	args := pgx.NamedArgs{
		"player": int64(playerID),
		"game":   int64(gameID),
	}
	row := db.pool.QueryRow(ctx, query, args)
	p, err := scanPrediction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("error scanning prediction (player %d, game %d): %w", playerID, gameID, err)
	}
	return p, nil
}

// SubmitPrediction writes the predicted scores and freezes the league set.
// The status guard rejects double submits even when two requests race.
func (db *postgresDB) SubmitPrediction(ctx context.Context, id model.PredictionID, awayScore, homeScore int, leagueIDs []model.LeagueID) (bool, error) {
	const query = `UPDATE predictions
			SET away_score=@awayScore, home_score=@homeScore, status='Submitted', league_ids=@leagueIDs
			WHERE id=@id AND status='Pending'`

	args := pgx.NamedArgs{
		"id":        int64(id),
		"awayScore": awayScore,
		"homeScore": homeScore,
		"leagueIDs": leagueIDsToInt64s(leagueIDs),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("error submitting prediction %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// CompletePrediction settles the accuracy score. Guarded on Submitted so
// completing twice, or completing an abandoned Pending prediction, does
// nothing.
func (db *postgresDB) CompletePrediction(ctx context.Context, id model.PredictionID, score int) (bool, error) {
	const query = `UPDATE predictions
			SET score=@score, status='Complete'
			WHERE id=@id AND status='Submitted'`

	args := pgx.NamedArgs{
		"id":    int64(id),
		"score": score,
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("error completing prediction %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (db *postgresDB) ListPredictionsForGame(ctx context.Context, gameID model.GameID) ([]model.Prediction, error) {
	query := fmt.Sprintf(`SELECT %s FROM predictions WHERE game=@game ORDER BY id`, predictionColumns)

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"game": int64(gameID)})
	if err != nil {
		return nil, fmt.Errorf("error listing predictions for game %d: %w", gameID, err)
	}
	return collectPredictions(rows)
}

func (db *postgresDB) ListSubmittedPredictionsForGame(ctx context.Context, gameID model.GameID) ([]model.Prediction, error) {
	query := fmt.Sprintf(`SELECT %s FROM predictions WHERE game=@game AND status='Submitted' ORDER BY id`, predictionColumns)

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"game": int64(gameID)})
	if err != nil {
		return nil, fmt.Errorf("error listing submitted predictions for game %d: %w", gameID, err)
	}
	return collectPredictions(rows)
}

func (db *postgresDB) ListCompletedPredictions(ctx context.Context, playerID model.PlayerID) ([]model.Prediction, error) {
	query := fmt.Sprintf(`SELECT %s FROM predictions WHERE player=@player AND status='Complete' ORDER BY id`, predictionColumns)

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"player": int64(playerID)})
	if err != nil {
		return nil, fmt.Errorf("error listing completed predictions for player %d: %w", playerID, err)
	}
	return collectPredictions(rows)
}

func scanPrediction(row pgx.Row) (*model.Prediction, error) {
	var result model.Prediction
	var status string
	var leagueIDs []int64
	var created pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.PlayerID,
		&result.GameID,
		&result.AwayScore,
		&result.HomeScore,
		&status,
		&result.Score,
		&leagueIDs,
		&created)

	if err != nil {
		return nil, err
	}

	result.Status = model.ParsePredictionStatus(status)
	result.Created = created.Time
	result.LeagueIDs = make([]model.LeagueID, 0, len(leagueIDs))
	for _, id := range leagueIDs {
		result.LeagueIDs = append(result.LeagueIDs, model.LeagueID(id))
	}

	return &result, nil
}

func collectPredictions(rows pgx.Rows) ([]model.Prediction, error) {
	defer rows.Close()

	results := make([]model.Prediction, 0, 8)
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

func leagueIDsToInt64s(ids []model.LeagueID) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}
