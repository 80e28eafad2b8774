package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mfields/courtside/model"
)

func (db *postgresDB) AddLeague(ctx context.Context, l *model.League) error {
	const insertLeague = `INSERT INTO leagues (name, owner, join_code, mode, team, created)
			VALUES (@name, @owner, @joinCode, @mode, @team, @created)
			RETURNING id`

	const insertOwner = `INSERT INTO league_players (league, player, role)
			VALUES (@league, @player, 'member')`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var team *string
	if l.Team != nil {
		t := l.Team.String()
		team = &t
	}

	args := pgx.NamedArgs{
		"name":     l.Name,
		"owner":    int64(l.OwnerID),
		"joinCode": l.JoinCode,
		"mode":     string(l.Mode),
		"team":     team,
		"created":  timestamptz(db.clock.Now().UTC()),
	}
	if err := tx.QueryRow(ctx, insertLeague, args).Scan(&l.ID); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error inserting league %s: %w", l.Name, err)
	}

	// The owner starts as the league's only member.
	ownerArgs := pgx.NamedArgs{
		"league": int64(l.ID),
		"player": int64(l.OwnerID),
	}
	if _, err := tx.Exec(ctx, insertOwner, ownerArgs); err != nil {
		return fmt.Errorf("error adding league owner as member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing league insert: %w", err)
	}

	l.Members = []model.PlayerID{l.OwnerID}
	return nil
}

func (db *postgresDB) GetLeague(ctx context.Context, id model.LeagueID) (*model.League, error) {
	const query = `SELECT id, name, owner, join_code, mode, team FROM leagues WHERE id=@id`

	return db.getLeague(ctx, query, pgx.NamedArgs{"id": int64(id)})
}

func (db *postgresDB) GetLeagueByJoinCode(ctx context.Context, code string) (*model.League, error) {
	const query = `SELECT id, name, owner, join_code, mode, team FROM leagues WHERE join_code=@code`

	return db.getLeague(ctx, query, pgx.NamedArgs{"code": code})
}

func (db *postgresDB) getLeague(ctx context.Context, query string, args pgx.NamedArgs) (*model.League, error) {
	row := db.pool.QueryRow(ctx, query, args)
	l, err := scanLeague(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("error scanning league: %w", err)
	}

	if err := db.loadLeaguePlayers(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (db *postgresDB) ListLeaguesForPlayer(ctx context.Context, playerID model.PlayerID) ([]model.League, error) {
	const query = `SELECT l.id, l.name, l.owner, l.join_code, l.mode, l.team
			FROM leagues l
			JOIN league_players lp ON lp.league = l.id
			WHERE lp.player=@player AND lp.role='member'
			ORDER BY l.id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"player": int64(playerID)})
	if err != nil {
		return nil, fmt.Errorf("error listing leagues for player %d: %w", playerID, err)
	}
	defer rows.Close()

	results := make([]model.League, 0, 4)
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		if err := db.loadLeaguePlayers(ctx, &results[i]); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (db *postgresDB) ListLeagueInvites(ctx context.Context, playerID model.PlayerID) ([]model.LeagueID, error) {
	const query = `SELECT league FROM league_players
			WHERE player=@player AND role='invited'
			ORDER BY league`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"player": int64(playerID)})
	if err != nil {
		return nil, fmt.Errorf("error listing league invites for player %d: %w", playerID, err)
	}
	defer rows.Close()

	results := make([]model.LeagueID, 0, 4)
	for rows.Next() {
		var id model.LeagueID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		results = append(results, id)
	}
	return results, rows.Err()
}

func (db *postgresDB) DeleteLeague(ctx context.Context, id model.LeagueID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM leagues WHERE id=@id`, pgx.NamedArgs{"id": int64(id)})
	if err != nil {
		return fmt.Errorf("error deleting league %d: %w", id, err)
	}
	return nil
}

func (db *postgresDB) AddLeaguePlayer(ctx context.Context, leagueID model.LeagueID, playerID model.PlayerID, role model.LeagueRole) error {
	const query = `INSERT INTO league_players (league, player, role)
			VALUES (@league, @player, @role)`

	args := pgx.NamedArgs{
		"league": int64(leagueID),
		"player": int64(playerID),
		"role":   string(role),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error adding player %d to league %d: %w", playerID, leagueID, err)
	}
	return nil
}

// MoveLeaguePlayer moves a player between the league's sets as a single
// UPDATE. One row per (league, player) means a crash can never leave the
// player in two sets; the from guard makes the move idempotent.
func (db *postgresDB) MoveLeaguePlayer(ctx context.Context, leagueID model.LeagueID, playerID model.PlayerID, from, to model.LeagueRole) (bool, error) {
	const query = `UPDATE league_players SET role=@to
			WHERE league=@league AND player=@player AND role=@from`

	args := pgx.NamedArgs{
		"league": int64(leagueID),
		"player": int64(playerID),
		"from":   string(from),
		"to":     string(to),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("error moving player %d in league %d: %w", playerID, leagueID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (db *postgresDB) RemoveLeaguePlayer(ctx context.Context, leagueID model.LeagueID, playerID model.PlayerID) (bool, error) {
	const query = `DELETE FROM league_players WHERE league=@league AND player=@player`

	args := pgx.NamedArgs{
		"league": int64(leagueID),
		"player": int64(playerID),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("error removing player %d from league %d: %w", playerID, leagueID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (db *postgresDB) loadLeaguePlayers(ctx context.Context, l *model.League) error {
	const query = `SELECT player, role FROM league_players WHERE league=@league ORDER BY player`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"league": int64(l.ID)})
	if err != nil {
		return fmt.Errorf("error loading players for league %d: %w", l.ID, err)
	}
	defer rows.Close()

	l.Members = nil
	l.Invited = nil
	l.Requesting = nil
	for rows.Next() {
		var playerID model.PlayerID
		var role string
		if err := rows.Scan(&playerID, &role); err != nil {
			return err
		}
		switch model.LeagueRole(role) {
		case model.ROLE_MEMBER:
			l.Members = append(l.Members, playerID)
		case model.ROLE_INVITED:
			l.Invited = append(l.Invited, playerID)
		case model.ROLE_REQUESTING:
			l.Requesting = append(l.Requesting, playerID)
		}
	}
	return rows.Err()
}

func scanLeague(row pgx.Row) (*model.League, error) {
	var result model.League
	var mode string
	var team *string
	err := row.Scan(
		&result.ID,
		&result.Name,
		&result.OwnerID,
		&result.JoinCode,
		&mode,
		&team)

	if err != nil {
		return nil, err
	}

	result.Mode, _ = model.ParseLeagueMode(mode)
	if team != nil {
		result.Team = model.ParseTeam(*team)
	}

	return &result, nil
}
