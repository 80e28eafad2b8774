package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mfields/courtside/model"
)

func (db *postgresDB) AddPlayer(ctx context.Context, username, passwordHash, friendCode string) (*model.Player, error) {
	const query = `INSERT INTO players (username, password_hash, friend_code, created)
			VALUES (@username, @passwordHash, @friendCode, @created)
			RETURNING id, created`

	args := pgx.NamedArgs{
		"username":     username,
		"passwordHash": passwordHash,
		"friendCode":   friendCode,
		"created":      timestamptz(db.clock.Now().UTC()),
	}

	p := &model.Player{
		Username:   username,
		FriendCode: friendCode,
	}
	var created pgtype.Timestamptz
	if err := db.pool.QueryRow(ctx, query, args).Scan(&p.ID, &created); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("error inserting player %s: %w", username, err)
	}
	p.Created = created.Time
	return p, nil
}

func (db *postgresDB) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	const query = `SELECT id, username, friend_code, created FROM players WHERE id=@id`

	return db.getPlayer(ctx, query, pgx.NamedArgs{"id": int64(id)})
}

func (db *postgresDB) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	const query = `SELECT id, username, friend_code, created FROM players WHERE username=@username`

	return db.getPlayer(ctx, query, pgx.NamedArgs{"username": username})
}

func (db *postgresDB) GetPlayerByFriendCode(ctx context.Context, code string) (*model.Player, error) {
	const query = `SELECT id, username, friend_code, created FROM players WHERE friend_code=@code`

	return db.getPlayer(ctx, query, pgx.NamedArgs{"code": code})
}

func (db *postgresDB) getPlayer(ctx context.Context, query string, args pgx.NamedArgs) (*model.Player, error) {
	var result model.Player
	var created pgtype.Timestamptz
	err := db.pool.QueryRow(ctx, query, args).Scan(
		&result.ID,
		&result.Username,
		&result.FriendCode,
		&created)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning player: %w", err)
	}

	result.Created = created.Time
	return &result, nil
}

func (db *postgresDB) GetCredentials(ctx context.Context, username string) (model.PlayerID, string, error) {
	const query = `SELECT id, password_hash FROM players WHERE username=@username`

	var id model.PlayerID
	var hash string
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"username": username}).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", ErrPlayerNotFound
		}
		return 0, "", fmt.Errorf("error reading credentials for %s: %w", username, err)
	}
	return id, hash, nil
}

func (db *postgresDB) AddFriendRequest(ctx context.Context, from, to model.PlayerID) error {
	const query = `INSERT INTO friend_requests (from_player, to_player, sent)
			VALUES (@from, @to, @sent)`

	args := pgx.NamedArgs{
		"from": int64(from),
		"to":   int64(to),
		"sent": timestamptz(db.clock.Now().UTC()),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error inserting friend request %d -> %d: %w", from, to, err)
	}
	return nil
}

func (db *postgresDB) AcceptFriendRequest(ctx context.Context, from, to model.PlayerID) error {
	const deleteRequest = `DELETE FROM friend_requests WHERE from_player=@from AND to_player=@to`
	const insertFriendship = `INSERT INTO friendships (player_a, player_b) VALUES (@a, @b)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, deleteRequest, pgx.NamedArgs{"from": int64(from), "to": int64(to)})
	if err != nil {
		return fmt.Errorf("error deleting friend request %d -> %d: %w", from, to, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}

	a, b := orderedPair(from, to)
	if _, err := tx.Exec(ctx, insertFriendship, pgx.NamedArgs{"a": int64(a), "b": int64(b)}); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error inserting friendship: %w", err)
	}

	return tx.Commit(ctx)
}

func (db *postgresDB) DeleteFriendRequest(ctx context.Context, from, to model.PlayerID) error {
	const query = `DELETE FROM friend_requests WHERE from_player=@from AND to_player=@to`

	_, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"from": int64(from), "to": int64(to)})
	if err != nil {
		return fmt.Errorf("error deleting friend request %d -> %d: %w", from, to, err)
	}
	return nil
}

func (db *postgresDB) DeleteFriend(ctx context.Context, a, b model.PlayerID) error {
	const query = `DELETE FROM friendships WHERE player_a=@a AND player_b=@b`

	x, y := orderedPair(a, b)
	_, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"a": int64(x), "b": int64(y)})
	if err != nil {
		return fmt.Errorf("error deleting friendship: %w", err)
	}
	return nil
}

func (db *postgresDB) ListFriends(ctx context.Context, id model.PlayerID) ([]model.PlayerID, error) {
	const query = `SELECT player_a, player_b FROM friendships
			WHERE player_a=@id OR player_b=@id
			ORDER BY player_a, player_b`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"id": int64(id)})
	if err != nil {
		return nil, fmt.Errorf("error listing friends for player %d: %w", id, err)
	}
	defer rows.Close()

	results := make([]model.PlayerID, 0, 8)
	for rows.Next() {
		var a, b model.PlayerID
		if err := rows.Scan(&a, &b); err != nil {
			return nil, err
		}
		if a == id {
			results = append(results, b)
		} else {
			results = append(results, a)
		}
	}
	return results, rows.Err()
}

func (db *postgresDB) ListFriendRequests(ctx context.Context, to model.PlayerID) ([]model.FriendRequest, error) {
	const query = `SELECT from_player, to_player, sent FROM friend_requests
			WHERE to_player=@to ORDER BY sent`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"to": int64(to)})
	if err != nil {
		return nil, fmt.Errorf("error listing friend requests for player %d: %w", to, err)
	}
	defer rows.Close()

	results := make([]model.FriendRequest, 0, 4)
	for rows.Next() {
		var r model.FriendRequest
		var sent pgtype.Timestamptz
		if err := rows.Scan(&r.FromID, &r.ToID, &sent); err != nil {
			return nil, err
		}
		r.Sent = sent.Time
		results = append(results, r)
	}
	return results, rows.Err()
}

// friendships rows are stored with player_a < player_b so each pair has
// exactly one row.
func orderedPair(a, b model.PlayerID) (model.PlayerID, model.PlayerID) {
	if a < b {
		return a, b
	}
	return b, a
}
