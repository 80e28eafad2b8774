package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfields/courtside/db"
	"github.com/mfields/courtside/model"
)

// RequestFriend sends a friend request to the player owning friendCode.
func (c *controller) RequestFriend(ctx context.Context, playerID model.PlayerID, friendCode string) error {
	target, err := c.db.GetPlayerByFriendCode(ctx, friendCode)
	if err != nil {
		return err
	}
	if target.ID == playerID {
		return model.Validationf("cannot send a friend request to yourself")
	}

	if err := c.db.AddFriendRequest(ctx, playerID, target.ID); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return model.Validationf("friend request already sent")
		}
		return fmt.Errorf("error sending friend request to player %d: %w", target.ID, err)
	}
	return nil
}

func (c *controller) AcceptFriend(ctx context.Context, playerID, fromID model.PlayerID) error {
	return c.db.AcceptFriendRequest(ctx, fromID, playerID)
}

// RemoveFriend drops the friendship if there is one, and otherwise
// declines any pending request between the two players.
func (c *controller) RemoveFriend(ctx context.Context, playerID, friendID model.PlayerID) error {
	if err := c.db.DeleteFriend(ctx, playerID, friendID); err != nil {
		return err
	}
	if err := c.db.DeleteFriendRequest(ctx, friendID, playerID); err != nil {
		return err
	}
	return c.db.DeleteFriendRequest(ctx, playerID, friendID)
}

func (c *controller) ListFriends(ctx context.Context, playerID model.PlayerID) ([]model.Player, error) {
	ids, err := c.db.ListFriends(ctx, playerID)
	if err != nil {
		return nil, err
	}

	friends := make([]model.Player, 0, len(ids))
	for _, id := range ids {
		p, err := c.db.GetPlayer(ctx, id)
		if err != nil {
			if errors.Is(err, db.ErrPlayerNotFound) {
				continue
			}
			return nil, fmt.Errorf("error loading friend %d: %w", id, err)
		}
		friends = append(friends, *p)
	}
	return friends, nil
}

func (c *controller) ListFriendRequests(ctx context.Context, playerID model.PlayerID) ([]model.FriendRequest, error) {
	return c.db.ListFriendRequests(ctx, playerID)
}
