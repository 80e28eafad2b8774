package controller

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/mfields/courtside/db"
	"github.com/mfields/courtside/model"
)

const maxLeagueNameLen = 40

// joinCodeAttempts bounds the retry loop when a generated code collides.
const joinCodeAttempts = 5

func randomCode() string {
	const digits = "0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = digits[rand.IntN(len(digits))]
	}
	return string(b)
}

func (c *controller) CreateLeague(ctx context.Context, ownerID model.PlayerID, name string, mode model.LeagueMode, team string) (*model.League, error) {
	if name == "" || len(name) > maxLeagueNameLen {
		return nil, model.Validationf("league name must be between 1 and %d characters", maxLeagueNameLen)
	}
	if mode != model.MODE_CLASSIC && mode != model.MODE_TEAM {
		return nil, model.Validationf("unknown league mode %q", mode)
	}

	league := &model.League{
		Name:    name,
		OwnerID: ownerID,
		Mode:    mode,
	}
	if mode == model.MODE_TEAM {
		t := model.ParseTeam(team)
		if t.Equals(model.TEAM_UNKNOWN) {
			return nil, model.Validationf("unknown team %q", team)
		}
		league.Team = t
	} else if team != "" {
		return nil, model.Validationf("classic leagues do not take a team")
	}

	for i := 0; i < joinCodeAttempts; i++ {
		league.JoinCode = randomCode()
		err := c.db.AddLeague(ctx, league)
		if err == nil {
			league.Members = []model.PlayerID{ownerID}
			return league, nil
		}
		if !errors.Is(err, db.ErrDuplicate) {
			return nil, fmt.Errorf("error creating league: %w", err)
		}
		// A duplicate name fails every attempt; surface it rather
		// than burning the remaining retries on fresh codes.
		if _, nameErr := c.db.GetLeagueByJoinCode(ctx, league.JoinCode); errors.Is(nameErr, db.ErrLeagueNotFound) {
			return nil, model.Validationf("league name %q is taken", name)
		}
	}
	return nil, fmt.Errorf("could not generate a unique join code for league %q", name)
}

func (c *controller) GetLeague(ctx context.Context, playerID model.PlayerID, leagueID model.LeagueID) (*model.League, error) {
	league, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !league.HasPlayer(playerID) {
		return nil, &model.AuthorizationError{Msg: "not a member of this league"}
	}
	return league, nil
}

func (c *controller) ListLeagues(ctx context.Context, playerID model.PlayerID) ([]model.League, error) {
	return c.db.ListLeaguesForPlayer(ctx, playerID)
}

func (c *controller) DeleteLeague(ctx context.Context, playerID model.PlayerID, leagueID model.LeagueID) error {
	league, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return err
	}
	if league.OwnerID != playerID {
		return &model.AuthorizationError{Msg: "only the league owner can delete a league"}
	}
	return c.db.DeleteLeague(ctx, leagueID)
}

// InvitePlayers invites each named player by username. Invalid names and
// players already attached to the league are reported back rather than
// failing the whole batch.
func (c *controller) InvitePlayers(ctx context.Context, ownerID model.PlayerID, leagueID model.LeagueID, usernames []string) (*model.InviteResult, error) {
	league, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if league.OwnerID != ownerID {
		return nil, &model.AuthorizationError{Msg: "only the league owner can invite players"}
	}

	result := &model.InviteResult{}
	for _, username := range usernames {
		player, err := c.db.GetPlayerByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, db.ErrPlayerNotFound) {
				result.Invalid = append(result.Invalid, username)
				continue
			}
			return nil, fmt.Errorf("error looking up player %q: %w", username, err)
		}

		if league.HasPlayer(player.ID) {
			result.AlreadyInLeague = append(result.AlreadyInLeague, username)
			continue
		}
		if err := c.db.AddLeaguePlayer(ctx, leagueID, player.ID, model.ROLE_INVITED); err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				result.AlreadyInLeague = append(result.AlreadyInLeague, username)
				continue
			}
			return nil, fmt.Errorf("error inviting player %d: %w", player.ID, err)
		}
		result.Invited = append(result.Invited, username)
	}
	return result, nil
}

func (c *controller) AcceptInvite(ctx context.Context, playerID model.PlayerID, leagueID model.LeagueID) error {
	moved, err := c.db.MoveLeaguePlayer(ctx, leagueID, playerID, model.ROLE_INVITED, model.ROLE_MEMBER)
	if err != nil {
		return err
	}
	if !moved {
		return model.Validationf("no open invite to this league")
	}
	return nil
}

func (c *controller) RequestJoin(ctx context.Context, playerID model.PlayerID, joinCode string) (*model.League, error) {
	league, err := c.db.GetLeagueByJoinCode(ctx, joinCode)
	if err != nil {
		return nil, err
	}
	if league.HasPlayer(playerID) {
		return nil, model.Validationf("already attached to this league")
	}
	if err := c.db.AddLeaguePlayer(ctx, league.ID, playerID, model.ROLE_REQUESTING); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, model.Validationf("already attached to this league")
		}
		return nil, fmt.Errorf("error requesting to join league %d: %w", league.ID, err)
	}
	league.Requesting = append(league.Requesting, playerID)
	return league, nil
}

func (c *controller) ApproveRequest(ctx context.Context, ownerID model.PlayerID, leagueID model.LeagueID, playerID model.PlayerID) error {
	league, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return err
	}
	if league.OwnerID != ownerID {
		return &model.AuthorizationError{Msg: "only the league owner can approve join requests"}
	}

	moved, err := c.db.MoveLeaguePlayer(ctx, leagueID, playerID, model.ROLE_REQUESTING, model.ROLE_MEMBER)
	if err != nil {
		return err
	}
	if !moved {
		return model.Validationf("player %d has no pending request", playerID)
	}
	return nil
}

// RemovePlayer drops a player from any of the league's three sets. The
// owner can remove anyone else; every player can remove themselves,
// which also covers declining an invite or withdrawing a request.
func (c *controller) RemovePlayer(ctx context.Context, actorID model.PlayerID, leagueID model.LeagueID, playerID model.PlayerID) error {
	league, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return err
	}
	if actorID != playerID && league.OwnerID != actorID {
		return &model.AuthorizationError{Msg: "only the league owner can remove other players"}
	}
	if playerID == league.OwnerID {
		return model.Validationf("the league owner cannot be removed; delete the league instead")
	}

	removed, err := c.db.RemoveLeaguePlayer(ctx, leagueID, playerID)
	if err != nil {
		return err
	}
	if !removed {
		return model.Validationf("player %d is not attached to this league", playerID)
	}
	return nil
}
