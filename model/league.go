package model

import "strings"

type LeagueID int64

type LeagueMode string

const (
	MODE_CLASSIC LeagueMode = "classic"
	MODE_TEAM    LeagueMode = "team"
)

func ParseLeagueMode(s string) (LeagueMode, bool) {
	switch strings.ToLower(s) {
	case "classic":
		return MODE_CLASSIC, true
	case "team":
		return MODE_TEAM, true
	default:
		return "", false
	}
}

// LeagueRole is which of a league's three player sets a player is in.
// A player is in at most one set at a time; the db enforces this with a
// single (league, player) uniqueness constraint so a set move can never
// leave a player in two sets.
type LeagueRole string

const (
	ROLE_MEMBER     LeagueRole = "member"
	ROLE_INVITED    LeagueRole = "invited"
	ROLE_REQUESTING LeagueRole = "requesting"
)

// League is a named group of players competing on the same predictions.
// Classic leagues count every game; team leagues count only games
// involving the designated team.
type League struct {
	ID       LeagueID
	Name     string
	OwnerID  PlayerID
	JoinCode string // 8 digit code other players use to request to join
	Mode     LeagueMode
	Team     *NBATeam // only set when Mode == MODE_TEAM

	Members    []PlayerID
	Invited    []PlayerID
	Requesting []PlayerID
}

// Counts reports whether g counts toward this league's leaderboard.
func (l *League) Counts(g *Game) bool {
	if l.Mode == MODE_CLASSIC {
		return true
	}
	return g.Involves(l.Team)
}

func (l *League) IsMember(id PlayerID) bool {
	return containsPlayer(l.Members, id)
}

func (l *League) HasPlayer(id PlayerID) bool {
	return containsPlayer(l.Members, id) ||
		containsPlayer(l.Invited, id) ||
		containsPlayer(l.Requesting, id)
}

// InviteResult reports what happened to each username in an invite batch.
type InviteResult struct {
	Invited         []string
	AlreadyInLeague []string
	Invalid         []string
}

func containsPlayer(ids []PlayerID, id PlayerID) bool {
	for _, p := range ids {
		if p == id {
			return true
		}
	}
	return false
}
