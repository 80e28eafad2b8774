package model

import (
	"fmt"
	"strings"
)

type NBATeam struct {
	name   string
	loc    string
	mascot string
	short  string   // If there is a short form of the name, e.g. GS for GSW
	nick   []string // Any other nicknames that are used for the team, e.g. Sixers for PHI
}

func (t *NBATeam) String() string {
	return t.name
}

func (t *NBATeam) Friendly() string {
	if t.loc == "" {
		return t.name
	}
	return fmt.Sprintf("%s %s", t.loc, t.mascot)
}

func (t *NBATeam) Equals(o *NBATeam) bool {
	if o == nil {
		return false
	}

	if t == o {
		return true
	}

	return t.name == o.name &&
		t.loc == o.loc &&
		t.mascot == o.mascot &&
		t.short == o.short &&
		arrayEquals(t.nick, o.nick)
}

var (
	TEAM_UNKNOWN *NBATeam = &NBATeam{name: "UNK"}

	// Eastern Conference
	TEAM_ATL *NBATeam = &NBATeam{name: "ATL", loc: "Atlanta", mascot: "Hawks"}
	TEAM_BOS *NBATeam = &NBATeam{name: "BOS", loc: "Boston", mascot: "Celtics"}
	TEAM_BKN *NBATeam = &NBATeam{name: "BKN", loc: "Brooklyn", mascot: "Nets"}
	TEAM_CHA *NBATeam = &NBATeam{name: "CHA", loc: "Charlotte", mascot: "Hornets"}
	TEAM_CHI *NBATeam = &NBATeam{name: "CHI", loc: "Chicago", mascot: "Bulls"}
	TEAM_CLE *NBATeam = &NBATeam{name: "CLE", loc: "Cleveland", mascot: "Cavaliers", nick: []string{"Cavs"}}
	TEAM_DET *NBATeam = &NBATeam{name: "DET", loc: "Detroit", mascot: "Pistons"}
	TEAM_IND *NBATeam = &NBATeam{name: "IND", loc: "Indiana", mascot: "Pacers"}
	TEAM_MIA *NBATeam = &NBATeam{name: "MIA", loc: "Miami", mascot: "Heat"}
	TEAM_MIL *NBATeam = &NBATeam{name: "MIL", loc: "Milwaukee", mascot: "Bucks"}
	TEAM_NYK *NBATeam = &NBATeam{name: "NYK", loc: "New York", mascot: "Knicks", short: "NY"}
	TEAM_ORL *NBATeam = &NBATeam{name: "ORL", loc: "Orlando", mascot: "Magic"}
	TEAM_PHI *NBATeam = &NBATeam{name: "PHI", loc: "Philadelphia", mascot: "76ers", nick: []string{"Sixers", "Philly"}}
	TEAM_TOR *NBATeam = &NBATeam{name: "TOR", loc: "Toronto", mascot: "Raptors", nick: []string{"Raps"}}
	TEAM_WAS *NBATeam = &NBATeam{name: "WAS", loc: "Washington", mascot: "Wizards"}

	// Western Conference
	TEAM_DAL *NBATeam = &NBATeam{name: "DAL", loc: "Dallas", mascot: "Mavericks", nick: []string{"Mavs"}}
	TEAM_DEN *NBATeam = &NBATeam{name: "DEN", loc: "Denver", mascot: "Nuggets"}
	TEAM_GSW *NBATeam = &NBATeam{name: "GSW", loc: "Golden State", mascot: "Warriors", short: "GS", nick: []string{"Dubs"}}
	TEAM_HOU *NBATeam = &NBATeam{name: "HOU", loc: "Houston", mascot: "Rockets"}
	TEAM_LAC *NBATeam = &NBATeam{name: "LAC", loc: "Los Angeles", mascot: "Clippers", nick: []string{"Clips"}}
	TEAM_LAL *NBATeam = &NBATeam{name: "LAL", loc: "Los Angeles", mascot: "Lakers"}
	TEAM_MEM *NBATeam = &NBATeam{name: "MEM", loc: "Memphis", mascot: "Grizzlies", nick: []string{"Grizz"}}
	TEAM_MIN *NBATeam = &NBATeam{name: "MIN", loc: "Minnesota", mascot: "Timberwolves", nick: []string{"Wolves"}}
	TEAM_NOP *NBATeam = &NBATeam{name: "NOP", loc: "New Orleans", mascot: "Pelicans", short: "NO", nick: []string{"Pels"}}
	TEAM_OKC *NBATeam = &NBATeam{name: "OKC", loc: "Oklahoma City", mascot: "Thunder"}
	TEAM_PHX *NBATeam = &NBATeam{name: "PHX", loc: "Phoenix", mascot: "Suns"}
	TEAM_POR *NBATeam = &NBATeam{name: "POR", loc: "Portland", mascot: "Trail Blazers", nick: []string{"Blazers"}}
	TEAM_SAC *NBATeam = &NBATeam{name: "SAC", loc: "Sacramento", mascot: "Kings"}
	TEAM_SAS *NBATeam = &NBATeam{name: "SAS", loc: "San Antonio", mascot: "Spurs", short: "SA"}
	TEAM_UTA *NBATeam = &NBATeam{name: "UTA", loc: "Utah", mascot: "Jazz"}

	teamMap map[string]*NBATeam = buildTeamMap()
)

func ParseTeam(name string) *NBATeam {
	t := teamMap[strings.ToLower(name)]
	if t == nil {
		return TEAM_UNKNOWN
	}
	return t
}

func buildTeamMap() map[string]*NBATeam {
	teams := []*NBATeam{
		// Eastern Conference
		TEAM_ATL, TEAM_BOS, TEAM_BKN, TEAM_CHA, TEAM_CHI, TEAM_CLE, TEAM_DET, TEAM_IND,
		TEAM_MIA, TEAM_MIL, TEAM_NYK, TEAM_ORL, TEAM_PHI, TEAM_TOR, TEAM_WAS,
		// Western Conference
		TEAM_DAL, TEAM_DEN, TEAM_GSW, TEAM_HOU, TEAM_LAC, TEAM_LAL, TEAM_MEM, TEAM_MIN,
		TEAM_NOP, TEAM_OKC, TEAM_PHX, TEAM_POR, TEAM_SAC, TEAM_SAS, TEAM_UTA,
	}

	teamMap := make(map[string]*NBATeam)
	for _, t := range teams {
		teamMap[strings.ToLower(t.name)] = t

		if t.mascot != "" {
			teamMap[strings.ToLower(t.mascot)] = t
		}

		if t.short != "" {
			teamMap[strings.ToLower(t.short)] = t
		}

		for _, n := range t.nick {
			teamMap[strings.ToLower(n)] = t
		}
	}

	// Locations are only mapped when unique; "Los Angeles" matches both
	// LAL and LAC so it resolves to neither.
	locCount := make(map[string]int)
	for _, t := range teams {
		locCount[strings.ToLower(t.loc)]++
	}
	for _, t := range teams {
		key := strings.ToLower(t.loc)
		if locCount[key] == 1 {
			teamMap[key] = t
		}
	}

	return teamMap
}

func arrayEquals(a, b []string) bool {
	if a == nil && b == nil {
		return true
	}

	if (a == nil && b != nil) || (a != nil && b == nil) {
		return false
	}

	if len(a) != len(b) {
		return false
	}

	for i, v := range a {
		if v != b[i] {
			return false
		}
	}

	return true
}
