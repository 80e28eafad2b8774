package model

// Ranking is a player's placement among all predictions for one game.
// Rank is 1-indexed. Ties at a score of zero share a single floor rank
// rather than being pushed to last place.
type Ranking struct {
	Rank  int
	Score int
}

// LeaderboardEntry is one row of a league's leaderboard: the sum of a
// member's Complete prediction scores and a dense sequential rank.
type LeaderboardEntry struct {
	PlayerID   PlayerID
	Username   string
	TotalScore int
	Rank       int
}

// LeaderboardStats are the owner-view aggregates for a league.
type LeaderboardStats struct {
	GamesPlayed   int     // completed predictions across all members
	CombinedScore int     // sum of every member's total
	AvgGameScore  float64 // mean per-game score per member, 2 decimal places
}

type Leaderboard struct {
	LeagueID LeagueID
	Entries  []LeaderboardEntry
	Stats    LeaderboardStats
}
