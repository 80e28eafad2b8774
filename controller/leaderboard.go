package controller

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/mfields/courtside/model"
)

// GetLeaderboard totals every member's Complete prediction scores and
// ranks them by descending total. Ranks are dense and sequential: equal
// totals keep their stable sort order and take consecutive ranks, unlike
// the per-game ranking's shared zero floor.
//
// Every Complete prediction a member has counts, not just the ones whose
// frozen league set includes this league. In classic leagues the two are
// the same; in team leagues the total is the member's whole body of work.
func (c *controller) GetLeaderboard(ctx context.Context, leagueID model.LeagueID) (*model.Leaderboard, error) {
	league, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error looking up league: %w", err)
	}

	entries := make([]model.LeaderboardEntry, 0, len(league.Members))
	stats := model.LeaderboardStats{}
	avgSum := 0.0
	playersWithGames := 0

	for _, memberID := range league.Members {
		player, err := c.db.GetPlayer(ctx, memberID)
		if err != nil {
			return nil, fmt.Errorf("error looking up league member %d: %w", memberID, err)
		}

		completed, err := c.db.ListCompletedPredictions(ctx, memberID)
		if err != nil {
			return nil, fmt.Errorf("error loading predictions for member %d: %w", memberID, err)
		}

		total := 0
		for _, p := range completed {
			total += p.Score
		}

		entries = append(entries, model.LeaderboardEntry{
			PlayerID:   memberID,
			Username:   player.Username,
			TotalScore: total,
		})

		stats.GamesPlayed += len(completed)
		stats.CombinedScore += total
		if len(completed) > 0 {
			avgSum += float64(total) / float64(len(completed))
			playersWithGames++
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore > entries[j].TotalScore
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	if playersWithGames > 0 {
		stats.AvgGameScore = roundTo2(avgSum / float64(playersWithGames))
	}

	return &model.Leaderboard{
		LeagueID: leagueID,
		Entries:  entries,
		Stats:    stats,
	}, nil
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
