package controller

import (
	"context"
	"sort"

	"github.com/mfields/courtside/model"
)

// GetRanking places a player among every prediction made for one game,
// ordered by descending score. A score of exactly 0 acts as a shared
// floor: the first zero-score position in the scan is the rank reported
// for every player at or below it, so a crowd of zero scores ties instead
// of filling out the bottom places one by one.
func (c *controller) GetRanking(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Ranking, error) {
	predictions, err := c.db.ListPredictionsForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Score > predictions[j].Score
	})

	for i, p := range predictions {
		if p.PlayerID == playerID {
			return &model.Ranking{Rank: i + 1, Score: p.Score}, nil
		}
		if p.Score == 0 {
			return &model.Ranking{Rank: i + 1, Score: p.Score}, nil
		}
	}

	// No one has predicted, or this player hasn't: everyone ties for
	// the last shared position, which is 1st when the game is empty.
	return &model.Ranking{Rank: max(1, len(predictions)), Score: 0}, nil
}
