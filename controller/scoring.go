package controller

import "math"

// maxScoreDiff caps the per-side error that counts against a prediction.
// Each side contributes up to half the total, so accuracy falls linearly
// to 0 as the miss grows to maxScoreDiff and a miss beyond the cap costs
// nothing extra. Changing this value changes every future score's scale,
// so historical scores stop being comparable if it ever moves.
const maxScoreDiff = 50

const pointsPerSide = 50

// calculateScore converts a predicted final score and the actual final
// score into a settled accuracy score in [0, 100]. A perfect prediction
// scores 100. The function is total over all integer inputs; the caller
// is responsible for only scoring games that are Final.
func calculateScore(actualAway, actualHome, predictedAway, predictedHome int) int {
	awayDiff := min(maxScoreDiff, abs(actualAway-predictedAway))
	homeDiff := min(maxScoreDiff, abs(actualHome-predictedHome))

	awayPoints := (1 - float64(awayDiff)/maxScoreDiff) * pointsPerSide
	homePoints := (1 - float64(homeDiff)/maxScoreDiff) * pointsPerSide

	return int(math.Round(awayPoints + homePoints))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
