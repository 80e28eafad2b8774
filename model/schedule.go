package model

import "time"

// ScheduleEntry is one upcoming game in a player's schedule view together
// with the player's prediction for it. Leagues lists the names of the
// leagues the game would count toward if the prediction were submitted
// now; once Submitted the frozen set is shown instead.
type ScheduleEntry struct {
	PredictionID PredictionID
	Date         time.Time
	Status       PredictionStatus
	AwayTeam     string
	HomeTeam     string
	AwayScore    int // predicted, only set once Submitted
	HomeScore    int
	Leagues      []string
}

// ScheduleDay groups a day's schedule entries, ordered by tip-off time.
type ScheduleDay struct {
	Date  string // YYYY-MM-DD
	Games []ScheduleEntry
}
