// Package model contains domain models passed between layers.
package model

// ActivityCounts holds the raw per-participant activity counters.
// Absent counters decode to zero.
type ActivityCounts struct {
	SkillBadges  int `json:"skill_badges"`
	ArcadeGames  int `json:"arcade_games"`
	TriviaGames  int `json:"trivia_games"`
	SpecialGames int `json:"special_games,omitempty"` // optional, scored 1:1
}

// Record is one input row: participant identity plus raw counters.
type Record struct {
	ID     string         // stable participant identifier
	Name   string         // display name
	Status string         // access-code redeem status, e.g. "Yes"/"No"
	Counts ActivityCounts // raw counters
}
