package types

import "github.com/okian/arcadeboard/internal/domain/scoring"

// Summary holds population-level statistics for one batch. Skipped records
// contribute to none of these figures.
type Summary struct {
	Participants    int              `json:"participants"`
	Active          int              `json:"active"` // total points > 0
	Skipped         int              `json:"skipped"`
	Milestones      []MilestoneCount `json:"milestones"` // strictest tier first, None last
	RankTiers       []RankTierCount  `json:"rank_tiers"`
	Totals          Totals           `json:"totals"`
	Points          Distribution     `json:"points"`
	BadgeCategories []CategoryCount  `json:"badge_categories"`
	Statuses        []CategoryCount  `json:"statuses"`
	Leaderboard     []Entry          `json:"leaderboard"`
}

// MilestoneCount is the number of participants at one milestone tier.
type MilestoneCount struct {
	Tier       scoring.Tier `json:"tier"`
	Count      int          `json:"count"`
	Percentage float64      `json:"percentage"`
}

// RankTierCount is the number of participants in one rank tier.
type RankTierCount struct {
	Tier  scoring.RankTier `json:"tier"`
	Count int              `json:"count"`
}

// Stat is a sum with its mean over the participants.
type Stat struct {
	Sum  int     `json:"sum"`
	Mean float64 `json:"mean"`
}

// Totals aggregates each raw counter and the point totals.
type Totals struct {
	SkillBadges  Stat `json:"skill_badges"`
	ArcadeGames  Stat `json:"arcade_games"`
	TriviaGames  Stat `json:"trivia_games"`
	SpecialGames Stat `json:"special_games"`
	Points       Stat `json:"points"`
}

// Bucket counts totals in the inclusive range [Lower, Upper].
type Bucket struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
	Count int `json:"count"`
}

// Distribution is a histogram of point totals.
type Distribution struct {
	Min     int      `json:"min"`
	Max     int      `json:"max"`
	Mean    float64  `json:"mean"`
	Buckets []Bucket `json:"buckets"`
}

// CategoryCount is a labelled participant count.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
