package scoring

import (
	"fmt"
)

// Tier is a milestone tier label.
type Tier string

// Milestone tiers of the default rule set.
const (
	MilestoneNone     Tier = "None"
	Milestone1        Tier = "Milestone 1"
	Milestone2        Tier = "Milestone 2"
	Milestone3        Tier = "Milestone 3"
	MilestoneUltimate Tier = "Ultimate"
)

// RankTier is a percentile-based, population-relative label.
type RankTier string

// Rank tiers of the default rule set.
const (
	RankGrandmaster RankTier = "Grandmaster"
	RankMaster      RankTier = "Master"
	RankChampion    RankTier = "Champion"
	RankWarrior     RankTier = "Warrior"
	RankFighter     RankTier = "Fighter"
	RankRookie      RankTier = "Rookie"
)

// Achievement is an unlockable label from the achievement catalog.
type Achievement string

// Achievements of the default catalog.
const (
	AchievementScholar     Achievement = "Scholar"
	AchievementGamer       Achievement = "Gamer"
	AchievementQuizMaster  Achievement = "QuizMaster"
	AchievementPointHunter Achievement = "PointHunter"
	AchievementAllRounder  Achievement = "AllRounder"
)

// Metric names the quantity an achievement rule is evaluated on.
type Metric string

// Supported achievement metrics.
const (
	MetricSkillBadges   Metric = "skill_badges"
	MetricArcadeGames   Metric = "arcade_games"
	MetricTriviaGames   Metric = "trivia_games"
	MetricTotalPoints   Metric = "total_points"
	MetricAllCategories Metric = "all_categories" // each of the three counters >= Min
)

// MilestoneRule is one row of the milestone table. A tier is reached only
// when all three thresholds are met.
type MilestoneRule struct {
	Tier           Tier `koanf:"tier" json:"tier"`
	MinArcade      int  `koanf:"min_arcade" json:"min_arcade"`
	MinTrivia      int  `koanf:"min_trivia" json:"min_trivia"`
	MinSkillBadges int  `koanf:"min_skill_badges" json:"min_skill_badges"`
	Bonus          int  `koanf:"bonus" json:"bonus"`
}

// LevelRules holds the level formula constants.
type LevelRules struct {
	// UnstartedXPToNext is reported as XPToNextLevel for zero points.
	UnstartedXPToNext int `koanf:"unstarted_xp_to_next" json:"unstarted_xp_to_next"`
}

// RankTierRule assigns Tier to percentiles >= MinPercentile.
type RankTierRule struct {
	Tier          RankTier `koanf:"tier" json:"tier"`
	MinPercentile float64  `koanf:"min_percentile" json:"min_percentile"`
}

// ComboRule assigns Label when the balanced activity reaches MinActivity.
type ComboRule struct {
	MinActivity int     `koanf:"min_activity" json:"min_activity"`
	Label       string  `koanf:"label" json:"label"`
	Multiplier  float64 `koanf:"multiplier" json:"multiplier"`
}

// ComboRules configures the combo evaluator.
type ComboRules struct {
	// SkillBadgesPerUnit converts skill badges into one unit of activity.
	SkillBadgesPerUnit int         `koanf:"skill_badges_per_unit" json:"skill_badges_per_unit"`
	Tiers              []ComboRule `koanf:"tiers" json:"tiers"` // highest first
	DefaultLabel       string      `koanf:"default_label" json:"default_label"`
}

// AchievementRule unlocks Name when Metric >= Min.
type AchievementRule struct {
	Name   Achievement `koanf:"name" json:"name"`
	Metric Metric      `koanf:"metric" json:"metric"`
	Min    int         `koanf:"min" json:"min"`
}

// Rules is the complete, externally overridable rule set.
type Rules struct {
	SkillBadgesPerPoint int               `koanf:"skill_badges_per_point" json:"skill_badges_per_point"`
	Milestones          []MilestoneRule   `koanf:"milestones" json:"milestones"` // loosest first
	Level               LevelRules        `koanf:"level" json:"level"`
	RankTiers           []RankTierRule    `koanf:"rank_tiers" json:"rank_tiers"` // highest first
	Combo               ComboRules        `koanf:"combo" json:"combo"`
	Achievements        []AchievementRule `koanf:"achievements" json:"achievements"`
}

// DefaultRules returns the program's published scoring rules.
func DefaultRules() Rules {
	return Rules{
		SkillBadgesPerPoint: 2,
		Milestones: []MilestoneRule{
			{Tier: Milestone1, MinArcade: 4, MinTrivia: 4, MinSkillBadges: 10, Bonus: 5},
			{Tier: Milestone2, MinArcade: 6, MinTrivia: 6, MinSkillBadges: 20, Bonus: 10},
			{Tier: Milestone3, MinArcade: 8, MinTrivia: 7, MinSkillBadges: 30, Bonus: 15},
			{Tier: MilestoneUltimate, MinArcade: 10, MinTrivia: 8, MinSkillBadges: 44, Bonus: 25},
		},
		Level: LevelRules{UnstartedXPToNext: 100},
		RankTiers: []RankTierRule{
			{Tier: RankGrandmaster, MinPercentile: 95},
			{Tier: RankMaster, MinPercentile: 80},
			{Tier: RankChampion, MinPercentile: 60},
			{Tier: RankWarrior, MinPercentile: 40},
			{Tier: RankFighter, MinPercentile: 20},
			{Tier: RankRookie, MinPercentile: 0},
		},
		Combo: ComboRules{
			SkillBadgesPerUnit: 5,
			Tiers: []ComboRule{
				{MinActivity: 5, Label: "MegaCombo x3", Multiplier: 3},
				{MinActivity: 3, Label: "Combo x2", Multiplier: 2},
				{MinActivity: 1, Label: "Streak x1.5", Multiplier: 1.5},
			},
			DefaultLabel: "KeepGoing",
		},
		Achievements: []AchievementRule{
			{Name: AchievementScholar, Metric: MetricSkillBadges, Min: 10},
			{Name: AchievementGamer, Metric: MetricArcadeGames, Min: 5},
			{Name: AchievementQuizMaster, Metric: MetricTriviaGames, Min: 5},
			{Name: AchievementPointHunter, Metric: MetricTotalPoints, Min: 50},
			{Name: AchievementAllRounder, Metric: MetricAllCategories, Min: 1},
		},
	}
}

// Validate checks the ordering and domination invariants of the rule set.
func (r Rules) Validate() error {
	if r.SkillBadgesPerPoint < 1 {
		return fmt.Errorf("%w: skill_badges_per_point must be >= 1, got %d", ErrInvalidRules, r.SkillBadgesPerPoint)
	}
	if err := validateMilestones(r.Milestones); err != nil {
		return err
	}
	if r.Level.UnstartedXPToNext < 1 {
		return fmt.Errorf("%w: level.unstarted_xp_to_next must be >= 1", ErrInvalidRules)
	}
	if err := validateRankTiers(r.RankTiers); err != nil {
		return err
	}
	if err := validateCombo(r.Combo); err != nil {
		return err
	}
	return validateAchievements(r.Achievements)
}

func validateMilestones(ms []MilestoneRule) error {
	seen := make(map[Tier]bool, len(ms))
	for i, m := range ms {
		if m.Tier == "" || m.Tier == MilestoneNone {
			return fmt.Errorf("%w: milestone %d has reserved or empty tier name %q", ErrInvalidRules, i, m.Tier)
		}
		if seen[m.Tier] {
			return fmt.Errorf("%w: duplicate milestone tier %q", ErrInvalidRules, m.Tier)
		}
		seen[m.Tier] = true
		if m.MinArcade < 0 || m.MinTrivia < 0 || m.MinSkillBadges < 0 || m.Bonus < 0 {
			return fmt.Errorf("%w: milestone %q has negative threshold or bonus", ErrInvalidRules, m.Tier)
		}
		if m.Bonus > MaxCounter {
			return fmt.Errorf("%w: milestone %q bonus exceeds %d", ErrInvalidRules, m.Tier, MaxCounter)
		}
		if i == 0 {
			continue
		}
		prev := ms[i-1]
		if m.MinArcade < prev.MinArcade || m.MinTrivia < prev.MinTrivia || m.MinSkillBadges < prev.MinSkillBadges {
			return fmt.Errorf("%w: milestone %q does not dominate %q", ErrInvalidRules, m.Tier, prev.Tier)
		}
		if m.Bonus <= prev.Bonus {
			return fmt.Errorf("%w: milestone %q bonus must exceed %q bonus", ErrInvalidRules, m.Tier, prev.Tier)
		}
	}
	return nil
}

func validateRankTiers(ts []RankTierRule) error {
	if len(ts) == 0 {
		return fmt.Errorf("%w: at least one rank tier is required", ErrInvalidRules)
	}
	for i, t := range ts {
		if t.Tier == "" {
			return fmt.Errorf("%w: rank tier %d has empty name", ErrInvalidRules, i)
		}
		if t.MinPercentile < 0 || t.MinPercentile > 100 {
			return fmt.Errorf("%w: rank tier %q percentile %v outside [0,100]", ErrInvalidRules, t.Tier, t.MinPercentile)
		}
		if i > 0 && t.MinPercentile >= ts[i-1].MinPercentile {
			return fmt.Errorf("%w: rank tiers must be ordered by strictly decreasing percentile", ErrInvalidRules)
		}
	}
	if last := ts[len(ts)-1]; last.MinPercentile != 0 {
		return fmt.Errorf("%w: lowest rank tier %q must start at percentile 0", ErrInvalidRules, last.Tier)
	}
	return nil
}

func validateCombo(c ComboRules) error {
	if c.SkillBadgesPerUnit < 1 {
		return fmt.Errorf("%w: combo.skill_badges_per_unit must be >= 1", ErrInvalidRules)
	}
	if c.DefaultLabel == "" {
		return fmt.Errorf("%w: combo.default_label must not be empty", ErrInvalidRules)
	}
	for i, t := range c.Tiers {
		if t.Label == "" || t.MinActivity < 1 {
			return fmt.Errorf("%w: combo tier %d needs a label and min_activity >= 1", ErrInvalidRules, i)
		}
		if i > 0 && t.MinActivity >= c.Tiers[i-1].MinActivity {
			return fmt.Errorf("%w: combo tiers must be ordered by strictly decreasing min_activity", ErrInvalidRules)
		}
	}
	return nil
}

func validateAchievements(as []AchievementRule) error {
	seen := make(map[Achievement]bool, len(as))
	for i, a := range as {
		if a.Name == "" {
			return fmt.Errorf("%w: achievement %d has empty name", ErrInvalidRules, i)
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: duplicate achievement %q", ErrInvalidRules, a.Name)
		}
		seen[a.Name] = true
		switch a.Metric {
		case MetricSkillBadges, MetricArcadeGames, MetricTriviaGames, MetricTotalPoints, MetricAllCategories:
		default:
			return fmt.Errorf("%w: achievement %q has unknown metric %q", ErrInvalidRules, a.Name, a.Metric)
		}
		if a.Min < 0 {
			return fmt.Errorf("%w: achievement %q has negative min", ErrInvalidRules, a.Name)
		}
	}
	return nil
}
