package scoring

import "github.com/okian/arcadeboard/internal/domain/model"

// Classify returns the highest milestone tier whose thresholds are all met,
// and its bonus. Bonuses of lower tiers never stack.
func (e *Engine) Classify(counts model.ActivityCounts) (Tier, int, error) {
	if err := validateCounts(counts); err != nil {
		return MilestoneNone, 0, err
	}
	if i := e.milestoneIndex(counts); i >= 0 {
		m := e.rules.Milestones[i]
		return m.Tier, m.Bonus, nil
	}
	return MilestoneNone, 0, nil
}

// milestoneIndex returns the index of the strictest matched rule, or -1.
func (e *Engine) milestoneIndex(counts model.ActivityCounts) int {
	ms := e.rules.Milestones
	for i := len(ms) - 1; i >= 0; i-- {
		if meets(counts, ms[i]) {
			return i
		}
	}
	return -1
}

func meets(c model.ActivityCounts, m MilestoneRule) bool {
	return c.ArcadeGames >= m.MinArcade &&
		c.TriviaGames >= m.MinTrivia &&
		c.SkillBadges >= m.MinSkillBadges
}

// MilestoneProgress describes how far a participant is from the next tier.
type MilestoneProgress struct {
	Current  Tier `json:"current"`
	Next     Tier `json:"next,omitempty"`
	Complete bool `json:"complete"`

	// Completion per dimension toward Next, capped at 100.
	ArcadePercent      float64 `json:"arcade_percent"`
	TriviaPercent      float64 `json:"trivia_percent"`
	SkillBadgesPercent float64 `json:"skill_badges_percent"`

	// Counters still missing for Next.
	ArcadeRemaining      int `json:"arcade_remaining"`
	TriviaRemaining      int `json:"trivia_remaining"`
	SkillBadgesRemaining int `json:"skill_badges_remaining"`
}

// NextMilestone reports progress toward the tier above the achieved one.
func (e *Engine) NextMilestone(counts model.ActivityCounts) (MilestoneProgress, error) {
	tier, _, err := e.Classify(counts)
	if err != nil {
		return MilestoneProgress{}, err
	}
	return e.progressOf(counts, tier), nil
}

func (e *Engine) progressOf(counts model.ActivityCounts, current Tier) MilestoneProgress {
	next := e.milestoneIndex(counts) + 1
	if next >= len(e.rules.Milestones) {
		return MilestoneProgress{
			Current:            current,
			Complete:           true,
			ArcadePercent:      100,
			TriviaPercent:      100,
			SkillBadgesPercent: 100,
		}
	}

	target := e.rules.Milestones[next]
	return MilestoneProgress{
		Current:              current,
		Next:                 target.Tier,
		ArcadePercent:        percentOf(counts.ArcadeGames, target.MinArcade),
		TriviaPercent:        percentOf(counts.TriviaGames, target.MinTrivia),
		SkillBadgesPercent:   percentOf(counts.SkillBadges, target.MinSkillBadges),
		ArcadeRemaining:      max(target.MinArcade-counts.ArcadeGames, 0),
		TriviaRemaining:      max(target.MinTrivia-counts.TriviaGames, 0),
		SkillBadgesRemaining: max(target.MinSkillBadges-counts.SkillBadges, 0),
	}
}

func percentOf(actual, required int) float64 {
	if required <= 0 || actual >= required {
		return 100
	}
	return float64(actual*100) / float64(required)
}
