package scoring

import (
	"fmt"

	"github.com/okian/arcadeboard/internal/domain/model"
)

// AchievementsOf returns every catalog achievement whose predicate holds,
// in catalog order. The result is never nil.
func (e *Engine) AchievementsOf(counts model.ActivityCounts, totalPoints int) ([]Achievement, error) {
	if err := validateCounts(counts); err != nil {
		return nil, err
	}
	if totalPoints < 0 {
		return nil, fmt.Errorf("%w: total points is negative (%d)", ErrInvalidInput, totalPoints)
	}

	unlocked := make([]Achievement, 0, len(e.rules.Achievements))
	for _, a := range e.rules.Achievements {
		if a.unlocked(counts, totalPoints) {
			unlocked = append(unlocked, a.Name)
		}
	}
	return unlocked, nil
}

func (a AchievementRule) unlocked(c model.ActivityCounts, totalPoints int) bool {
	switch a.Metric {
	case MetricSkillBadges:
		return c.SkillBadges >= a.Min
	case MetricArcadeGames:
		return c.ArcadeGames >= a.Min
	case MetricTriviaGames:
		return c.TriviaGames >= a.Min
	case MetricTotalPoints:
		return totalPoints >= a.Min
	case MetricAllCategories:
		return min(c.SkillBadges, c.ArcadeGames, c.TriviaGames) >= a.Min
	default:
		return false
	}
}
