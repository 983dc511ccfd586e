package scoring

import "github.com/okian/arcadeboard/internal/domain/model"

// Combo is a label rewarding balanced activity across all categories.
// The multiplier is informational and never applied to points.
type Combo struct {
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

// ComboOf evaluates the combo for raw counters.
func (e *Engine) ComboOf(counts model.ActivityCounts) (Combo, error) {
	if err := validateCounts(counts); err != nil {
		return Combo{}, err
	}
	return e.comboOf(counts), nil
}

func (e *Engine) comboOf(counts model.ActivityCounts) Combo {
	c := e.rules.Combo
	activity := min(counts.SkillBadges/c.SkillBadgesPerUnit, counts.ArcadeGames, counts.TriviaGames)
	for _, t := range c.Tiers {
		if activity >= t.MinActivity {
			return Combo{Label: t.Label, Multiplier: t.Multiplier}
		}
	}
	return Combo{Label: c.DefaultLabel, Multiplier: 1}
}
