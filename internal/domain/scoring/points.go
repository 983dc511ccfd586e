package scoring

import "github.com/okian/arcadeboard/internal/domain/model"

// Breakdown is the point composition for one set of counters.
type Breakdown struct {
	SkillPoints    int  `json:"skill_points"`
	GamePoints     int  `json:"game_points"`
	TriviaPoints   int  `json:"trivia_points"`
	SpecialPoints  int  `json:"special_points"`
	BasePoints     int  `json:"base_points"`
	MilestoneBonus int  `json:"milestone_bonus"`
	TotalPoints    int  `json:"total_points"`
	Milestone      Tier `json:"milestone"`
}

// Compute converts raw counters into a point breakdown. Skill badges score
// one point per SkillBadgesPerPoint badges; remainders score nothing.
func (e *Engine) Compute(counts model.ActivityCounts) (Breakdown, error) {
	tier, bonus, err := e.Classify(counts)
	if err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{
		SkillPoints:    counts.SkillBadges / e.rules.SkillBadgesPerPoint,
		GamePoints:     counts.ArcadeGames,
		TriviaPoints:   counts.TriviaGames,
		SpecialPoints:  counts.SpecialGames,
		MilestoneBonus: bonus,
		Milestone:      tier,
	}
	b.BasePoints = b.SkillPoints + b.GamePoints + b.TriviaPoints + b.SpecialPoints
	b.TotalPoints = b.BasePoints + b.MilestoneBonus
	return b, nil
}
