package scoring

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRules replaces the default rule set. The rules are validated by NewEngine.
func WithRules(rules Rules) Option {
	return func(e *Engine) {
		e.rules = rules.clone()
	}
}

// clone copies the slices so callers cannot mutate an engine's rules.
func (r Rules) clone() Rules {
	out := r
	out.Milestones = append([]MilestoneRule(nil), r.Milestones...)
	out.RankTiers = append([]RankTierRule(nil), r.RankTiers...)
	out.Combo.Tiers = append([]ComboRule(nil), r.Combo.Tiers...)
	out.Achievements = append([]AchievementRule(nil), r.Achievements...)
	return out
}
