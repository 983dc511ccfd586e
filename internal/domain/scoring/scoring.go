// Package scoring maps raw activity counters into points, milestones,
// levels, percentile ranks, combos and achievements.
//
// Every operation is a pure function of its inputs and the engine's rule set,
// so an Engine is safe for concurrent use.
package scoring

import (
	"fmt"

	"github.com/okian/arcadeboard/internal/domain/model"
)

// Engine evaluates activity counters against a validated rule set.
type Engine struct {
	rules Rules
}

// NewEngine creates an engine with the default rules unless overridden.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{rules: DefaultRules()}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	if err := e.rules.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Rules returns a copy of the engine's rule set.
func (e *Engine) Rules() Rules {
	return e.rules.clone()
}

// Scorecard is everything derivable from a single participant's counters.
// Rank is population-relative and therefore not part of it.
type Scorecard struct {
	Breakdown    Breakdown         `json:"breakdown"`
	Level        LevelState        `json:"level"`
	Combo        Combo             `json:"combo"`
	Achievements []Achievement     `json:"achievements"`
	Progress     MilestoneProgress `json:"progress"`
}

// Score computes the full scorecard for one participant.
func (e *Engine) Score(counts model.ActivityCounts) (Scorecard, error) {
	breakdown, err := e.Compute(counts)
	if err != nil {
		return Scorecard{}, err
	}
	level, err := e.LevelOf(breakdown.TotalPoints)
	if err != nil {
		return Scorecard{}, err
	}
	achievements, err := e.AchievementsOf(counts, breakdown.TotalPoints)
	if err != nil {
		return Scorecard{}, err
	}
	return Scorecard{
		Breakdown:    breakdown,
		Level:        level,
		Combo:        e.comboOf(counts),
		Achievements: achievements,
		Progress:     e.progressOf(counts, breakdown.Milestone),
	}, nil
}

// MaxCounter is the largest accepted value for any single activity counter.
// It keeps every point total and milestone sum well inside int range.
const MaxCounter = 1_000_000_000

func validateCounts(c model.ActivityCounts) error {
	switch {
	case c.SkillBadges < 0:
		return fmt.Errorf("%w: skill_badges is negative (%d)", ErrInvalidInput, c.SkillBadges)
	case c.ArcadeGames < 0:
		return fmt.Errorf("%w: arcade_games is negative (%d)", ErrInvalidInput, c.ArcadeGames)
	case c.TriviaGames < 0:
		return fmt.Errorf("%w: trivia_games is negative (%d)", ErrInvalidInput, c.TriviaGames)
	case c.SpecialGames < 0:
		return fmt.Errorf("%w: special_games is negative (%d)", ErrInvalidInput, c.SpecialGames)
	case c.SkillBadges > MaxCounter:
		return fmt.Errorf("%w: skill_badges exceeds %d (%d)", ErrInvalidInput, MaxCounter, c.SkillBadges)
	case c.ArcadeGames > MaxCounter:
		return fmt.Errorf("%w: arcade_games exceeds %d (%d)", ErrInvalidInput, MaxCounter, c.ArcadeGames)
	case c.TriviaGames > MaxCounter:
		return fmt.Errorf("%w: trivia_games exceeds %d (%d)", ErrInvalidInput, MaxCounter, c.TriviaGames)
	case c.SpecialGames > MaxCounter:
		return fmt.Errorf("%w: special_games exceeds %d (%d)", ErrInvalidInput, MaxCounter, c.SpecialGames)
	}
	return nil
}
