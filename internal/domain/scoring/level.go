package scoring

import (
	"fmt"
	"math"
)

// LevelState is the square-root-scaled progression for a point total.
type LevelState struct {
	Level         int `json:"level"`
	CurrentXP     int `json:"current_xp"`
	XPToNextLevel int `json:"xp_to_next_level"`
}

// LevelOf maps total points to a level. Level L covers [(L-1)^2, L^2).
// Zero points is the "not started" state with a sentinel XPToNextLevel.
func (e *Engine) LevelOf(totalPoints int) (LevelState, error) {
	if totalPoints < 0 {
		return LevelState{}, fmt.Errorf("%w: total points is negative (%d)", ErrInvalidInput, totalPoints)
	}
	if totalPoints == 0 {
		return LevelState{XPToNextLevel: e.rules.Level.UnstartedXPToNext}, nil
	}

	// (root+1)^2 overflows int near math.MaxInt; the level width is 2*root+1.
	root := isqrt(totalPoints)
	return LevelState{
		Level:         root + 1,
		CurrentXP:     totalPoints - root*root,
		XPToNextLevel: 2*root + 1,
	}, nil
}

// isqrt returns floor(sqrt(n)) for n >= 0, corrected for float rounding.
// Comparisons divide instead of squaring so they stay in range for any int.
func isqrt(n int) int {
	r := int(math.Sqrt(float64(n)))
	for r > 0 && r > n/r {
		r--
	}
	for r+1 <= n/(r+1) {
		r++
	}
	return r
}
