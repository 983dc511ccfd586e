package scoring

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
)

// Percentage scale for percentile computation.
const percentScale = 100

// RankInfo is a participant's standing within a population.
type RankInfo struct {
	OrdinalRank int      `json:"ordinal_rank"`
	Percentile  float64  `json:"percentile"`
	Tier        RankTier `json:"tier"`
}

// Population is an immutable, descending-sorted snapshot of point totals.
// Build it once per batch and share it across rank lookups.
type Population struct {
	sorted []int
	tiers  []RankTierRule
}

// NewPopulation snapshots points. The input slice is not retained.
func (e *Engine) NewPopulation(points []int) *Population {
	sorted := slices.Clone(points)
	slices.SortFunc(sorted, func(a, b int) int { return cmp.Compare(b, a) })
	return &Population{sorted: sorted, tiers: e.rules.RankTiers}
}

// Size returns the number of members.
func (p *Population) Size() int {
	return len(p.sorted)
}

// RankOf ranks points within the population using standard competition
// ranking: tied members share the position of the first occurrence in the
// descending order. points must be a member of the population.
func (p *Population) RankOf(points int) (RankInfo, error) {
	n := len(p.sorted)
	if n == 0 {
		return RankInfo{}, ErrEmptyPopulation
	}

	// First index whose value is <= points; the sort is descending.
	i := sort.Search(n, func(i int) bool { return p.sorted[i] <= points })
	if i == n || p.sorted[i] != points {
		return RankInfo{}, fmt.Errorf("%w: %d points is not a member of the population", ErrInvalidInput, points)
	}

	rank := i + 1
	percentile := float64((n-rank+1)*percentScale) / float64(n)
	return RankInfo{
		OrdinalRank: rank,
		Percentile:  percentile,
		Tier:        p.tierFor(percentile),
	}, nil
}

func (p *Population) tierFor(percentile float64) RankTier {
	for _, t := range p.tiers {
		if percentile >= t.MinPercentile {
			return t.Tier
		}
	}
	// Unreachable with validated rules; the last tier starts at 0.
	return p.tiers[len(p.tiers)-1].Tier
}

// RankOf ranks points within population. population must include the
// subject itself. For repeated lookups use NewPopulation once.
func (e *Engine) RankOf(points int, population []int) (RankInfo, error) {
	return e.NewPopulation(population).RankOf(points)
}
