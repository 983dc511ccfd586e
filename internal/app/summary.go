package service

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/okian/arcadeboard/internal/domain/scoring"
	"github.com/okian/arcadeboard/internal/domain/types"
)

// Badge categories by completed skill badges.
var badgeCategories = []struct {
	label string
	max   int // inclusive; -1 means unbounded
}{
	{"Not Started", 0},
	{"Beginner", 5},
	{"Developing", 15},
	{"Proficient", 30},
	{"Expert", -1},
}

var medals = []struct{ name, icon string }{
	{"gold", "🥇"},
	{"silver", "🥈"},
	{"bronze", "🥉"},
}

const unspecifiedStatus = "Unspecified"

func (s *Service) summarize(engine *scoring.Engine, participants []types.Participant, skipped, topN int) types.Summary {
	rules := engine.Rules()
	sum := types.Summary{
		Participants:    len(participants),
		Skipped:         skipped,
		Milestones:      milestoneCounts(rules, participants),
		RankTiers:       rankTierCounts(rules, participants),
		Totals:          totals(participants),
		Points:          distribution(participants, s.histogramBuckets),
		BadgeCategories: badgeDistribution(participants),
		Statuses:        statusCounts(participants),
		Leaderboard:     leaderboard(participants, topN),
	}
	for i := range participants {
		if participants[i].Breakdown.TotalPoints > 0 {
			sum.Active++
		}
	}
	return sum
}

// milestoneCounts lists every tier, strictest first and None last.
func milestoneCounts(rules scoring.Rules, participants []types.Participant) []types.MilestoneCount {
	byTier := make(map[scoring.Tier]int, len(rules.Milestones)+1)
	for i := range participants {
		byTier[participants[i].Breakdown.Milestone]++
	}

	out := make([]types.MilestoneCount, 0, len(rules.Milestones)+1)
	add := func(tier scoring.Tier) {
		out = append(out, types.MilestoneCount{
			Tier:       tier,
			Count:      byTier[tier],
			Percentage: percentage(byTier[tier], len(participants)),
		})
	}
	for i := len(rules.Milestones) - 1; i >= 0; i-- {
		add(rules.Milestones[i].Tier)
	}
	add(scoring.MilestoneNone)
	return out
}

func rankTierCounts(rules scoring.Rules, participants []types.Participant) []types.RankTierCount {
	byTier := make(map[scoring.RankTier]int, len(rules.RankTiers))
	for i := range participants {
		byTier[participants[i].Rank.Tier]++
	}
	out := make([]types.RankTierCount, len(rules.RankTiers))
	for i, t := range rules.RankTiers {
		out[i] = types.RankTierCount{Tier: t.Tier, Count: byTier[t.Tier]}
	}
	return out
}

func totals(participants []types.Participant) types.Totals {
	var t types.Totals
	for i := range participants {
		p := &participants[i]
		t.SkillBadges.Sum += p.Counts.SkillBadges
		t.ArcadeGames.Sum += p.Counts.ArcadeGames
		t.TriviaGames.Sum += p.Counts.TriviaGames
		t.SpecialGames.Sum += p.Counts.SpecialGames
		t.Points.Sum += p.Breakdown.TotalPoints
	}
	n := len(participants)
	for _, st := range []*types.Stat{&t.SkillBadges, &t.ArcadeGames, &t.TriviaGames, &t.SpecialGames, &t.Points} {
		st.Mean = mean(st.Sum, n)
	}
	return t
}

// distribution bins point totals into at most bins equal-width buckets
// spanning [min, max].
func distribution(participants []types.Participant, bins int) types.Distribution {
	d := types.Distribution{Buckets: []types.Bucket{}}
	if len(participants) == 0 {
		return d
	}

	d.Min = participants[0].Breakdown.TotalPoints
	d.Max = d.Min
	total := 0
	for i := range participants {
		p := participants[i].Breakdown.TotalPoints
		d.Min = min(d.Min, p)
		d.Max = max(d.Max, p)
		total += p
	}
	d.Mean = mean(total, len(participants))

	span := d.Max - d.Min + 1
	width := (span + bins - 1) / bins
	count := (span + width - 1) / width
	d.Buckets = make([]types.Bucket, count)
	for k := range d.Buckets {
		lower := d.Min + k*width
		d.Buckets[k] = types.Bucket{Lower: lower, Upper: lower + width - 1}
	}
	for i := range participants {
		k := (participants[i].Breakdown.TotalPoints - d.Min) / width
		d.Buckets[k].Count++
	}
	return d
}

func badgeDistribution(participants []types.Participant) []types.CategoryCount {
	out := make([]types.CategoryCount, len(badgeCategories))
	for i, c := range badgeCategories {
		out[i].Label = c.label
	}
	for i := range participants {
		badges := participants[i].Counts.SkillBadges
		for k, c := range badgeCategories {
			if c.max < 0 || badges <= c.max {
				out[k].Count++
				break
			}
		}
	}
	return out
}

// statusCounts counts redeem statuses in order of first appearance.
func statusCounts(participants []types.Participant) []types.CategoryCount {
	out := make([]types.CategoryCount, 0)
	pos := make(map[string]int)
	for i := range participants {
		status := participants[i].Status
		if status == "" {
			status = unspecifiedStatus
		}
		k, ok := pos[status]
		if !ok {
			k = len(out)
			pos[status] = k
			out = append(out, types.CategoryCount{Label: status})
		}
		out[k].Count++
	}
	return out
}

// leaderboard returns the top n participants by total points. Equal totals
// keep their input order.
func leaderboard(participants []types.Participant, n int) []types.Entry {
	order := make([]int, len(participants))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(participants[b].Breakdown.TotalPoints, participants[a].Breakdown.TotalPoints)
	})

	n = min(n, len(order))
	out := make([]types.Entry, n)
	for pos, idx := range order[:n] {
		p := &participants[idx]
		e := types.Entry{
			Position:    pos + 1,
			Label:       fmt.Sprintf("#%d", pos+1),
			ID:          p.ID,
			Name:        p.Name,
			Points:      p.Breakdown.TotalPoints,
			Milestone:   p.Breakdown.Milestone,
			SkillBadges: p.Counts.SkillBadges,
			ArcadeGames: p.Counts.ArcadeGames,
			TriviaGames: p.Counts.TriviaGames,
			Status:      p.Status,
		}
		if pos < len(medals) {
			e.Medal = medals[pos].name
			e.Label = medals[pos].icon + " " + e.Label
		}
		out[pos] = e
	}
	return out
}

func mean(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func percentage(count, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(count*100) / float64(n)
}
