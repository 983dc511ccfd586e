// Package export renders evaluation reports for download: an XLSX workbook,
// a flat CSV and a PNG histogram of point totals.
//
// Exports carry only identity, status and scoring data. Contact details
// never enter a report, so none can leak here.
package export

import (
	"strconv"
	"strings"

	"github.com/okian/arcadeboard/internal/domain/scoring"
	"github.com/okian/arcadeboard/internal/domain/types"
)

var participantHeader = []string{
	"ID", "Name", "Status",
	"Skill Badges", "Arcade Games", "Trivia Games", "Special Games",
	"Skill Points", "Game Points", "Trivia Points", "Special Points",
	"Milestone", "Milestone Bonus", "Total Points",
	"Level", "Combo", "Achievements",
	"Rank", "Percentile", "Rank Tier",
}

func participantRow(p types.Participant) []any {
	b := p.Breakdown
	return []any{
		p.ID, p.Name, p.Status,
		p.Counts.SkillBadges, p.Counts.ArcadeGames, p.Counts.TriviaGames, p.Counts.SpecialGames,
		b.SkillPoints, b.GamePoints, b.TriviaPoints, b.SpecialPoints,
		string(b.Milestone), b.MilestoneBonus, b.TotalPoints,
		p.Level.Level, p.Combo.Label, joinAchievements(p.Achievements),
		p.Rank.OrdinalRank, p.Rank.Percentile, string(p.Rank.Tier),
	}
}

func joinAchievements(as []scoring.Achievement) string {
	names := make([]string, len(as))
	for i, a := range as {
		names[i] = string(a)
	}
	return strings.Join(names, "; ")
}

func cellString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	default:
		return ""
	}
}
