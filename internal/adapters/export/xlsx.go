package export

import (
	"fmt"
	"io"

	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/okian/arcadeboard/pkg/metrics"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook, in order.
const (
	SheetLeaderboard  = "Leaderboard"
	SheetParticipants = "Participants"
	SheetMilestones   = "Milestones"
)

var (
	leaderboardHeader = []any{"Position", "Medal", "ID", "Name", "Points", "Milestone", "Skill Badges", "Arcade Games", "Trivia Games", "Status"}
	milestoneHeader   = []any{"Milestone", "Participants", "Percentage"}
)

// WriteXLSX writes report as a workbook with leaderboard, participant and
// milestone sheets.
func WriteXLSX(w io.Writer, report *types.Report) error {
	if report == nil {
		return ErrNilReport
	}

	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; rename it instead of leaving it empty.
	if err := f.SetSheetName(f.GetSheetName(0), SheetLeaderboard); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetParticipants, SheetMilestones} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	lb := make([][]any, 0, len(report.Summary.Leaderboard)+1)
	lb = append(lb, leaderboardHeader)
	for _, e := range report.Summary.Leaderboard {
		lb = append(lb, []any{e.Position, e.Medal, e.ID, e.Name, e.Points, string(e.Milestone), e.SkillBadges, e.ArcadeGames, e.TriviaGames, e.Status})
	}

	ps := make([][]any, 0, len(report.Participants)+1)
	ps = append(ps, toAny(participantHeader))
	for _, p := range report.Participants {
		ps = append(ps, participantRow(p))
	}

	ms := make([][]any, 0, len(report.Summary.Milestones)+1)
	ms = append(ms, milestoneHeader)
	for _, m := range report.Summary.Milestones {
		ms = append(ms, []any{string(m.Tier), m.Count, m.Percentage})
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetLeaderboard, lb},
		{SheetParticipants, ps},
		{SheetMilestones, ms},
	}
	for _, s := range sheets {
		if err := writeRows(f, s.name, s.rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	metrics.RecordExport("xlsx")
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
