package loadtest

import (
	"fmt"

	"github.com/okian/arcadeboard/internal/domain/model"
	"github.com/okian/arcadeboard/internal/domain/types"
)

// verifyReport checks a report against the batch that produced it. Generated
// records are always valid, so every record must come back in input order.
func verifyReport(records []model.Record, report *types.Report) error {
	if report.EvaluationID == "" {
		return fmt.Errorf("%w: missing evaluation id", ErrInconsistent)
	}
	if len(report.Skipped) != 0 {
		return fmt.Errorf("%w: %d valid records skipped", ErrInconsistent, len(report.Skipped))
	}
	if len(report.Participants) != len(records) {
		return fmt.Errorf("%w: %d participants for %d records", ErrInconsistent, len(report.Participants), len(records))
	}
	if report.Summary.Participants != len(records) {
		return fmt.Errorf("%w: summary counts %d participants, want %d", ErrInconsistent, report.Summary.Participants, len(records))
	}

	totals := make([]int, len(report.Participants))
	for i, p := range report.Participants {
		if p.ID != records[i].ID {
			return fmt.Errorf("%w: position %d holds %s, want %s", ErrInconsistent, i, p.ID, records[i].ID)
		}
		totals[i] = p.Breakdown.TotalPoints
	}

	// Standard competition ranking: one plus the number of strictly higher totals.
	for i, p := range report.Participants {
		want := 1
		for _, t := range totals {
			if t > totals[i] {
				want++
			}
		}
		if p.Rank.OrdinalRank != want {
			return fmt.Errorf("%w: %s ranked %d, want %d", ErrInconsistent, p.ID, p.Rank.OrdinalRank, want)
		}
	}

	return verifyLeaderboard(report.Summary.Leaderboard)
}

func verifyLeaderboard(entries []types.Entry) error {
	for i, e := range entries {
		if e.Position != i+1 {
			return fmt.Errorf("%w: leaderboard entry %d has position %d", ErrInconsistent, i, e.Position)
		}
		if i > 0 && e.Points > entries[i-1].Points {
			return fmt.Errorf("%w: leaderboard not sorted at position %d", ErrInconsistent, e.Position)
		}
	}
	return nil
}
