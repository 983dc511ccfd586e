package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/okian/arcadeboard/pkg/metrics"
)

// WriteCSV writes one row per participant, in report order, after a header row.
func WriteCSV(w io.Writer, participants []types.Participant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(participantHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(participantHeader))
	for _, p := range participants {
		for i, v := range participantRow(p) {
			record[i] = cellString(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", p.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	metrics.RecordExport("csv")
	return nil
}
