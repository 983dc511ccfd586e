package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/arcadeboard/internal/domain/model"
	"github.com/okian/arcadeboard/pkg/metrics"
)

// ReadCSV reads participant records from a CSV export with a header row.
func ReadCSV(r io.Reader) ([]model.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		rows  [][]string
		lines []int
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = trimBOM(rows[0][0])
	}

	records, err := parseRows(rows, lines)
	if err != nil {
		return nil, err
	}
	metrics.RecordRowsRead("csv", len(records))
	return records, nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
