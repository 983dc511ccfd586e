package source

import (
	"fmt"
	"io"

	"github.com/okian/arcadeboard/internal/domain/model"
	"github.com/okian/arcadeboard/pkg/metrics"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads participant records from the first sheet of a workbook.
func ReadXLSX(r io.Reader) ([]model.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrEmpty)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	records, err := parseRows(rows, nil)
	if err != nil {
		return nil, err
	}
	metrics.RecordRowsRead("xlsx", len(records))
	return records, nil
}
