// Package source reads participant activity records from cohort exports.
//
// Both CSV and XLSX exports are accepted. Headers are matched by name, so
// column order does not matter and contact columns are ignored.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/arcadeboard/internal/domain/model"
)

// Load reads records from path, choosing the reader by file extension.
func Load(path string) ([]model.Record, error) {
	read, err := readerFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return records, nil
}

func readerFor(path string) (func(io.Reader) ([]model.Record, error), error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV, nil
	case ".xlsx":
		return ReadXLSX, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
