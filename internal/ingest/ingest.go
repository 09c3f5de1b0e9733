// Package ingest decodes uploaded catalog and request files into raw
// field rows. Header-derived field names, row order preserved; the
// core's sanitizer handles everything beyond cell extraction.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ostrem/partmatch/internal/apperr"
	"github.com/ostrem/partmatch/internal/record"
)

// Decode parses the file body according to its extension (.csv, .xlsx).
// maxRows caps the number of data rows (0 disables the cap).
func Decode(filename string, r io.Reader, maxRows int) ([]record.RawRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return decodeCSV(r, maxRows)
	case ".xlsx":
		return decodeXLSX(r, maxRows)
	default:
		return nil, fmt.Errorf("%w: %s", apperr.ErrUnsupportedFormat, filename)
	}
}

func decodeCSV(r io.Reader, maxRows int) ([]record.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var rows []record.RawRow
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read row: %w", err)
		}
		if maxRows > 0 && len(rows) >= maxRows {
			return nil, fmt.Errorf("%w: limit %d", apperr.ErrTooManyRows, maxRows)
		}
		rows = append(rows, rawRow(header, cells))
	}
	return rows, nil
}

// rawRow pairs cells with header names. Cells beyond the header get
// positional names so stray columns survive sanitization.
func rawRow(header, cells []string) record.RawRow {
	row := make(record.RawRow, 0, len(cells))
	for i, cell := range cells {
		name := fmt.Sprintf("Column %d", i+1)
		if i < len(header) {
			name = header[i]
		}
		row = append(row, record.RawField{Name: name, Value: cell})
	}
	return row
}
