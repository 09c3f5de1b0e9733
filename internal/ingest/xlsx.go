package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ostrem/partmatch/internal/apperr"
	"github.com/ostrem/partmatch/internal/record"
)

// decodeXLSX reads the first sheet of a workbook; the first row supplies
// field names.
func decodeXLSX(r io.Reader, maxRows int) ([]record.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("ingest: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("ingest: read sheet %q: %w", sheets[0], err)
	}
	if len(cells) == 0 {
		return nil, nil
	}

	header := cells[0]
	var rows []record.RawRow
	for _, line := range cells[1:] {
		if maxRows > 0 && len(rows) >= maxRows {
			return nil, fmt.Errorf("%w: limit %d", apperr.ErrTooManyRows, maxRows)
		}
		rows = append(rows, rawRow(header, line))
	}
	return rows, nil
}
