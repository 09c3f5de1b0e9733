// Package report renders match results into the flat exportable table
// and its quoted-CSV encoding.
package report

import (
	"strings"

	"github.com/ostrem/partmatch/internal/match"
	"github.com/ostrem/partmatch/internal/record"
)

// Row statuses.
const (
	StatusAvailable = "Available"
	StatusMissing   = "Missing"
)

var header = []string{"Requested Part", "Status", "Match Details"}

// Row is one exported line: the requested identifier, whether a catalog
// pairing exists for it, and the serialized counterpart (empty when
// missing).
type Row struct {
	Identifier string `json:"identifier"`
	Status     string `json:"status"`
	Match      string `json:"match"`
}

// Build produces one row per client record, in request order.
func Build(requests []record.Record, res match.Result) []Row {
	matched := make(map[string]record.Record, len(res.Found))
	for _, pair := range res.Found {
		matched[pair.Identifier] = pair.Matched
	}

	rows := make([]Row, 0, len(requests))
	for _, rec := range requests {
		id := match.ExtractIdentifier(rec)
		row := Row{Identifier: id, Status: StatusMissing}
		if counterpart, ok := matched[id]; ok {
			row.Status = StatusAvailable
			row.Match = serialize(counterpart)
		}
		rows = append(rows, row)
	}
	return rows
}

// EncodeCSV renders rows as comma-separated text with every cell
// double-quoted (embedded quotes doubled) and rows joined by newlines.
// A fixed header row leads the output.
func EncodeCSV(rows []Row) []byte {
	var b strings.Builder
	writeLine(&b, header)
	for _, row := range rows {
		b.WriteByte('\n')
		writeLine(&b, []string{row.Identifier, row.Status, row.Match})
	}
	return []byte(b.String())
}

func writeLine(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
}

func serialize(rec record.Record) string {
	parts := make([]string, 0, rec.Len())
	rec.Each(func(name, value string) {
		parts = append(parts, name+": "+value)
	})
	return strings.Join(parts, "; ")
}
