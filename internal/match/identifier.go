// Package match implements the reconciliation core: canonical identifier
// extraction, catalog indexing, and the match engine that partitions a
// client request set into found and missing entries.
package match

import (
	"strings"

	"github.com/ostrem/partmatch/internal/record"
)

// identifierFields are the column names treated as part identifiers, in
// priority order. Matching is case-insensitive.
var identifierFields = []string{
	"part number",
	"sku",
	"pn",
	"mpn",
	"manufacturer part number",
	"mfr part number",
	"mfg part number",
	"part no",
	"part #",
	"part#",
	"p/n",
	"part num",
	"item number",
	"item no",
	"model number",
	"product number",
	"catalog number",
	"part",
	"item",
	"model",
}

// ManufacturerFields are the column names tried when resolving a
// record's manufacturer, in priority order.
var ManufacturerFields = []string{
	"manufacturer", "mfg", "mfr", "maker", "brand", "vendor", "supplier",
}

// FamilyFields are the column names tried when resolving a record's
// product family, in priority order.
var FamilyFields = []string{
	"family", "product family", "series", "product line", "category", "group", "type",
}

// ExtractIdentifier derives the canonical matching key from a record:
// the first non-empty identifier-priority field, uppercased. When no
// priority field is present it falls back to the record's first field
// value. Returns "" when the record has no usable value.
//
// The fallback is a best-effort heuristic; with ambiguous or absent
// headers it can pick a non-identifying column.
func ExtractIdentifier(rec record.Record) string {
	for _, name := range identifierFields {
		if v, ok := rec.Lookup(name); ok {
			if v = strings.TrimSpace(v); v != "" {
				return strings.ToUpper(v)
			}
		}
	}
	if _, v, ok := rec.First(); ok {
		if v = strings.TrimSpace(v); v != "" {
			return strings.ToUpper(v)
		}
	}
	return ""
}

// ResolveField returns the first non-empty trimmed value among the
// candidate field names, scanning record fields case-insensitively in
// record order per candidate. Returns "" when nothing matches.
func ResolveField(rec record.Record, candidates []string) string {
	for _, name := range candidates {
		if v, ok := rec.Lookup(name); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
