// Package record defines the sanitized row model shared by catalogs and
// client request sets, plus the sanitizer that produces it from raw
// decoded file rows.
package record

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// RawField is one decoded cell before sanitization. Value may be any
// primitive type (file decoders and JSON both produce these) or nil.
type RawField struct {
	Name  string
	Value any
}

// RawRow is one decoded file row in column order.
type RawRow []RawField

// Record is an ordered mapping from trimmed field name to a non-empty
// trimmed string value. Field order follows the source row.
type Record struct {
	fields *orderedmap.OrderedMap[string, string]
}

// New returns an empty Record.
func New() Record {
	return Record{fields: orderedmap.New[string, string]()}
}

// Set stores value under name, preserving the position of an existing name.
func (r Record) Set(name, value string) {
	r.fields.Set(name, value)
}

// Get returns the value for an exact field name.
func (r Record) Get(name string) (string, bool) {
	if r.fields == nil {
		return "", false
	}
	return r.fields.Get(name)
}

// Lookup scans fields in record order and returns the first value whose
// name matches case-insensitively.
func (r Record) Lookup(name string) (string, bool) {
	if r.fields == nil {
		return "", false
	}
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		if strings.EqualFold(pair.Key, name) {
			return pair.Value, true
		}
	}
	return "", false
}

// First returns the record's first field in source order.
func (r Record) First() (name, value string, ok bool) {
	if r.fields == nil {
		return "", "", false
	}
	pair := r.fields.Oldest()
	if pair == nil {
		return "", "", false
	}
	return pair.Key, pair.Value, true
}

// Names returns field names in source order.
func (r Record) Names() []string {
	if r.fields == nil {
		return nil
	}
	names := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Each calls fn for every field in source order.
func (r Record) Each(fn func(name, value string)) {
	if r.fields == nil {
		return
	}
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Len returns the number of fields.
func (r Record) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// MarshalJSON renders the record as a JSON object with fields in source order.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.fields)
}

// Sanitize normalizes raw rows into Records. Nil values are skipped,
// remaining values are stringified and trimmed, empty results are
// skipped, and field names are trimmed. Rows with no surviving fields
// are dropped. Row order and field order are preserved.
func Sanitize(rows []RawRow) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := New()
		for _, f := range row {
			if f.Value == nil {
				continue
			}
			value := strings.TrimSpace(cast.ToString(f.Value))
			if value == "" {
				continue
			}
			rec.Set(strings.TrimSpace(f.Name), value)
		}
		if rec.Len() > 0 {
			out = append(out, rec)
		}
	}
	return out
}
