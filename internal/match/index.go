package match

import "github.com/ostrem/partmatch/internal/record"

// Index is a lookup structure over one catalog's records, keyed by
// canonical identifier.
type Index struct {
	byID       map[string]record.Record
	collisions int
}

// BuildIndex indexes catalog records in order. Records without a usable
// identifier are skipped (they can never be matched against). A later
// record with the same identifier replaces the earlier entry; the
// number of such collisions is retained as a data-quality figure.
func BuildIndex(records []record.Record) *Index {
	idx := &Index{byID: make(map[string]record.Record, len(records))}
	for _, rec := range records {
		id := ExtractIdentifier(rec)
		if id == "" {
			continue
		}
		if _, exists := idx.byID[id]; exists {
			idx.collisions++
		}
		idx.byID[id] = rec
	}
	return idx
}

// Lookup returns the catalog record for an identifier.
func (x *Index) Lookup(id string) (record.Record, bool) {
	if x == nil {
		return record.Record{}, false
	}
	rec, ok := x.byID[id]
	return rec, ok
}

// Len returns the number of distinct indexed identifiers.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.byID)
}

// Collisions returns how many records were displaced by a later record
// sharing the same identifier.
func (x *Index) Collisions() int {
	if x == nil {
		return 0
	}
	return x.collisions
}
