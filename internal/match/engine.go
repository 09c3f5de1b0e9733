package match

import "github.com/ostrem/partmatch/internal/record"

// Miss reasons, reported verbatim in API responses and exports.
const (
	ReasonNoIdentifier = "No identifier detected"
	ReasonNotInCatalog = "Not present in catalog"
)

// Pair is a client record matched to its catalog counterpart.
type Pair struct {
	Identifier string        `json:"identifier"`
	Requested  record.Record `json:"requested"`
	Matched    record.Record `json:"match"`
}

// Miss is a client record with no catalog counterpart.
type Miss struct {
	Identifier string        `json:"identifier,omitempty"`
	Requested  record.Record `json:"requested"`
	Reason     string        `json:"reason"`
}

// Result partitions a client request set. Every request record appears
// in exactly one list; each list preserves the original relative order.
type Result struct {
	Found   []Pair `json:"found"`
	Missing []Miss `json:"missing"`
}

// Total returns the number of partitioned request records.
func (r Result) Total() int {
	return len(r.Found) + len(r.Missing)
}

// Match classifies every request record against the catalog index. It
// never mutates its inputs and never fails: a nil index or empty
// request set yields an empty partition.
func Match(idx *Index, requests []record.Record) Result {
	res := Result{Found: []Pair{}, Missing: []Miss{}}
	for _, rec := range requests {
		id := ExtractIdentifier(rec)
		if id == "" {
			res.Missing = append(res.Missing, Miss{Requested: rec, Reason: ReasonNoIdentifier})
			continue
		}
		if matched, ok := idx.Lookup(id); ok {
			res.Found = append(res.Found, Pair{Identifier: id, Requested: rec, Matched: matched})
		} else {
			res.Missing = append(res.Missing, Miss{Identifier: id, Requested: rec, Reason: ReasonNotInCatalog})
		}
	}
	return res
}
