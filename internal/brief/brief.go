// Package brief assembles the natural-language-ready payload handed to
// the narrative collaborator and holds the Gemini-backed narrator.
// The narrative response is treated as opaque text; failures are
// surfaced verbatim and never affect match or insight computations.
package brief

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ostrem/partmatch/internal/insights"
	"github.com/ostrem/partmatch/internal/match"
	"github.com/ostrem/partmatch/internal/record"
)

const sampleLimit = 10

// Payload is the briefing input: bounded samples plus headline numbers.
type Payload struct {
	CatalogName        string          `json:"catalog_name"`
	CatalogSample      []record.Record `json:"catalog_sample"`
	ClientSample       []record.Record `json:"client_sample"`
	Coverage           int             `json:"coverage"`
	MissingIdentifiers []string        `json:"missing_identifiers"`
}

// Narrator turns a prompt into narrative text.
type Narrator interface {
	Narrate(ctx context.Context, prompt string) (string, error)
}

// BuildPayload samples up to ten records from each side and collects up
// to ten missing identifiers alongside the coverage percentage.
func BuildPayload(catalogName string, catalogRecords, requests []record.Record, res match.Result) Payload {
	p := Payload{
		CatalogName:        catalogName,
		CatalogSample:      sample(catalogRecords),
		ClientSample:       sample(requests),
		Coverage:           insights.Coverage(res).Coverage,
		MissingIdentifiers: []string{},
	}
	for _, miss := range res.Missing {
		if len(p.MissingIdentifiers) == sampleLimit {
			break
		}
		if miss.Identifier != "" {
			p.MissingIdentifiers = append(p.MissingIdentifiers, miss.Identifier)
		}
	}
	return p
}

// Prompt renders the payload as the instruction given to the narrator.
func (p Payload) Prompt() string {
	catalogJSON, _ := json.Marshal(p.CatalogSample)
	clientJSON, _ := json.Marshal(p.ClientSample)

	var b strings.Builder
	b.WriteString("You are a sales engineer summarizing how well a manufacturer's catalog covers a client's requested parts list.\n\n")
	fmt.Fprintf(&b, "Catalog %q, sample records: %s\n\n", p.CatalogName, catalogJSON)
	fmt.Fprintf(&b, "Client request sample records: %s\n\n", clientJSON)
	fmt.Fprintf(&b, "Coverage: %d%% of requested parts were found in the catalog.\n", p.Coverage)
	if len(p.MissingIdentifiers) > 0 {
		fmt.Fprintf(&b, "Missing part identifiers (up to %d): %s\n", sampleLimit, strings.Join(p.MissingIdentifiers, ", "))
	}
	b.WriteString("\nWrite a short brief (3-5 sentences) covering overall coverage, notable gaps, and a suggested next step. Plain prose, no markdown.")
	return b.String()
}

func sample(records []record.Record) []record.Record {
	if len(records) <= sampleLimit {
		out := make([]record.Record, len(records))
		copy(out, records)
		return out
	}
	out := make([]record.Record, sampleLimit)
	copy(out, records[:sampleLimit])
	return out
}
