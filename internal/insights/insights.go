// Package insights derives aggregate views (coverage, duplicates, top
// distributions, filtered match views) from match results and request
// sets. Every function is pure and recomputed per call.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ostrem/partmatch/internal/match"
	"github.com/ostrem/partmatch/internal/record"
)

// UnspecifiedLabel stands in for records without a resolvable
// descriptive field in top-N distributions.
const UnspecifiedLabel = "Unspecified"

// CoverageStats summarizes a match partition.
type CoverageStats struct {
	Total    int `json:"total"`
	Found    int `json:"found"`
	Missing  int `json:"missing"`
	Coverage int `json:"coverage"`
}

// Coverage computes the matched share as a rounded integer percentage.
// An empty request set yields zero coverage rather than an error.
func Coverage(res match.Result) CoverageStats {
	stats := CoverageStats{
		Total:   res.Total(),
		Found:   len(res.Found),
		Missing: len(res.Missing),
	}
	if stats.Total > 0 {
		stats.Coverage = roundPct(stats.Found, stats.Total)
	}
	return stats
}

// Duplicate is one repeated identifier in the request set.
type Duplicate struct {
	Identifier  string `json:"identifier"`
	Occurrences int    `json:"occurrences"`
}

// DuplicateStats reports repeated and unidentified request rows.
type DuplicateStats struct {
	Duplicates        []Duplicate `json:"duplicates"`
	UniqueCount       int         `json:"unique_count"`
	DuplicateCount    int         `json:"duplicate_count"`
	UnidentifiedCount int         `json:"unidentified_count"`
}

// Duplicates walks request records in order, counting occurrences per
// canonical identifier. Rows without an identifier get a synthetic
// per-row key so they never collide with each other; their display
// label references the row position instead.
func Duplicates(requests []record.Record) DuplicateStats {
	stats := DuplicateStats{Duplicates: []Duplicate{}}

	occurrences := make(map[string]int, len(requests))
	entryIdx := make(map[string]int)

	for i, rec := range requests {
		key := match.ExtractIdentifier(rec)
		label := key
		if key == "" {
			key = fmt.Sprintf("\x00row:%d", i)
			label = fmt.Sprintf("Row %d (no identifier)", i+1)
			stats.UnidentifiedCount++
		}
		occurrences[key]++
		if occurrences[key] == 2 {
			entryIdx[key] = len(stats.Duplicates)
			stats.Duplicates = append(stats.Duplicates, Duplicate{Identifier: label})
		}
	}

	for key, idx := range entryIdx {
		stats.Duplicates[idx].Occurrences = occurrences[key]
	}
	sort.SliceStable(stats.Duplicates, func(i, j int) bool {
		return stats.Duplicates[i].Occurrences > stats.Duplicates[j].Occurrences
	})

	stats.UniqueCount = len(occurrences)
	stats.DuplicateCount = len(requests) - stats.UniqueCount
	return stats
}

// TopEntry is one bucket of a top-N distribution.
type TopEntry struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// TopManufacturers tallies the top three manufacturers across found pairs.
func TopManufacturers(found []match.Pair) []TopEntry {
	return topValues(found, match.ManufacturerFields, 3)
}

// TopFamilies tallies the top three product families across found pairs.
func TopFamilies(found []match.Pair) []TopEntry {
	return topValues(found, match.FamilyFields, 3)
}

func topValues(found []match.Pair, candidates []string, n int) []TopEntry {
	counts := make(map[string]int, len(found))
	order := make([]string, 0, len(found))

	for _, pair := range found {
		name := match.ResolveField(pair.Matched, candidates)
		if name == "" {
			name = UnspecifiedLabel
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	entries := make([]TopEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, TopEntry{
			Name:       name,
			Count:      counts[name],
			Percentage: roundPct(counts[name], len(found)),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// FilterFound narrows found pairs by a free-text query: case-insensitive
// substring match against the requested identifier or any value of the
// matched catalog record. An empty query returns all pairs. Order is
// preserved.
func FilterFound(found []match.Pair, query string) []match.Pair {
	query = strings.TrimSpace(query)
	if query == "" {
		return found
	}
	q := strings.ToLower(query)

	out := []match.Pair{}
	for _, pair := range found {
		if strings.Contains(strings.ToLower(pair.Identifier), q) {
			out = append(out, pair)
			continue
		}
		hit := false
		pair.Matched.Each(func(_, value string) {
			if !hit && strings.Contains(strings.ToLower(value), q) {
				hit = true
			}
		})
		if hit {
			out = append(out, pair)
		}
	}
	return out
}

func roundPct(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
