package insights

import (
	"strings"
	"testing"

	"github.com/ostrem/partmatch/internal/match"
	"github.com/ostrem/partmatch/internal/record"
)

func rec(kv ...string) record.Record {
	r := record.New()
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

func matchUp(catalog, requests []record.Record) match.Result {
	return match.Match(match.BuildIndex(catalog), requests)
}

func TestCoverage_EmptyIsZero(t *testing.T) {
	stats := Coverage(match.Result{})
	if stats.Total != 0 || stats.Coverage != 0 {
		t.Errorf("stats = %+v, want zeros", stats)
	}
}

func TestCoverage_Rounding(t *testing.T) {
	catalog := []record.Record{rec("PN", "A1")}
	requests := []record.Record{rec("PN", "A1"), rec("PN", "B2"), rec("PN", "C3")}
	stats := Coverage(matchUp(catalog, requests))
	// 1/3 = 33.33 → 33.
	if stats.Coverage != 33 {
		t.Errorf("coverage = %d, want 33", stats.Coverage)
	}
	if stats.Total != 3 || stats.Found != 1 || stats.Missing != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCoverage_FullMatch(t *testing.T) {
	catalog := []record.Record{rec("Part Number", "ABC-1", "Manufacturer", "Acme")}
	requests := []record.Record{rec("PN", "abc-1")}
	stats := Coverage(matchUp(catalog, requests))
	if stats.Coverage != 100 {
		t.Errorf("coverage = %d, want 100", stats.Coverage)
	}
}

func TestDuplicates_CanonicalKeyCollapsesCasing(t *testing.T) {
	requests := []record.Record{rec("PN", "A1"), rec("PN", "a1")}
	stats := Duplicates(requests)
	if len(stats.Duplicates) != 1 {
		t.Fatalf("duplicates = %d, want 1", len(stats.Duplicates))
	}
	d := stats.Duplicates[0]
	if d.Identifier != "A1" || d.Occurrences != 2 {
		t.Errorf("entry = %+v", d)
	}
	if stats.UniqueCount != 1 || stats.DuplicateCount != 1 {
		t.Errorf("unique=%d duplicate=%d", stats.UniqueCount, stats.DuplicateCount)
	}
}

func TestDuplicates_UnidentifiedRowsNeverCollide(t *testing.T) {
	requests := []record.Record{record.New(), record.New(), record.New()}
	stats := Duplicates(requests)
	if len(stats.Duplicates) != 0 {
		t.Errorf("unidentified rows reported as duplicates: %+v", stats.Duplicates)
	}
	if stats.UnidentifiedCount != 3 {
		t.Errorf("unidentified = %d, want 3", stats.UnidentifiedCount)
	}
	if stats.UniqueCount != 3 || stats.DuplicateCount != 0 {
		t.Errorf("unique=%d duplicate=%d", stats.UniqueCount, stats.DuplicateCount)
	}
}

func TestDuplicates_SortedByOccurrences(t *testing.T) {
	requests := []record.Record{
		rec("PN", "B2"), rec("PN", "B2"),
		rec("PN", "A1"), rec("PN", "A1"), rec("PN", "A1"),
	}
	stats := Duplicates(requests)
	if len(stats.Duplicates) != 2 {
		t.Fatalf("duplicates = %d", len(stats.Duplicates))
	}
	if stats.Duplicates[0].Identifier != "A1" || stats.Duplicates[0].Occurrences != 3 {
		t.Errorf("first = %+v, want A1 x3", stats.Duplicates[0])
	}
}

func TestDuplicates_CountInvariant(t *testing.T) {
	requests := []record.Record{
		rec("PN", "A1"), rec("PN", "a1"), rec("PN", "B2"), record.New(),
	}
	stats := Duplicates(requests)
	if stats.UniqueCount+stats.DuplicateCount != len(requests) {
		t.Errorf("unique %d + duplicate %d != total %d",
			stats.UniqueCount, stats.DuplicateCount, len(requests))
	}
}

func TestTopManufacturers_TopThreeWithPercentages(t *testing.T) {
	catalog := []record.Record{
		rec("PN", "A1", "Manufacturer", "Acme"),
		rec("PN", "A2", "Manufacturer", "Acme"),
		rec("PN", "B1", "Manufacturer", "Bolt Co"),
		rec("PN", "C1", "Manufacturer", "Cog"),
		rec("PN", "D1", "Manufacturer", "Dyno"),
	}
	requests := []record.Record{
		rec("PN", "A1"), rec("PN", "A2"), rec("PN", "B1"), rec("PN", "C1"), rec("PN", "D1"),
	}
	top := TopManufacturers(matchUp(catalog, requests).Found)
	if len(top) != 3 {
		t.Fatalf("top = %d entries, want 3", len(top))
	}
	if top[0].Name != "Acme" || top[0].Count != 2 {
		t.Errorf("top[0] = %+v", top[0])
	}
	// 2/5 = 40%.
	if top[0].Percentage != 40 {
		t.Errorf("percentage = %d, want 40", top[0].Percentage)
	}
}

func TestTopFamilies_UnspecifiedFallback(t *testing.T) {
	catalog := []record.Record{rec("PN", "A1", "Manufacturer", "Acme")}
	requests := []record.Record{rec("PN", "A1")}
	top := TopFamilies(matchUp(catalog, requests).Found)
	if len(top) != 1 || top[0].Name != UnspecifiedLabel {
		t.Errorf("top = %+v, want single %q bucket", top, UnspecifiedLabel)
	}
	if top[0].Percentage != 100 {
		t.Errorf("percentage = %d", top[0].Percentage)
	}
}

func TestTopValues_EmptyFound(t *testing.T) {
	if top := TopManufacturers(nil); len(top) != 0 {
		t.Errorf("top = %+v, want empty", top)
	}
}

func TestFilterFound_IdentifierAndValues(t *testing.T) {
	catalog := []record.Record{
		rec("PN", "A1", "Manufacturer", "Acme", "Family", "Widgets"),
		rec("PN", "B2", "Manufacturer", "Bolt Co"),
	}
	requests := []record.Record{rec("PN", "a1"), rec("PN", "b2")}
	found := matchUp(catalog, requests).Found

	// Match on identifier substring.
	if got := FilterFound(found, "a1"); len(got) != 1 || got[0].Identifier != "A1" {
		t.Errorf("filter a1 = %+v", got)
	}
	// Match on a catalog value, case-insensitive.
	if got := FilterFound(found, "WIDG"); len(got) != 1 || got[0].Identifier != "A1" {
		t.Errorf("filter WIDG = %+v", got)
	}
	// Empty query returns everything.
	if got := FilterFound(found, "  "); len(got) != 2 {
		t.Errorf("empty query = %d pairs, want 2", len(got))
	}
	// No hits.
	if got := FilterFound(found, "zzz"); len(got) != 0 {
		t.Errorf("filter zzz = %+v", got)
	}
}

func TestFilterFound_PreservesOrder(t *testing.T) {
	catalog := []record.Record{
		rec("PN", "A1", "Manufacturer", "Shared"),
		rec("PN", "B2", "Manufacturer", "Shared"),
	}
	requests := []record.Record{rec("PN", "A1"), rec("PN", "B2")}
	got := FilterFound(matchUp(catalog, requests).Found, "shared")
	if len(got) != 2 || got[0].Identifier != "A1" {
		ids := make([]string, len(got))
		for i, p := range got {
			ids[i] = p.Identifier
		}
		t.Errorf("order = %s", strings.Join(ids, ","))
	}
}
