package match

import (
	"testing"

	"github.com/ostrem/partmatch/internal/record"
)

func rec(kv ...string) record.Record {
	r := record.New()
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

func TestExtractIdentifier_PriorityField(t *testing.T) {
	cases := []struct {
		name string
		rec  record.Record
		want string
	}{
		{"exact", rec("Part Number", "abc-1"), "ABC-1"},
		{"case insensitive key", rec("PART NUMBER", "abc-1"), "ABC-1"},
		{"sku", rec("sku", "x9"), "X9"},
		{"pn", rec("PN", "a1"), "A1"},
		{"mpn beats fallback", rec("Description", "bolt", "MPN", "m-7"), "M-7"},
		{"value whitespace trimmed", rec("Part Number", "  ab 12  "), "AB 12"},
	}
	for _, tc := range cases {
		if got := ExtractIdentifier(tc.rec); got != tc.want {
			t.Errorf("%s: ExtractIdentifier = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestExtractIdentifier_PriorityOrder(t *testing.T) {
	// "part number" outranks "sku" regardless of field position.
	r := rec("SKU", "second", "Part Number", "first")
	if got := ExtractIdentifier(r); got != "FIRST" {
		t.Errorf("ExtractIdentifier = %q, want FIRST", got)
	}
}

func TestExtractIdentifier_FallbackFirstField(t *testing.T) {
	r := rec("Notes", "loose part, no id", "Qty", "3")
	if got := ExtractIdentifier(r); got != "LOOSE PART, NO ID" {
		t.Errorf("fallback = %q", got)
	}
}

func TestExtractIdentifier_Empty(t *testing.T) {
	if got := ExtractIdentifier(record.New()); got != "" {
		t.Errorf("empty record = %q, want \"\"", got)
	}
	var zero record.Record
	if got := ExtractIdentifier(zero); got != "" {
		t.Errorf("zero record = %q, want \"\"", got)
	}
}

func TestResolveField_CandidatePriority(t *testing.T) {
	r := rec("Brand", "OffBrand", "Manufacturer", "Acme")
	// "manufacturer" is a higher-priority candidate than "brand".
	if got := ResolveField(r, ManufacturerFields); got != "Acme" {
		t.Errorf("ResolveField = %q, want Acme", got)
	}
}

func TestResolveField_NoMatch(t *testing.T) {
	r := rec("Part Number", "A1")
	if got := ResolveField(r, FamilyFields); got != "" {
		t.Errorf("ResolveField = %q, want \"\"", got)
	}
}

func TestResolveField_CaseInsensitive(t *testing.T) {
	r := rec("MANUFACTURER", "Acme")
	if got := ResolveField(r, ManufacturerFields); got != "Acme" {
		t.Errorf("ResolveField = %q, want Acme", got)
	}
}
