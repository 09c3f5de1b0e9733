package report

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

func TestBuild_OneRowPerRequest(t *testing.T) {
	catalog := []record.Record{rec("Part Number", "A1", "Manufacturer", "Acme")}
	requests := []record.Record{rec("PN", "a1"), rec("PN", "b2"), record.New()}
	res := match.Match(match.BuildIndex(catalog), requests)

	rows := Build(requests, res)
	if len(rows) != len(requests) {
		t.Fatalf("rows = %d, want %d", len(rows), len(requests))
	}
	if rows[0].Status != StatusAvailable {
		t.Errorf("rows[0].Status = %q", rows[0].Status)
	}
	if rows[0].Match != "Part Number: A1; Manufacturer: Acme" {
		t.Errorf("rows[0].Match = %q", rows[0].Match)
	}
	if rows[1].Status != StatusMissing || rows[1].Match != "" {
		t.Errorf("rows[1] = %+v", rows[1])
	}
	if rows[2].Identifier != "" || rows[2].Status != StatusMissing {
		t.Errorf("rows[2] = %+v", rows[2])
	}
}

func TestEncodeCSV_QuotingAndLayout(t *testing.T) {
	rows := []Row{
		{Identifier: "A1", Status: StatusAvailable, Match: `Desc: 1/4" bolt, steel`},
	}
	out := string(EncodeCSV(rows))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2:\n%s", len(lines), out)
	}
	if lines[0] != `"Requested Part","Status","Match Details"` {
		t.Errorf("header = %s", lines[0])
	}
	want := `"A1","Available","Desc: 1/4"" bolt, steel"`
	if lines[1] != want {
		t.Errorf("row = %s, want %s", lines[1], want)
	}
}

func TestEncodeCSV_Empty(t *testing.T) {
	out := string(EncodeCSV(nil))
	if out != `"Requested Part","Status","Match Details"` {
		t.Errorf("empty export = %q", out)
	}
}
