package lifelist

import (
	"strings"
	"testing"
)

func csvText(rows ...string) string {
	return strings.Join(rows, "\n")
}

func TestParseDeduplicates(t *testing.T) {
	list, rep := Parse(csvText(
		"Common Name,Scientific Name",
		`"Bird A",Genus spA`,
		`"Bird A",Genus spA`,
	))
	if list.Len() != 1 {
		t.Fatalf("expected 1 species, got %d: %v", list.Len(), list.Names())
	}
	if !list.Contains("Bird A") {
		t.Fatalf("expected list to contain %q", "Bird A")
	}
	if rep.Duplicates != 1 {
		t.Fatalf("expected 1 duplicate, got %d", rep.Duplicates)
	}
}

func TestParseStripsSubspecies(t *testing.T) {
	list, _ := Parse(csvText(
		"Common Name,Scientific Name",
		`"Bird B (subspecies X)",Genus spB`,
	))
	if !list.Contains("Bird B") {
		t.Fatalf("expected canonical name %q, got %v", "Bird B", list.Names())
	}
	if list.Contains("Bird B (subspecies X)") {
		t.Fatalf("raw subspecies name must not be stored")
	}
}

func TestParseExclusions(t *testing.T) {
	list, rep := Parse(csvText(
		"Common Name,Scientific Name",
		`"Bird C/Bird D",Genus spC`,
		`"Bird E sp.",Genus spD`,
		`"Bird F",Genus x spE`,
		`"Bird G",Genus spG`,
	))
	if list.Len() != 1 || !list.Contains("Bird G") {
		t.Fatalf("expected only Bird G, got %v", list.Names())
	}
	if rep.ExcludedGroups != 2 {
		t.Fatalf("expected 2 group exclusions, got %d", rep.ExcludedGroups)
	}
	if rep.ExcludedHybrids != 1 {
		t.Fatalf("expected 1 hybrid exclusion, got %d", rep.ExcludedHybrids)
	}
}

func TestParseSlashInsideQualifierKept(t *testing.T) {
	// The parenthetical is removed before the slash check, so an alternative
	// hidden inside the qualifier does not exclude the row.
	list, _ := Parse(csvText(
		"Common Name,Scientific Name",
		`"Bird H (x/y group)",Genus spH`,
	))
	if !list.Contains("Bird H") {
		t.Fatalf("expected Bird H kept, got %v", list.Names())
	}
}

func TestParseMissingCommonNameColumn(t *testing.T) {
	list, _ := Parse(csvText(
		"Species,Scientific Name",
		`"Bird A",Genus spA`,
	))
	if list.Len() != 0 {
		t.Fatalf("expected empty list without Common Name column, got %v", list.Names())
	}
}

func TestParseMissingScientificNameColumnTolerated(t *testing.T) {
	list, _ := Parse(csvText(
		"Common Name",
		`"Bird A"`,
	))
	if !list.Contains("Bird A") {
		t.Fatalf("expected Bird A, got %v", list.Names())
	}
}

func TestParseTooFewLines(t *testing.T) {
	if list, _ := Parse("Common Name,Scientific Name"); list.Len() != 0 {
		t.Fatalf("header-only input must yield an empty list")
	}
	if list, _ := Parse(""); list.Len() != 0 {
		t.Fatalf("empty input must yield an empty list")
	}
}

func TestParseSkipsBlankAndShortRows(t *testing.T) {
	list, rep := Parse(csvText(
		"Submission ID,Common Name,Scientific Name",
		"",
		`S1,"Bird A",Genus spA`,
		"S2",
		"   ",
		`S3,"Bird B",Genus spB`,
	))
	if list.Len() != 2 {
		t.Fatalf("expected 2 species, got %v", list.Names())
	}
	// The short row counts as a data row but resolves to an empty name.
	if rep.Rows != 3 {
		t.Fatalf("expected 3 data rows, got %d", rep.Rows)
	}
}

func TestParseHandlesCRLF(t *testing.T) {
	list, _ := Parse("Common Name,Scientific Name\r\n\"Bird A\",Genus spA\r\n")
	if !list.Contains("Bird A") {
		t.Fatalf("expected Bird A with CRLF input, got %v", list.Names())
	}
}

func TestParseQuotedCommaInName(t *testing.T) {
	list, _ := Parse(csvText(
		"Common Name,Scientific Name",
		`"Bird, Eastern",Genus spA`,
	))
	if !list.Contains("Bird, Eastern") {
		t.Fatalf("expected quoted comma preserved, got %v", list.Names())
	}
}
