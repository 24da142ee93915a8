// Package lifelist parses eBird "My Data" CSV exports into a deduplicated
// set of canonical species names. Subspecies qualifiers are stripped and
// hybrid or species-group records are excluded, so the resulting list
// contains only names the optimizer can match against its taxonomy.
package lifelist

import "strings"

const (
	commonNameHeader     = "Common Name"
	scientificNameHeader = "Scientific Name"
)

// List is a set of canonical species names. Iteration order is the order of
// first occurrence in the source file; callers must not depend on it.
type List struct {
	names []string
	index map[string]struct{}
}

// NewList returns an empty life list.
func NewList() *List {
	return &List{index: make(map[string]struct{})}
}

// Add inserts a canonical name into the list. It reports whether the name
// was newly added; duplicate insertions are no-ops.
func (l *List) Add(name string) bool {
	if _, ok := l.index[name]; ok {
		return false
	}
	l.index[name] = struct{}{}
	l.names = append(l.names, name)
	return true
}

// Contains reports whether the canonical name is present.
func (l *List) Contains(name string) bool {
	_, ok := l.index[name]
	return ok
}

// Len returns the number of distinct species.
func (l *List) Len() int { return len(l.names) }

// Names returns a copy of the species names in first-occurrence order.
func (l *List) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// ParseReport summarizes what happened during a parse, for user feedback.
type ParseReport struct {
	Rows            int // data rows seen (blank lines excluded)
	Species         int // distinct species kept
	Duplicates      int // rows dropped as repeat observations
	ExcludedGroups  int // slash alternatives and " sp." group entries
	ExcludedHybrids int // " x " hybrid notation in the scientific name
}

// Parse consumes full CSV text and produces the deduplicated life list.
//
// The header row must contain a column labeled exactly "Common Name"; if it
// is missing (or there is no data row at all) the result is an empty list,
// not an error. A "Scientific Name" column is optional and only enables
// hybrid filtering. Rows shorter than the header yield empty fields for the
// missing columns, which resolve to an empty canonical name and are dropped.
func Parse(text string) (*List, ParseReport) {
	list := NewList()
	var rep ParseReport

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return list, rep
	}

	header := TokenizeLine(strings.TrimSuffix(lines[0], "\r"))
	commonIdx, scientificIdx := -1, -1
	for i, label := range header {
		switch label {
		case commonNameHeader:
			commonIdx = i
		case scientificNameHeader:
			scientificIdx = i
		}
	}
	if commonIdx < 0 {
		return list, rep
	}

	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rep.Rows++

		fields := TokenizeLine(line)
		common := fieldAt(fields, commonIdx)
		scientific := fieldAt(fields, scientificIdx)

		name := CanonicalName(common)
		if name == "" {
			continue
		}
		if strings.Contains(name, "/") || strings.Contains(name, " sp.") {
			rep.ExcludedGroups++
			continue
		}
		if strings.Contains(scientific, " x ") {
			rep.ExcludedHybrids++
			continue
		}
		if list.Add(name) {
			rep.Species++
		} else {
			rep.Duplicates++
		}
	}
	return list, rep
}

// CanonicalName strips the parenthetical subspecies qualifier from a raw
// common name, e.g. "Canada Goose (moffitti/maxima)" -> "Canada Goose".
func CanonicalName(raw string) string {
	if i := strings.Index(raw, " ("); i >= 0 {
		return raw[:i]
	}
	return raw
}

func fieldAt(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}
