package lifelist

import "strings"

// TokenizeLine splits one CSV line into an ordered slice of trimmed fields.
//
// Fields may be wrapped in double quotes; inside quotes a comma is a literal
// character. A doubled quote inside a quoted field yields one literal quote.
// Malformed quoting is not rejected: the scanner consumes to end of line and
// returns whatever accumulated. Pure function of the input line.
func TokenizeLine(line string) []string {
	fields := make([]string, 0, 8)
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				// Escaped quote: emit one literal quote, stay in quoted mode.
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields
}
