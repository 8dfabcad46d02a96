package sheets

import (
	"strings"
)

// ParseCSV splits exported sheet text into trimmed cells. It is deliberately
// forgiving: quotes toggle comma protection, unbalanced quotes never fail, and
// blank lines are dropped. Exported sheets are too irregular for a strict
// reader, so malformed rows degrade to best-effort cells instead of an error.
func ParseCSV(text string) [][]string {
	var rows [][]string

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var cells []string
		var current strings.Builder
		inQuotes := false

		for _, r := range line {
			switch {
			case r == '"':
				inQuotes = !inQuotes
			case r == ',' && !inQuotes:
				cells = append(cells, strings.TrimSpace(current.String()))
				current.Reset()
			default:
				current.WriteRune(r)
			}
		}
		cells = append(cells, strings.TrimSpace(current.String()))

		rows = append(rows, cells)
	}

	return rows
}
