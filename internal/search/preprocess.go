package search

import (
	"bufio"
	"strings"
)

// FlattenMarkdown splits document text into standalone facts. Every non-blank
// line becomes one fact, and Markdown table rows are flattened into a single
// space-joined fact per row with separator rows ("|---|:--:|") dropped.
//
// Notes:
//   - Markdown emphasis and heading markers are kept; the tokenizer ignores them.
//   - A lone "text" cell (a common placeholder column header) is skipped.
func FlattenMarkdown(text string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	addFact := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "text") {
			return
		}
		out = append(out, s)
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		// table row: "| ... |"
		if strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|") {
			raw := strings.Trim(line, "|")
			cols := strings.Split(raw, "|")

			allSep := true
			cleaned := make([]string, 0, len(cols))
			for _, c := range cols {
				cell := strings.TrimSpace(c)
				if cell != "" {
					cleaned = append(cleaned, cell)
				}
				tmp := strings.ReplaceAll(cell, ":", "")
				tmp = strings.ReplaceAll(tmp, "-", "")
				if strings.TrimSpace(tmp) != "" {
					allSep = false
				}
			}
			if allSep || len(cleaned) == 0 {
				continue
			}
			addFact(strings.Join(cleaned, " "))
			continue
		}

		// non-table line → one fact per line
		addFact(line)
	}
	if sc.Err() != nil {
		// A line beyond the scanner buffer: index the text as one fact.
		return []string{strings.TrimSpace(text)}
	}
	return out
}
