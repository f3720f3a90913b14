package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type findResult struct {
	Text  string
	Count int
	Lines []int
}

// findInRendered highlights case-insensitive matches of query in glamour
// output. Matching lines lose their own styling so the highlight is never
// split by an escape sequence; other lines are returned untouched.
func findInRendered(rendered, query string, mark func(string) string) findResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return findResult{Text: rendered}
	}

	lines := strings.Split(rendered, "\n")
	res := findResult{}
	for i, line := range lines {
		plain := ansi.Strip(line)
		n := strings.Count(strings.ToLower(plain), query)
		if n == 0 {
			continue
		}
		res.Count += n
		res.Lines = append(res.Lines, i)
		lines[i] = markMatches(plain, query, mark)
	}
	res.Text = strings.Join(lines, "\n")
	return res
}

func markMatches(plain, query string, mark func(string) string) string {
	lower := strings.ToLower(plain)
	if len(lower) != len(plain) {
		// case folding changed byte offsets
		return plain
	}
	var b strings.Builder
	start := 0
	for {
		rel := strings.Index(lower[start:], query)
		if rel < 0 {
			b.WriteString(plain[start:])
			return b.String()
		}
		idx := start + rel
		b.WriteString(plain[start:idx])
		b.WriteString(mark(plain[idx : idx+len(query)]))
		start = idx + len(query)
	}
}
