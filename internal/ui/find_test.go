package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func bracket(s string) string { return "[[" + s + "]]" }

func TestFindInRenderedCaseInsensitive(t *testing.T) {
	res := findInRendered("Invoice total\nno hit\nthe TOTAL is due\n", "total", bracket)
	if res.Count != 2 {
		t.Fatalf("expected 2 matches, got %d", res.Count)
	}
	if len(res.Lines) != 2 || res.Lines[0] != 0 || res.Lines[1] != 2 {
		t.Fatalf("unexpected match lines: %#v", res.Lines)
	}
	if !strings.Contains(res.Text, "Invoice [[total]]") || !strings.Contains(res.Text, "the [[TOTAL]] is due") {
		t.Fatalf("marks not applied: %q", res.Text)
	}
}

func TestFindInRenderedStripsStylingOnMatchedLinesOnly(t *testing.T) {
	in := "\x1b[1mQ1: revenue\x1b[0m\n\x1b[31mother\x1b[0m"
	res := findInRendered(in, "revenue", bracket)
	lines := strings.Split(res.Text, "\n")
	if lines[0] != "Q1: [[revenue]]" {
		t.Fatalf("unexpected matched line %q", lines[0])
	}
	if lines[1] != "\x1b[31mother\x1b[0m" {
		t.Fatalf("unmatched line should keep styling, got %q", lines[1])
	}
}

func TestFindInRenderedMatchesAcrossEscapes(t *testing.T) {
	res := findInRendered("re\x1b[31mven\x1b[0mue", "revenue", bracket)
	if res.Count != 1 || res.Text != "[[revenue]]" {
		t.Fatalf("expected match on visible text, got %d %q", res.Count, res.Text)
	}
}

func TestFindInRenderedEmptyQuery(t *testing.T) {
	in := "\x1b[1mbold\x1b[0m"
	if res := findInRendered(in, "  ", bracket); res.Text != in || res.Count != 0 {
		t.Fatalf("empty query must be a no-op, got %+v", res)
	}
}

func TestFindKeyJumpsBetweenMatches(t *testing.T) {
	m, _ := withState(t, activeState())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	m.rendered = strings.Repeat("filler\n", 50) + "needle one\n" + strings.Repeat("filler\n", 50) + "needle two"

	m, _ = press(m, "/", "needle")
	m, _ = press(m, "enter")
	if m.matchCount != 2 || m.matchIndex != 0 {
		t.Fatalf("expected first of 2 matches, got %d/%d", m.matchIndex, m.matchCount)
	}
	m, _ = press(m, "]")
	if m.matchIndex != 1 {
		t.Fatalf("expected second match, got %d", m.matchIndex)
	}
	m, _ = press(m, "]")
	if m.matchIndex != 0 {
		t.Fatalf("expected wrap to first match, got %d", m.matchIndex)
	}

	m, _ = press(m, "esc")
	if m.findQuery != "" || m.matchCount != 0 {
		t.Fatalf("esc should clear find, got %q %d", m.findQuery, m.matchCount)
	}
}
