package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdfquery/internal/session"
)

const DefaultDir = "exports"

type Exporter struct {
	dir string
	cwd string
}

func New(dir string) (*Exporter, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve cwd: %w", err)
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = DefaultDir
	}
	return &Exporter{dir: dir, cwd: cwd}, nil
}

// Export writes the transcript to <dir>/<token>.md and returns the path.
func (e *Exporter) Export(token session.Token, pairs []session.QAPair) (string, error) {
	if len(pairs) == 0 {
		return "", fmt.Errorf("export: transcript is empty")
	}
	path := e.outputPath(token)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	body := BuildTranscriptMarkdown(pairs)
	md := BuildSessionMarkdown(token, len(pairs), body, time.Now().UTC())
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

// BuildTranscriptMarkdown numbers pairs the same way the server's PDF does.
func BuildTranscriptMarkdown(pairs []session.QAPair) string {
	var b strings.Builder
	for i, p := range pairs {
		q := strings.TrimSpace(p.Question)
		a := strings.TrimSpace(p.Answer)
		if q == "" && a == "" {
			continue
		}
		fmt.Fprintf(&b, "## Q%d: %s\n\n", i+1, oneLine(q))
		if a == "" {
			a = "_no answer_"
		}
		fmt.Fprintf(&b, "**A%d:** %s\n\n", i+1, a)
	}
	return strings.TrimSpace(b.String()) + "\n"
}

func BuildSessionMarkdown(token session.Token, count int, transcript string, now time.Time) string {
	var b strings.Builder
	b.WriteString("# PDFQuery session " + safeValue(string(token)) + "\n\n")
	b.WriteString("Exported: " + now.Format(time.RFC3339) + "\n\n")
	b.WriteString("```text\n")
	b.WriteString("session_id: " + safeValue(string(token)) + "\n")
	b.WriteString(fmt.Sprintf("qa_pairs: %d\n", count))
	b.WriteString("```\n\n")
	b.WriteString(transcript)
	if !strings.HasSuffix(transcript, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

func (e *Exporter) outputPath(token session.Token) string {
	dir := e.dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(e.cwd, dir)
	}
	return filepath.Join(dir, safeFileName(string(token))+".md")
}

// oneLine keeps multi-line questions from breaking the heading.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func safeFileName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "session"
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_", "..", "_")
	return replacer.Replace(s)
}

func safeValue(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "n/a"
	}
	return s
}
