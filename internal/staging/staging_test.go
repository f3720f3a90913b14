package staging

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pdfquery/internal/session"
	"pdfquery/internal/transport"
)

func names(files []session.StagedFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

func TestAddKeepsSelectionOrder(t *testing.T) {
	a := New()
	for _, n := range []string{"b.pdf", "a.DOCX", "c.pptx"} {
		if err := a.Add(session.StagedFile{Name: n, Content: []byte("x")}); err != nil {
			t.Fatalf("add %s: %v", n, err)
		}
	}
	want := []string{"b.pdf", "a.DOCX", "c.pptx"}
	if got := names(a.Files()); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: got=%v want=%v", got, want)
	}
	if a.TotalSize() != 3 {
		t.Fatalf("expected size derived from content, got %d", a.TotalSize())
	}
}

func TestAddRejectsInvalidFiles(t *testing.T) {
	cases := []session.StagedFile{
		{Name: ""},
		{Name: "notes.txt"},
		{Name: "noext"},
	}
	for _, f := range cases {
		a := New()
		err := a.Add(f)
		if transport.KindOf(err) != transport.LocalValidation {
			t.Fatalf("file=%q: expected LocalValidation, got %v", f.Name, err)
		}
		if a.Len() != 0 {
			t.Fatalf("file=%q: expected nothing staged", f.Name)
		}
	}
}

func TestAddRejectsDuplicateNames(t *testing.T) {
	a := New()
	if err := a.Add(session.StagedFile{Name: "a.pdf"}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := a.Add(session.StagedFile{Name: "a.pdf"}); transport.KindOf(err) != transport.LocalValidation {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
}

func TestCustomExtensions(t *testing.T) {
	a := New("md", ".TXT")
	if err := a.Add(session.StagedFile{Name: "readme.md"}); err != nil {
		t.Fatalf("expected md accepted: %v", err)
	}
	if err := a.Add(session.StagedFile{Name: "notes.txt"}); err != nil {
		t.Fatalf("expected txt accepted: %v", err)
	}
	if err := a.Add(session.StagedFile{Name: "x.pdf"}); err == nil {
		t.Fatalf("expected pdf rejected with custom extension set")
	}
}

func TestRemove(t *testing.T) {
	a := New()
	for _, n := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		_ = a.Add(session.StagedFile{Name: n})
	}
	held := a.Files()
	if err := a.Remove(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := names(a.Files()); !reflect.DeepEqual(got, []string{"a.pdf", "c.pdf"}) {
		t.Fatalf("unexpected files after remove: %v", got)
	}
	if got := names(held); !reflect.DeepEqual(got, []string{"a.pdf", "b.pdf", "c.pdf"}) {
		t.Fatalf("earlier snapshot must not change: %v", got)
	}
	if err := a.Remove(5); transport.KindOf(err) != transport.LocalValidation {
		t.Fatalf("expected out-of-range rejection, got %v", err)
	}
}

func TestAddPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	a := New()
	if err := a.AddPath(path); err != nil {
		t.Fatalf("add path: %v", err)
	}
	f := a.Files()[0]
	if f.Name != "report.pdf" || f.Size != 8 || string(f.Content) != "%PDF-1.4" {
		t.Fatalf("unexpected staged file: %+v", f)
	}
	sub := filepath.Join(dir, "slides.pdf")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := a.AddPath(sub); transport.KindOf(err) != transport.LocalValidation {
		t.Fatalf("expected directory rejection, got %v", err)
	}
	if err := a.AddPath(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadChecksExtensionBeforeReading(t *testing.T) {
	a := New()
	// The file does not exist, so any disk access would surface a stat error.
	_, err := a.Load(filepath.Join(t.TempDir(), "movie.mkv"))
	if transport.KindOf(err) != transport.LocalValidation {
		t.Fatalf("expected unsupported-type rejection before stat, got %v", err)
	}
	if a.Len() != 0 {
		t.Fatalf("load must not stage")
	}
}

func TestClear(t *testing.T) {
	a := New()
	_ = a.Add(session.StagedFile{Name: "a.pdf"})
	a.Clear()
	if a.Len() != 0 || a.Files() != nil {
		t.Fatalf("expected empty area after clear")
	}
}
