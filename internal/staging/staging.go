package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdfquery/internal/session"
	"pdfquery/internal/transport"
)

var DefaultExtensions = []string{".pdf", ".pptx", ".docx"}

// Area holds files the user picked but has not submitted yet. It is not safe
// for concurrent use; the lifecycle controller serializes access.
type Area struct {
	allowed map[string]struct{}
	files   []session.StagedFile
}

func New(extensions ...string) *Area {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	a := &Area{allowed: make(map[string]struct{}, len(extensions))}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		a.allowed[ext] = struct{}{}
	}
	return a
}

func (a *Area) Add(f session.StagedFile) error {
	name := strings.TrimSpace(f.Name)
	if err := a.accepts(name); err != nil {
		return err
	}
	for _, existing := range a.files {
		if existing.Name == name {
			return transport.Validation("stage", name+" is already staged")
		}
	}
	f.Name = name
	if f.Size == 0 {
		f.Size = int64(len(f.Content))
	}
	a.files = append(a.files, f)
	return nil
}

func (a *Area) accepts(name string) error {
	if name == "" {
		return transport.Validation("stage", "file name is empty")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := a.allowed[ext]; !ok {
		return transport.Validation("stage", fmt.Sprintf("%s: unsupported file type (want %s)", name, a.allowedList()))
	}
	return nil
}

// Load reads path into a StagedFile without staging it. The extension is
// checked before the file is touched. Load only consults the allowed set,
// which never changes after New, so it may run concurrently with other calls.
func (a *Area) Load(path string) (session.StagedFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return session.StagedFile{}, transport.Validation("stage", "path is empty")
	}
	name := filepath.Base(path)
	if err := a.accepts(name); err != nil {
		return session.StagedFile{}, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return session.StagedFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		return session.StagedFile{}, transport.Validation("stage", path+" is a directory")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return session.StagedFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	return session.StagedFile{Name: name, Size: st.Size(), Content: data}, nil
}

// AddPath reads path from disk and stages it under its base name.
func (a *Area) AddPath(path string) error {
	f, err := a.Load(path)
	if err != nil {
		return err
	}
	return a.Add(f)
}

func (a *Area) Remove(i int) error {
	if i < 0 || i >= len(a.files) {
		return transport.Validation("unstage", fmt.Sprintf("no staged file at position %d", i))
	}
	a.files = append(a.files[:i:i], a.files[i+1:]...)
	return nil
}

func (a *Area) Files() []session.StagedFile {
	if len(a.files) == 0 {
		return nil
	}
	out := make([]session.StagedFile, len(a.files))
	copy(out, a.files)
	return out
}

func (a *Area) Len() int {
	return len(a.files)
}

func (a *Area) TotalSize() int64 {
	var n int64
	for _, f := range a.files {
		n += f.Size
	}
	return n
}

func (a *Area) Clear() {
	a.files = nil
}

func (a *Area) allowedList() string {
	out := make([]string, 0, len(a.allowed))
	for _, ext := range DefaultExtensions {
		if _, ok := a.allowed[ext]; ok {
			out = append(out, ext)
		}
	}
	for ext := range a.allowed {
		known := false
		for _, d := range DefaultExtensions {
			if d == ext {
				known = true
				break
			}
		}
		if !known {
			out = append(out, ext)
		}
	}
	return strings.Join(out, ", ")
}
