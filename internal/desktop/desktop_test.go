package desktop

import (
	"errors"
	"testing"
)

func only(available map[string]string) LookPath {
	return func(name string) (string, error) {
		if p, ok := available[name]; ok {
			return p, nil
		}
		return "", errors.New("not found")
	}
}

func TestSelectOpenCommand(t *testing.T) {
	cases := []struct {
		goos  string
		tools map[string]string
		path  string
		args  []string
	}{
		{"darwin", map[string]string{"open": "/usr/bin/open"}, "/usr/bin/open", nil},
		{"linux", map[string]string{"xdg-open": "/usr/bin/xdg-open"}, "/usr/bin/xdg-open", nil},
		{"windows", map[string]string{"rundll32": `C:\Windows\System32\rundll32.exe`}, `C:\Windows\System32\rundll32.exe`, []string{"url.dll,FileProtocolHandler"}},
	}
	for _, tc := range cases {
		cmd, err := SelectOpenCommand(tc.goos, only(tc.tools))
		if err != nil {
			t.Fatalf("%s: expected command, got %v", tc.goos, err)
		}
		if cmd.Path != tc.path {
			t.Fatalf("%s: unexpected path %q", tc.goos, cmd.Path)
		}
		if len(cmd.Args) != len(tc.args) {
			t.Fatalf("%s: unexpected args %#v", tc.goos, cmd.Args)
		}
		for i := range tc.args {
			if cmd.Args[i] != tc.args[i] {
				t.Fatalf("%s: unexpected args %#v", tc.goos, cmd.Args)
			}
		}
	}
}

func TestSelectOpenCommandUnavailable(t *testing.T) {
	for _, goos := range []string{"linux", "darwin", "plan9"} {
		if _, err := SelectOpenCommand(goos, only(nil)); !errors.Is(err, ErrToolNotFound) {
			t.Fatalf("%s: expected ErrToolNotFound, got %v", goos, err)
		}
	}
}

func TestSelectCopyCommandLinuxPrefersWlCopy(t *testing.T) {
	cmd, err := SelectCopyCommand("linux", only(map[string]string{
		"wl-copy": "/usr/bin/wl-copy",
		"xclip":   "/usr/bin/xclip",
	}))
	if err != nil {
		t.Fatalf("expected command, got error: %v", err)
	}
	if cmd.Path != "/usr/bin/wl-copy" {
		t.Fatalf("expected wl-copy, got %q", cmd.Path)
	}
}

func TestSelectCopyCommandLinuxFallsBackToXclip(t *testing.T) {
	cmd, err := SelectCopyCommand("linux", only(map[string]string{"xclip": "/usr/bin/xclip"}))
	if err != nil {
		t.Fatalf("expected command, got error: %v", err)
	}
	if len(cmd.Args) != 2 || cmd.Args[0] != "-selection" || cmd.Args[1] != "clipboard" {
		t.Fatalf("unexpected xclip args: %#v", cmd.Args)
	}
}

func TestSelectCopyCommandDarwin(t *testing.T) {
	cmd, err := SelectCopyCommand("darwin", only(map[string]string{"pbcopy": "/usr/bin/pbcopy"}))
	if err != nil {
		t.Fatalf("expected command, got error: %v", err)
	}
	if cmd.Path != "/usr/bin/pbcopy" || len(cmd.Args) != 0 {
		t.Fatalf("unexpected command: %#v", cmd)
	}
}

func TestSelectCopyCommandUnavailable(t *testing.T) {
	for _, goos := range []string{"linux", "windows", "plan9"} {
		if _, err := SelectCopyCommand(goos, only(nil)); !errors.Is(err, ErrToolNotFound) {
			t.Fatalf("%s: expected ErrToolNotFound, got %v", goos, err)
		}
	}
}

func TestSelectCopyCommandWindows(t *testing.T) {
	cmd, err := SelectCopyCommand("windows", only(map[string]string{"clip": `C:\Windows\System32\clip.exe`}))
	if err != nil {
		t.Fatalf("expected command, got error: %v", err)
	}
	if cmd.Path != `C:\Windows\System32\clip.exe` || len(cmd.Args) != 0 {
		t.Fatalf("unexpected command: %#v", cmd)
	}
}

func TestSelectedArgsAreNotShared(t *testing.T) {
	tools := only(map[string]string{"rundll32": "rundll32"})
	first, _ := SelectOpenCommand("windows", tools)
	first.Args[0] = "changed"
	second, _ := SelectOpenCommand("windows", tools)
	if second.Args[0] != "url.dll,FileProtocolHandler" {
		t.Fatalf("selection table was mutated: %#v", second.Args)
	}
}
