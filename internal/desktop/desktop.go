package desktop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

var ErrToolNotFound = errors.New("desktop tool not found")

type Command struct {
	Path string
	Args []string
}

type LookPath func(string) (string, error)

// candidate is one program that may serve a desktop action, with the
// arguments it needs ahead of any caller-supplied ones.
type candidate struct {
	name string
	args []string
}

var openers = map[string][]candidate{
	"darwin":  {{name: "open"}},
	"linux":   {{name: "xdg-open"}},
	"freebsd": {{name: "xdg-open"}},
	"openbsd": {{name: "xdg-open"}},
	"netbsd":  {{name: "xdg-open"}},
	"windows": {{name: "rundll32", args: []string{"url.dll,FileProtocolHandler"}}},
}

// Wayland first; xclip covers X11 sessions.
var copiers = map[string][]candidate{
	"darwin":  {{name: "pbcopy"}},
	"linux":   {{name: "wl-copy"}, {name: "xclip", args: []string{"-selection", "clipboard"}}},
	"freebsd": {{name: "wl-copy"}, {name: "xclip", args: []string{"-selection", "clipboard"}}},
	"windows": {{name: "clip"}},
}

func selectCommand(table map[string][]candidate, goos string, lookPath LookPath) (Command, error) {
	for _, c := range table[goos] {
		path, err := lookPath(c.name)
		if err != nil {
			continue
		}
		return Command{Path: path, Args: append([]string(nil), c.args...)}, nil
	}
	return Command{}, ErrToolNotFound
}

// SelectOpenCommand picks the program that hands a URI to the default
// browser or viewer.
func SelectOpenCommand(goos string, lookPath LookPath) (Command, error) {
	return selectCommand(openers, goos, lookPath)
}

// SelectCopyCommand picks the program that reads clipboard text from stdin.
func SelectCopyCommand(goos string, lookPath LookPath) (Command, error) {
	return selectCommand(copiers, goos, lookPath)
}

// Open starts the viewer and returns without waiting for it to exit. ctx is
// only checked before launch; the viewer outlives it.
func Open(ctx context.Context, uri string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	def, err := SelectOpenCommand(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}
	cmd := exec.Command(def.Path, append(def.Args, uri)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", def.Path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Copy places text on the system clipboard and waits for the tool to exit.
func Copy(ctx context.Context, text string) error {
	def, err := SelectCopyCommand(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, def.Path, def.Args...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("copy via %s: %w: %s", def.Path, err, msg)
		}
		return fmt.Errorf("copy via %s: %w", def.Path, err)
	}
	return nil
}
