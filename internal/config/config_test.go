package config

import (
	"flag"
	"path/filepath"
	"testing"
	"time"
)

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	return ParseArgs(flag.NewFlagSet("pdfquery", flag.ContinueOnError), args)
}

func TestParseArgsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PDFQUERY_HOME", home)
	t.Setenv("PDFQUERY_API_URL", "")

	cfg, err := parse(t, "-api-url", "http://localhost:5000/")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.APIURL)
	}
	if cfg.DBPath != filepath.Join(home, "session.sqlite") {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.LogPath != filepath.Join(home, "pdfquery.log") {
		t.Fatalf("unexpected log path %q", cfg.LogPath)
	}
	if cfg.SettleDelay != DefaultSettleDelay || cfg.RequestTimeout != DefaultRequestTimeout {
		t.Fatalf("unexpected durations: settle=%s timeout=%s", cfg.SettleDelay, cfg.RequestTimeout)
	}
}

func TestParseArgsEnvironmentDefaults(t *testing.T) {
	t.Setenv("PDFQUERY_HOME", t.TempDir())
	t.Setenv("PDFQUERY_API_URL", "https://pdf.example.com")
	t.Setenv("PDFQUERY_SETTLE", "500ms")
	t.Setenv("PDFQUERY_DEBUG", "true")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.APIURL != "https://pdf.example.com" {
		t.Fatalf("expected env api url, got %q", cfg.APIURL)
	}
	if cfg.SettleDelay != 500*time.Millisecond || !cfg.Debug {
		t.Fatalf("expected env settle and debug, got %+v", cfg)
	}

	cfg, err = parse(t, "-settle", "0s", "-api-url", "http://other:8000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.SettleDelay != 0 || cfg.APIURL != "http://other:8000" {
		t.Fatalf("flags should override env, got %+v", cfg)
	}
}

func TestParseArgsRejectsBadValues(t *testing.T) {
	t.Setenv("PDFQUERY_HOME", t.TempDir())
	cases := [][]string{
		{"-api-url", "ftp://host"},
		{"-api-url", "localhost:5000"},
		{"-settle", "-1s"},
		{"-timeout", "0s"},
	}
	for _, args := range cases {
		if _, err := parse(t, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestParseArgsBadEnvDuration(t *testing.T) {
	t.Setenv("PDFQUERY_HOME", t.TempDir())
	t.Setenv("PDFQUERY_TIMEOUT", "soon")
	if _, err := parse(t); err == nil {
		t.Fatalf("expected error for malformed PDFQUERY_TIMEOUT")
	}
}

func TestDetectDataDirExplicit(t *testing.T) {
	got, err := DetectDataDir("/tmp/x/../pdfq")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if got != "/tmp/pdfq" {
		t.Fatalf("expected cleaned path, got %q", got)
	}
}
