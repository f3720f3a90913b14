package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultGlamourStyle   = "dark"
	DefaultAPIURL         = "http://localhost:5000"
	DefaultSettleDelay    = 2 * time.Second
	DefaultRequestTimeout = 120 * time.Second
)

type AppConfig struct {
	APIURL         string
	DataDir        string
	DBPath         string
	LogPath        string
	ExportDir      string
	SettleDelay    time.Duration
	RequestTimeout time.Duration
	NewSession     bool
	Check          bool
	Debug          bool
}

// Parse loads .env from the working directory if present, then reads flags
// whose defaults come from the environment.
func Parse() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}
	return ParseArgs(flag.CommandLine, os.Args[1:])
}

func ParseArgs(fset *flag.FlagSet, args []string) (AppConfig, error) {
	var cfg AppConfig

	dataDir, err := DetectDataDir(os.Getenv("PDFQUERY_HOME"))
	if err != nil {
		return cfg, err
	}
	settle, err := envDuration("PDFQUERY_SETTLE", DefaultSettleDelay)
	if err != nil {
		return cfg, err
	}
	timeout, err := envDuration("PDFQUERY_TIMEOUT", DefaultRequestTimeout)
	if err != nil {
		return cfg, err
	}

	fset.StringVar(&cfg.APIURL, "api-url", getEnv("PDFQUERY_API_URL", DefaultAPIURL), "backend base URL")
	fset.StringVar(&cfg.DataDir, "data-dir", dataDir, "directory for session state and logs")
	fset.StringVar(&cfg.DBPath, "db-path", getEnv("PDFQUERY_DB_PATH", ""), "path to SQLite session store")
	fset.StringVar(&cfg.LogPath, "log-path", getEnv("PDFQUERY_LOG_PATH", ""), "path to log file")
	fset.StringVar(&cfg.ExportDir, "export-dir", getEnv("PDFQUERY_EXPORT_DIR", ""), "markdown export directory (default ./exports)")
	fset.DurationVar(&cfg.SettleDelay, "settle", settle, "wait after upload before asking is enabled")
	fset.DurationVar(&cfg.RequestTimeout, "timeout", timeout, "per-request timeout")
	fset.BoolVar(&cfg.NewSession, "new-session", false, "forget the saved session on startup")
	fset.BoolVar(&cfg.Check, "check", false, "probe backend health and exit")
	fset.BoolVar(&cfg.Debug, "debug", getEnvBool("PDFQUERY_DEBUG"), "debug logging")
	if err := fset.Parse(args); err != nil {
		return cfg, err
	}

	if err := cfg.finish(); err != nil {
		return cfg, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return cfg, fmt.Errorf("create db dir: %w", err)
	}
	return cfg, nil
}

func (c *AppConfig) finish() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid -api-url %q: want http(s)://host[:port]", c.APIURL)
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("invalid -settle %s: must not be negative", c.SettleDelay)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid -timeout %s: must be positive", c.RequestTimeout)
	}
	c.DataDir = filepath.Clean(c.DataDir)
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "session.sqlite")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(c.DataDir, "pdfquery.log")
	}
	return nil
}

func DetectDataDir(explicit string) (string, error) {
	if explicit != "" {
		return filepath.Clean(explicit), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "pdfquery"), nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvBool(key string) bool {
	v, err := strconv.ParseBool(getEnv(key, "false"))
	return err == nil && v
}

func envDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
