package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pdfquery/internal/session"

	_ "github.com/mattn/go-sqlite3"
)

const SessionKey = "PDFQuery_session_id"

var ErrEmptyToken = errors.New("refusing to persist empty session token")

// SessionStore keeps the single active session token in a local SQLite
// database so it survives restarts.
type SessionStore struct {
	dbPath string
	db     *sql.DB
	mu     sync.Mutex
}

func Open(dbPath string) (*SessionStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	s := &SessionStore{dbPath: dbPath, db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SessionStore) Close() error {
	return s.db.Close()
}

func (s *SessionStore) initSchema() error {
	stmts := []string{
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS client_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Read returns the persisted token, or "" when none is stored.
func (s *SessionStore) Read(ctx context.Context) (session.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM client_state WHERE key = ?`, SessionKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("read session token: %w", err)
	}
	return session.Token(strings.TrimSpace(value)), nil
}

func (s *SessionStore) Write(ctx context.Context, token session.Token) error {
	if !token.Present() {
		return ErrEmptyToken
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO client_state(key, value, updated_at)
		VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`, SessionKey, string(token), time.Now().Unix()); err != nil {
		return fmt.Errorf("write session token: %w", err)
	}
	return nil
}

// Clear removes the token. Clearing an empty store is not an error.
func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?`, SessionKey); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// Exists treats an unreadable store the same as an empty one.
func (s *SessionStore) Exists(ctx context.Context) bool {
	tok, err := s.Read(ctx)
	return err == nil && tok.Present()
}
