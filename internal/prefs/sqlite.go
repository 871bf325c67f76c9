package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS prefs (
	namespace TEXT NOT NULL,
	key TEXT NOT NULL,
	value INTEGER NOT NULL,
	PRIMARY KEY (namespace, key)
)`

// SQLite stores preferences in a single table keyed by namespace and key.
// Booleans are stored as 0 or 1.
type SQLite struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	sqlDB, err := sql.Open("sqlite", cleanPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create prefs table: %w", err)
	}
	return &SQLite{sqlDB: sqlDB}, nil
}

// Int implements Backend.
func (s *SQLite) Int(key string) (int, bool, error) {
	value, ok, err := s.get(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	return int(value), true, nil
}

// Bool implements Backend.
func (s *SQLite) Bool(key string) (bool, bool, error) {
	value, ok, err := s.get(key)
	if err != nil || !ok {
		return false, ok, err
	}
	return value != 0, true, nil
}

// SetInt implements Backend.
func (s *SQLite) SetInt(key string, value int) error {
	return s.put(key, int64(value))
}

// SetBool implements Backend.
func (s *SQLite) SetBool(key string, value bool) error {
	var v int64
	if value {
		v = 1
	}
	return s.put(key, v)
}

// Close closes the SQLite handle.
func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLite) get(key string) (int64, bool, error) {
	if s == nil || s.sqlDB == nil {
		return 0, false, fmt.Errorf("storage is not configured")
	}
	var value int64
	err := s.sqlDB.QueryRowContext(
		context.Background(),
		`SELECT value FROM prefs WHERE namespace = ? AND key = ?`,
		Namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get pref %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) put(key string, value int64) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	_, err := s.sqlDB.ExecContext(
		context.Background(),
		`INSERT INTO prefs (namespace, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`,
		Namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("put pref %q: %w", key, err)
	}
	return nil
}
