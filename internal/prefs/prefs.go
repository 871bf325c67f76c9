package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Namespace names the preference set. It doubles as the TOML file name and the
// SQLite namespace column, so it must not change between releases.
const Namespace = "TasbihPrefs"

const (
	defaultDataDir = "~/.local/share/tasbih"
	sqliteFile     = "tasbih.db"
)

// Kind selects a storage backend.
type Kind string

const (
	KindTOML   Kind = "toml"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// ErrUnknownKind is returned by Open for an unrecognised backend kind.
var ErrUnknownKind = errors.New("unknown prefs backend")

// Backend is a durable key-value store of primitive values.
//
// The bool result of the getters reports whether the key was present. A
// missing key is not an error.
type Backend interface {
	Int(key string) (int, bool, error)
	Bool(key string) (bool, bool, error)
	SetInt(key string, value int) error
	SetBool(key string, value bool) error
	Close() error
}

// DefaultDir returns the default data directory.
func DefaultDir() string {
	return defaultDataDir
}

// Open opens the backend of the given kind rooted at dir. An empty kind selects
// the TOML backend and an empty dir selects DefaultDir.
func Open(kind Kind, dir string) (Backend, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(string(kind)))) {
	case "", KindTOML:
		resolved, err := resolveDir(dir)
		if err != nil {
			return nil, err
		}
		return OpenFile(filepath.Join(resolved, Namespace+".toml"))
	case KindSQLite:
		resolved, err := resolveDir(dir)
		if err != nil {
			return nil, err
		}
		return OpenSQLite(filepath.Join(resolved, sqliteFile))
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// FilePath returns the path the TOML backend uses under dir.
func FilePath(dir string) (string, error) {
	resolved, err := resolveDir(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolved, Namespace+".toml"), nil
}

// Location returns where a backend of kind keeps its data under dir. The memory
// backend has no location and yields "".
func Location(kind Kind, dir string) (string, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(string(kind)))) {
	case "", KindTOML:
		return FilePath(dir)
	case KindSQLite:
		resolved, err := resolveDir(dir)
		if err != nil {
			return "", err
		}
		return filepath.Join(resolved, sqliteFile), nil
	case KindMemory:
		return "", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func resolveDir(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return ExpandPath(defaultDataDir)
	}
	return ExpandPath(dir)
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
