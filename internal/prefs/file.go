package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// File stores preferences as top-level keys of a TOML document.
//
// Every read goes to disk so that edits made by another process (the CLI, a
// text editor) are visible. Writes merge into the current document and replace
// the file atomically.
type File struct {
	mu   sync.Mutex
	path string
}

// OpenFile returns a TOML backend for path, creating its directory. The file
// itself is created on first write.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	return &File{path: path}, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Int implements Backend.
func (f *File) Int(key string) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return 0, false, err
	}
	raw, ok := values[key]
	if !ok {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int64:
		return int(v), true, nil
	case float64:
		return int(v), true, nil
	default:
		return 0, false, fmt.Errorf("prefs key %q: want integer, got %T", key, raw)
	}
}

// Bool implements Backend.
func (f *File) Bool(key string) (bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return false, false, err
	}
	raw, ok := values[key]
	if !ok {
		return false, false, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, false, fmt.Errorf("prefs key %q: want bool, got %T", key, raw)
	}
	return v, true, nil
}

// SetInt implements Backend.
func (f *File) SetInt(key string, value int) error {
	return f.set(key, int64(value))
}

// SetBool implements Backend.
func (f *File) SetBool(key string, value bool) error {
	return f.set(key, value)
}

// Close implements Backend.
func (f *File) Close() error {
	return nil
}

func (f *File) set(key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		// An unreadable document is replaced rather than blocking every write.
		values = map[string]any{}
	}
	values[key] = value

	bytes, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	return writeAtomic(f.path, bytes)
}

func (f *File) read() (map[string]any, error) {
	bytes, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read prefs: %w", err)
	}
	values := map[string]any{}
	if err := toml.Unmarshal(bytes, &values); err != nil {
		return nil, fmt.Errorf("parse prefs: %w", err)
	}
	return values, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close prefs: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}
