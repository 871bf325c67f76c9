package prefs

import "sync"

// Memory is a process-local Backend. It backs tests and stands in for durable
// storage when the configured backend cannot be opened.
type Memory struct {
	mu    sync.Mutex
	ints  map[string]int
	bools map[string]bool
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		ints:  make(map[string]int),
		bools: make(map[string]bool),
	}
}

func (m *Memory) Int(key string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.ints[key]
	return v, ok, nil
}

func (m *Memory) Bool(key string) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.bools[key]
	return v, ok, nil
}

func (m *Memory) SetInt(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ints[key] = value
	return nil
}

func (m *Memory) SetBool(key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bools[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }
