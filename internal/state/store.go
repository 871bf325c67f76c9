package state

import (
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/tasbih/internal/prefs"
)

// Persisted keys. These are part of the on-disk format.
const (
	KeyCounter   = "counter"
	KeyDarkMode  = "dark_mode"
	KeyVibration = "vibration"
	KeyWakelock  = "wakelock"
)

// DefaultPulse is the haptic pulse length requested on each increment.
const DefaultPulse = 20 * time.Millisecond

// AppState is the counter and its user settings.
type AppState struct {
	Count            int
	DarkMode         bool
	VibrationEnabled bool
	WakelockEnabled  bool
}

// Defaults returns the state of a fresh install.
func Defaults() AppState {
	return AppState{VibrationEnabled: true}
}

// Snapshot is AppState plus persistence health, for display.
type Snapshot struct {
	AppState

	FlushedCount        int       // Count as of the last successful flush or load
	LastError           error     // most recent storage error, nil after a successful write
	LastErrorAt         time.Time // zero when no error has occurred
	ConsecutiveFailures int       // storage failures since the last successful write
}

// Dirty reports whether Count differs from what is on disk.
func (s Snapshot) Dirty() bool {
	return s.Count != s.FlushedCount
}

// IsDegraded returns true when the most recent write failed, meaning the
// session is running on in-memory state only.
func (s Snapshot) IsDegraded() bool {
	return s.ConsecutiveFailures > 0
}

// Haptic receives fire-and-forget feedback requests.
type Haptic interface {
	Pulse(d time.Duration)
}

// Listener is called after every mutation with what changed and the new state.
type Listener func(Change, AppState)

// Options configure a Store.
type Options struct {
	Haptic Haptic
	Pulse  time.Duration // zero uses DefaultPulse
	Logger *zap.Logger
}

// Store owns AppState and decides when each field reaches durable storage.
// Settings are written on every change; Count is written only by FlushCounter.
type Store struct {
	mu        sync.Mutex
	backend   prefs.Backend
	haptic    Haptic
	pulse     time.Duration
	logger    *zap.Logger
	state     AppState
	flushed   int
	lastErr   error
	lastErrAt time.Time
	failures  int
	listeners []Listener
}

// Load builds a Store from backend. Missing keys and read errors fall back to
// the field's default; Load never fails. A nil backend yields an in-memory one.
func Load(backend prefs.Backend, opts Options) *Store {
	if backend == nil {
		backend = prefs.NewMemory()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pulse := opts.Pulse
	if pulse <= 0 {
		pulse = DefaultPulse
	}

	s := &Store{
		backend: backend,
		haptic:  opts.Haptic,
		pulse:   pulse,
		logger:  logger,
	}

	def := Defaults()
	s.state = AppState{
		Count:            s.readInt(KeyCounter, def.Count),
		DarkMode:         s.readBool(KeyDarkMode, def.DarkMode),
		VibrationEnabled: s.readBool(KeyVibration, def.VibrationEnabled),
		WakelockEnabled:  s.readBool(KeyWakelock, def.WakelockEnabled),
	}
	if s.state.Count < 0 {
		logger.Warn("negative persisted counter, using default", zap.Int("counter", s.state.Count))
		s.state.Count = def.Count
	}
	s.flushed = s.state.Count

	logger.Info("state loaded",
		zap.Int("counter", s.state.Count),
		zap.Bool("dark_mode", s.state.DarkMode),
		zap.Bool("vibration", s.state.VibrationEnabled),
		zap.Bool("wakelock", s.state.WakelockEnabled),
	)
	return s
}

// OnChange registers fn to run after each mutation.
func (s *Store) OnChange(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// State returns a copy of the current AppState.
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of the current state and persistence health.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		AppState:            s.state,
		FlushedCount:        s.flushed,
		LastErrorAt:         s.lastErrAt,
		ConsecutiveFailures: s.failures,
	}
	if s.lastErr != nil {
		snap.LastError = fmt.Errorf("%w", s.lastErr)
	}
	return snap
}

// Increment adds one to the counter and returns the new value. The counter is
// not persisted. A haptic pulse is requested when vibration is enabled. The
// counter saturates at math.MaxInt.
func (s *Store) Increment() int {
	s.mu.Lock()
	if s.state.Count < math.MaxInt {
		s.state.Count++
	}
	next := s.state
	pulse := next.VibrationEnabled && s.haptic != nil
	s.mu.Unlock()

	if pulse {
		s.haptic.Pulse(s.pulse)
	}
	s.notify(ChangeCount, next)
	return next.Count
}

// Reset sets the counter to zero without persisting it.
func (s *Store) Reset() int {
	s.mu.Lock()
	s.state.Count = 0
	next := s.state
	s.mu.Unlock()

	s.notify(ChangeCount, next)
	return 0
}

// ToggleTheme flips dark mode and persists it before returning the new value.
func (s *Store) ToggleTheme() bool {
	return s.toggle(ChangeTheme)
}

// ToggleVibration flips haptic feedback and persists it.
func (s *Store) ToggleVibration() bool {
	return s.toggle(ChangeVibration)
}

// ToggleWakelock flips keep-awake and persists it.
func (s *Store) ToggleWakelock() bool {
	return s.toggle(ChangeWakelock)
}

// FlushCounter writes the current counter. Call it whenever the app is about to
// lose the foreground; anything counted after the last flush is lost on a crash.
func (s *Store) FlushCounter() {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.state.Count
	if s.write(KeyCounter, func(b prefs.Backend) error { return b.SetInt(KeyCounter, count) }) {
		s.flushed = count
		s.logger.Debug("counter flushed", zap.Int("counter", count))
	}
}

// SyncSettings re-reads the three settings from storage and adopts any that
// changed elsewhere. Nothing is written and Count is left alone. The returned
// Change is empty when nothing differed or storage could not be read.
func (s *Store) SyncSettings() Change {
	s.mu.Lock()
	var changed Change
	cur := s.state
	if v, ok := s.peekBool(KeyDarkMode); ok && v != cur.DarkMode {
		s.state.DarkMode = v
		changed |= ChangeTheme
	}
	if v, ok := s.peekBool(KeyVibration); ok && v != cur.VibrationEnabled {
		s.state.VibrationEnabled = v
		changed |= ChangeVibration
	}
	if v, ok := s.peekBool(KeyWakelock); ok && v != cur.WakelockEnabled {
		s.state.WakelockEnabled = v
		changed |= ChangeWakelock
	}
	next := s.state
	s.mu.Unlock()

	if changed != 0 {
		s.logger.Info("settings changed on disk", zap.Stringer("change", changed))
		s.notify(changed, next)
	}
	return changed
}

func (s *Store) toggle(field Change) bool {
	s.mu.Lock()
	var key string
	var value bool
	switch field {
	case ChangeTheme:
		s.state.DarkMode = !s.state.DarkMode
		key, value = KeyDarkMode, s.state.DarkMode
	case ChangeVibration:
		s.state.VibrationEnabled = !s.state.VibrationEnabled
		key, value = KeyVibration, s.state.VibrationEnabled
	case ChangeWakelock:
		s.state.WakelockEnabled = !s.state.WakelockEnabled
		key, value = KeyWakelock, s.state.WakelockEnabled
	default:
		s.mu.Unlock()
		panic(fmt.Sprintf("state: toggle of non-setting change %v", field))
	}
	s.write(key, func(b prefs.Backend) error { return b.SetBool(key, value) })
	next := s.state
	s.mu.Unlock()

	s.logger.Info("setting toggled", zap.String("key", key), zap.Bool("value", value))
	s.notify(field, next)
	return value
}

// write runs fn against the backend and records the outcome. Failures are
// logged and swallowed. Must be called with s.mu held.
func (s *Store) write(key string, fn func(prefs.Backend) error) bool {
	if err := fn(s.backend); err != nil {
		s.lastErr = err
		s.lastErrAt = time.Now()
		s.failures++
		s.logger.Warn("pref write failed",
			zap.String("key", key),
			zap.Int("consecutive_failures", s.failures),
			zap.Error(err),
		)
		return false
	}
	s.lastErr = nil
	s.failures = 0
	return true
}

func (s *Store) readInt(key string, def int) int {
	v, ok, err := s.backend.Int(key)
	if err != nil {
		s.logger.Warn("pref read failed, using default", zap.String("key", key), zap.Error(err))
		return def
	}
	if !ok {
		return def
	}
	return v
}

func (s *Store) readBool(key string, def bool) bool {
	v, ok := s.peekBool(key)
	if !ok {
		return def
	}
	return v
}

func (s *Store) peekBool(key string) (bool, bool) {
	v, ok, err := s.backend.Bool(key)
	if err != nil {
		s.logger.Warn("pref read failed", zap.String("key", key), zap.Error(err))
		return false, false
	}
	return v, ok
}

func (s *Store) notify(change Change, next AppState) {
	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(change, next)
	}
}
