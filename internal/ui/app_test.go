package ui

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tasbih/internal/prefs"
	"github.com/five82/tasbih/internal/state"
)

type countingHaptic struct {
	mu sync.Mutex
	n  int
}

func (h *countingHaptic) Pulse(time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.n++
}

func newTestModel(t *testing.T) (Model, *prefs.Memory, *countingHaptic) {
	t.Helper()
	backend := prefs.NewMemory()
	h := &countingHaptic{}
	store := state.Load(backend, state.Options{Haptic: h})
	m := New(Options{Store: store})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model), backend, h
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestView_LoadingBeforeSize(t *testing.T) {
	m := New(Options{Store: state.Load(prefs.NewMemory(), state.Options{})})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestTap_IncrementsAndFlashes(t *testing.T) {
	m, _, h := newTestModel(t)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.snapshot.Count != 2 {
		t.Fatalf("Count = %d, want 2", m.snapshot.Count)
	}
	if !m.flashing || cmd == nil {
		t.Fatalf("flashing = %v cmd = %v, want flash with timer", m.flashing, cmd)
	}
	if h.n != 2 {
		t.Fatalf("haptic pulses = %d, want 2", h.n)
	}

	m, _ = send(t, m, flashDoneMsg{seq: m.flashSeq})
	if m.flashing {
		t.Fatalf("flashing still set after flashDoneMsg")
	}
}

func TestTap_LeftClickCounts(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = send(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(t, m, tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m, _ = send(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight})

	if m.snapshot.Count != 1 {
		t.Fatalf("Count = %d, want 1 (press of left button only)", m.snapshot.Count)
	}
}

func TestTap_NoFlashWhenVibrationDisabled(t *testing.T) {
	m, _, h := newTestModel(t)
	m, _ = send(t, m, runeKey('v'))

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.flashing || cmd != nil {
		t.Fatalf("flashing = %v cmd = %v, want no flash", m.flashing, cmd)
	}
	if h.n != 0 {
		t.Fatalf("haptic pulses = %d, want 0", h.n)
	}
}

func TestReset_ShowsNoticeThatExpires(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := send(t, m, runeKey('r'))
	if m.snapshot.Count != 0 {
		t.Fatalf("Count = %d, want 0", m.snapshot.Count)
	}
	if m.notice != "Counter reset" || cmd == nil {
		t.Fatalf("notice = %q cmd = %v, want Counter reset with timer", m.notice, cmd)
	}
	if !strings.Contains(m.View(), "Counter reset") {
		t.Fatalf("View() does not show the notice")
	}

	// A stale expiry does not clear a newer notice.
	m, _ = send(t, m, runeKey('R'))
	m, _ = send(t, m, noticeExpiredMsg{seq: m.noticeSeq - 1})
	if m.notice != "Vibration disabled" {
		t.Fatalf("notice = %q, want Vibration disabled", m.notice)
	}
	m, _ = send(t, m, noticeExpiredMsg{seq: m.noticeSeq})
	if m.notice != "" {
		t.Fatalf("notice = %q, want cleared", m.notice)
	}
}

func TestToggleVibration_Notices(t *testing.T) {
	m, backend, _ := newTestModel(t)

	m, _ = send(t, m, runeKey('R'))
	if m.notice != "Vibration disabled" {
		t.Fatalf("notice = %q, want Vibration disabled", m.notice)
	}
	if v, ok, _ := backend.Bool(state.KeyVibration); !ok || v {
		t.Fatalf("persisted vibration = %v (present %v), want false", v, ok)
	}

	m, _ = send(t, m, runeKey('v'))
	if m.notice != "Vibration enabled" {
		t.Fatalf("notice = %q, want Vibration enabled", m.notice)
	}
}

func TestToggleTheme_RebuildsThemeAndPersists(t *testing.T) {
	m, backend, _ := newTestModel(t)
	if m.theme.Dark {
		t.Fatalf("initial theme is dark, want light")
	}

	m, _ = send(t, m, runeKey('t'))
	if !m.theme.Dark || m.theme.Name != "Dark" {
		t.Fatalf("theme = %q, want Dark", m.theme.Name)
	}
	if m.notice != "Dark mode enabled" {
		t.Fatalf("notice = %q, want Dark mode enabled", m.notice)
	}
	if v, _, _ := backend.Bool(state.KeyDarkMode); !v {
		t.Fatalf("dark_mode not persisted")
	}

	m, _ = send(t, m, runeKey('t'))
	if m.theme.Dark || m.notice != "Light mode enabled" {
		t.Fatalf("theme = %q notice = %q, want Light", m.theme.Name, m.notice)
	}
}

func TestNew_UsesPersistedTheme(t *testing.T) {
	backend := prefs.NewMemory()
	_ = backend.SetBool(state.KeyDarkMode, true)

	m := New(Options{Store: state.Load(backend, state.Options{})})
	if !m.theme.Dark {
		t.Fatalf("theme = %q, want Dark from prefs", m.theme.Name)
	}
}

func TestBlur_FlushesCounter(t *testing.T) {
	m, backend, _ := newTestModel(t)
	for i := 0; i < 3; i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	if _, ok, _ := backend.Int(state.KeyCounter); ok {
		t.Fatalf("counter persisted before pause")
	}

	m, _ = send(t, m, tea.BlurMsg{})

	n, ok, _ := backend.Int(state.KeyCounter)
	if !ok || n != 3 {
		t.Fatalf("persisted counter = %d (present %v), want 3", n, ok)
	}
	if m.snapshot.Dirty() {
		t.Fatalf("snapshot still dirty after flush")
	}
}

func TestQuit_FlushesAndQuits(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		t.Run(msg.String(), func(t *testing.T) {
			m, backend, _ := newTestModel(t)
			m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

			_, cmd := send(t, m, msg)
			if cmd == nil {
				t.Fatalf("no command returned for %q", msg.String())
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Fatalf("command for %q did not quit", msg.String())
			}
			if n, _, _ := backend.Int(state.KeyCounter); n != 1 {
				t.Fatalf("persisted counter = %d, want 1", n)
			}
		})
	}
}

func TestSuspend_Flushes(t *testing.T) {
	m, backend, _ := newTestModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if cmd == nil {
		t.Fatalf("no suspend command")
	}
	if n, _, _ := backend.Int(state.KeyCounter); n != 1 {
		t.Fatalf("persisted counter = %d, want 1", n)
	}
}

func TestHelp_OpensAndAnyKeyCloses(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = send(t, m, runeKey('?'))
	if !m.showHelp {
		t.Fatalf("help not shown")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help view missing title")
	}

	// The closing key is swallowed, not counted.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.showHelp || m.snapshot.Count != 0 {
		t.Fatalf("showHelp = %v Count = %d, want closed and 0", m.showHelp, m.snapshot.Count)
	}
}

func TestPrefsChanged_SyncsSettings(t *testing.T) {
	backend := prefs.NewMemory()
	store := state.Load(backend, state.Options{})
	changes := make(chan struct{}, 1)
	m := New(Options{Store: store, Changes: changes})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	if m.Init() == nil {
		t.Fatalf("Init returned nil with a changes channel")
	}

	_ = backend.SetBool(state.KeyDarkMode, true)
	_ = backend.SetBool(state.KeyWakelock, true)

	m, cmd := send(t, m, prefsChangedMsg{})
	if !m.theme.Dark {
		t.Fatalf("theme not switched after external change")
	}
	if !m.snapshot.WakelockEnabled {
		t.Fatalf("wakelock not adopted after external change")
	}
	if !strings.Contains(m.View(), "awake") {
		t.Fatalf("View() missing awake indicator")
	}
	if cmd == nil {
		t.Fatalf("watcher command not re-armed")
	}
	if m.notice != "Screen will stay on" {
		t.Fatalf("notice = %q, want Screen will stay on", m.notice)
	}

	_ = backend.SetBool(state.KeyWakelock, false)
	m, _ = send(t, m, prefsChangedMsg{})
	if m.notice != "Screen can turn off" {
		t.Fatalf("notice = %q, want Screen can turn off", m.notice)
	}
}

func TestPrefsChanged_ThemeOnlyKeepsNotice(t *testing.T) {
	backend := prefs.NewMemory()
	changes := make(chan struct{}, 1)
	m := New(Options{Store: state.Load(backend, state.Options{}), Changes: changes})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	_ = backend.SetBool(state.KeyDarkMode, true)
	m, cmd := send(t, m, prefsChangedMsg{})
	if m.notice != "" {
		t.Fatalf("notice = %q, want none for a theme change", m.notice)
	}

	changes <- struct{}{}
	if _, ok := cmd().(prefsChangedMsg); !ok {
		t.Fatalf("re-armed command did not deliver prefsChangedMsg")
	}
}

func TestInit_NoChangesChannel(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.Init() != nil {
		t.Fatalf("Init returned a command without a changes channel")
	}
}

func TestView_ShowsCountAndIndicators(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	for _, want := range []string{"TASBIH", "vibration on", "tap to count", "█"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if strings.Contains(view, "awake") {
		t.Errorf("View() shows awake indicator with wakelock off")
	}
}
