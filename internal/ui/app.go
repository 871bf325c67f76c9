package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/tasbih/internal/state"
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Store   *state.Store
	Changes <-chan struct{} // prefs file changes; nil disables syncing
	Logger  *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx     context.Context
	store   *state.Store
	changes <-chan struct{}
	logger  *zap.Logger
	keys    keyMap
	help    help.Model

	// UI state
	theme    Theme
	styles   Styles
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	snapshot state.Snapshot

	// Transient feedback
	notice    string
	noticeSeq int
	flashing  bool
	flashSeq  int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = state.Load(nil, state.Options{Logger: logger})
	}

	m := Model{
		ctx:      ctx,
		store:    store,
		changes:  opts.Changes,
		logger:   logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		snapshot: store.Snapshot(),
	}
	m.applyTheme(m.snapshot.DarkMode)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return waitForChangeCmd(m.changes)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.BlurMsg:
		// Losing focus is the terminal's equivalent of being backgrounded.
		m.pause("focus lost")
		return m, nil

	case tea.ResumeMsg:
		m.refresh()
		return m, nil

	case prefsChangedMsg:
		changed := m.store.SyncSettings()
		if changed.Has(state.ChangeTheme) {
			m.applyTheme(m.store.State().DarkMode)
		}
		m.refresh()
		wait := waitForChangeCmd(m.changes)
		if changed.Has(state.ChangeWakelock) {
			return m, tea.Batch(wait, m.setNotice(wakelockNotice(m.snapshot.WakelockEnabled)))
		}
		return m, wait

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flashing = false
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if msg.String() == "ctrl+c" {
			m.pause("quit")
			return m, tea.Quit
		}
		// Any other key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.pause("quit")
		return m, tea.Quit

	case key.Matches(msg, m.keys.Suspend):
		m.pause("suspend")
		return m, tea.Suspend

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Tap):
		return m.tap()

	case key.Matches(msg, m.keys.Reset):
		m.store.Reset()
		m.refresh()
		return m, m.setNotice("Counter reset")

	case key.Matches(msg, m.keys.ToggleVibration):
		enabled := m.store.ToggleVibration()
		m.refresh()
		if enabled {
			return m, m.setNotice("Vibration enabled")
		}
		return m, m.setNotice("Vibration disabled")

	case key.Matches(msg, m.keys.ToggleTheme):
		dark := m.store.ToggleTheme()
		m.applyTheme(dark)
		m.refresh()
		if dark {
			return m, m.setNotice("Dark mode enabled")
		}
		return m, m.setNotice("Light mode enabled")
	}

	return m, nil
}

// handleMouse treats a left click anywhere as a tap.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	return m.tap()
}

func (m Model) tap() (tea.Model, tea.Cmd) {
	m.store.Increment()
	m.refresh()
	if !m.snapshot.VibrationEnabled {
		return m, nil
	}
	m.flashSeq++
	m.flashing = true
	return m, flashCmd(m.flashSeq)
}

// pause flushes the counter ahead of losing the foreground.
func (m *Model) pause(reason string) {
	m.store.FlushCounter()
	m.refresh()
	m.logger.Debug("paused", zap.String("reason", reason), zap.Int("counter", m.snapshot.Count))
}

func (m *Model) refresh() {
	m.snapshot = m.store.Snapshot()
}

// applyTheme rebuilds every theme-dependent style.
func (m *Model) applyTheme(dark bool) {
	m.theme = ThemeFor(dark)
	m.styles = m.theme.Styles()
	m.help.Styles.ShortKey = m.styles.Key.Background(m.styles.Bar.GetBackground())
	m.help.Styles.ShortDesc = m.styles.Bar.UnsetPadding()
	m.help.Styles.ShortSeparator = m.styles.Faint.Background(m.styles.Bar.GetBackground())
}

func wakelockNotice(enabled bool) string {
	if enabled {
		return "Screen will stay on"
	}
	return "Screen can turn off"
}

func (m *Model) setNotice(text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	return noticeCmd(m.noticeSeq)
}

// Messages

type prefsChangedMsg struct{}

type noticeExpiredMsg struct{ seq int }

type flashDoneMsg struct{ seq int }

// Commands

func waitForChangeCmd(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return prefsChangedMsg{}
	}
}

func noticeCmd(seq int) tea.Cmd {
	return tea.Tick(NoticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func flashCmd(seq int) tea.Cmd {
	return tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	return err
}
