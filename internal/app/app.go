package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/tasbih/internal/config"
	"github.com/five82/tasbih/internal/haptic"
	"github.com/five82/tasbih/internal/keepawake"
	"github.com/five82/tasbih/internal/logging"
	"github.com/five82/tasbih/internal/prefs"
	"github.com/five82/tasbih/internal/state"
	"github.com/five82/tasbih/internal/ui"
)

// Options configure the tasbih application. Empty fields fall back to the
// config file, then to defaults.
type Options struct {
	ConfigPath string
	Storage    string // toml, sqlite or memory
	DataDir    string
	PollEvery  int // seconds between settings polls for sqlite; zero uses default
}

// Run boots the counter TUI until the user quits or the context is cancelled.
// The counter is flushed on the way out whatever ends the session.
func Run(ctx context.Context, opts Options) error {
	sess, err := open(opts)
	if err != nil {
		return err
	}
	defer sess.close()

	pulser, err := haptic.New(sess.cfg.Haptic, nil)
	if err != nil {
		return fmt.Errorf("init haptic: %w", err)
	}
	sess.load(state.Options{Haptic: pulser, Pulse: sess.cfg.Pulse()})

	inhibitor := keepawake.New(sess.cfg.KeepAwakeCommand, sess.logger)
	defer func() {
		if err := inhibitor.Close(); err != nil {
			sess.logger.Warn("release keep-awake", zap.Error(err))
		}
	}()
	bindWakelock(sess.store, inhibitor, sess.logger)

	changes, stop := sess.watchSettings(ctx, pollInterval(opts.PollEvery))
	defer stop()

	sess.logger.Info("session started",
		zap.String("storage", sess.cfg.Storage),
		zap.String("location", sess.location),
	)

	runErr := ui.Run(ui.Options{
		Context: ctx,
		Store:   sess.store,
		Changes: changes,
		Logger:  sess.logger,
	})

	// Signals end the program without a quit key, so flush here too.
	sess.store.FlushCounter()
	snap := sess.store.Snapshot()
	sess.logger.Info("session ended",
		zap.Int("counter", snap.Count),
		zap.Bool("degraded", snap.IsDegraded()),
	)

	return uiExit(ctx, runErr)
}

// uiExit maps the UI's exit error to Run's result. SIGINT and SIGTERM are
// normal ways to leave, whichever of bubbletea or the context saw them first.
func uiExit(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tea.ErrInterrupted):
		return nil
	case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		return nil
	default:
		return fmt.Errorf("run ui: %w", err)
	}
}

// bindWakelock applies the current wakelock setting and keeps the inhibitor in
// step with later changes, including ones picked up by SyncSettings.
func bindWakelock(store *state.Store, inhibitor *keepawake.Inhibitor, logger *zap.Logger) {
	applyWakelock(inhibitor, store.State().WakelockEnabled, logger)
	store.OnChange(func(change state.Change, next state.AppState) {
		if change.Has(state.ChangeWakelock) {
			applyWakelock(inhibitor, next.WakelockEnabled, logger)
		}
	})
}

func applyWakelock(inhibitor *keepawake.Inhibitor, enabled bool, logger *zap.Logger) {
	if err := inhibitor.Apply(enabled); err != nil {
		logger.Warn("keep-awake unavailable", zap.Bool("enabled", enabled), zap.Error(err))
		return
	}
	logger.Debug("keep-awake applied", zap.Bool("enabled", enabled))
}

func pollInterval(seconds int) time.Duration {
	if seconds <= 0 {
		return defaultPollInterval
	}
	return time.Duration(seconds) * time.Second
}

// session holds what every entry point needs: config, logger and an open
// backend. The store is loaded separately so callers can choose its options.
type session struct {
	cfg      config.Config
	logger   *zap.Logger
	backend  prefs.Backend
	location string
	store    *state.Store
	openErr  error // set when the configured backend was replaced by memory
}

func open(opts Options) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Storage != "" {
		cfg.Storage = opts.Storage
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	kind := prefs.Kind(cfg.Storage)
	location, err := prefs.Location(kind, cfg.DataDir)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("resolve storage: %w", err)
	}

	backend, openErr := prefs.Open(kind, cfg.DataDir)
	if openErr != nil {
		// Counting still works; nothing survives the session.
		logger.Warn("storage unavailable, using memory",
			zap.String("storage", cfg.Storage),
			zap.String("location", location),
			zap.Error(openErr),
		)
		backend = prefs.NewMemory()
		kind = prefs.KindMemory
		location = ""
	}
	cfg.Storage = string(kind)

	return &session{
		cfg:      cfg,
		logger:   logger,
		backend:  backend,
		location: location,
		openErr:  openErr,
	}, nil
}

func (s *session) load(opts state.Options) {
	opts.Logger = s.logger
	s.store = state.Load(s.backend, opts)
}

// watchSettings returns a channel that fires when settings may have changed
// outside this process. The memory backend has nothing to watch.
func (s *session) watchSettings(ctx context.Context, interval time.Duration) (<-chan struct{}, func()) {
	switch prefs.Kind(s.cfg.Storage) {
	case prefs.KindTOML:
		watcher, err := prefs.Watch(s.location, s.logger)
		if err != nil {
			s.logger.Warn("settings watch unavailable", zap.String("path", s.location), zap.Error(err))
			return nil, func() {}
		}
		return watcher.Changes(), func() { _ = watcher.Close() }
	case prefs.KindSQLite:
		pollCtx, cancel := context.WithCancel(ctx)
		return StartPoller(pollCtx, interval), cancel
	default:
		return nil, func() {}
	}
}

func (s *session) close() {
	if err := s.backend.Close(); err != nil {
		s.logger.Warn("close storage", zap.Error(err))
	}
	_ = s.logger.Sync()
}
