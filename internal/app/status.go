package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/tasbih/internal/config"
	"github.com/five82/tasbih/internal/state"
)

// Status describes the persisted state as another process would load it.
type Status struct {
	State    state.AppState
	Storage  string
	Location string // empty for the memory backend
	LogFile  string // empty when file logging is off
}

// ReadStatus loads the persisted state without starting the UI.
func ReadStatus(opts Options) (Status, error) {
	sess, err := open(opts)
	if err != nil {
		return Status{}, err
	}
	defer sess.close()

	sess.load(state.Options{})
	return Status{
		State:    sess.store.State(),
		Storage:  sess.cfg.Storage,
		Location: sess.location,
		LogFile:  sess.cfg.LogFile,
	}, nil
}

// ToggleWakelock flips the persisted wakelock setting and returns the new
// value. A running session picks the change up through its settings watch.
func ToggleWakelock(opts Options) (bool, error) {
	sess, err := open(opts)
	if err != nil {
		return false, err
	}
	defer sess.close()
	if sess.openErr != nil {
		return false, fmt.Errorf("save wakelock: storage unavailable: %w", sess.openErr)
	}

	sess.load(state.Options{})
	enabled := sess.store.ToggleWakelock()
	if snap := sess.store.Snapshot(); snap.LastError != nil {
		return enabled, fmt.Errorf("save wakelock: %w", snap.LastError)
	}
	sess.logger.Info("wakelock toggled from command line", zap.Bool("enabled", enabled))
	return enabled, nil
}

// LogFile returns the configured log file path, or "" when file logging is off.
func LogFile(opts Options) (string, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return cfg.LogFile, nil
}
