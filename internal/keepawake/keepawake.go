// Package keepawake stops the machine from idling while the wakelock setting
// is on, by holding an inhibitor process (systemd-inhibit by default) for as
// long as it is wanted.
package keepawake

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"

	"go.uber.org/zap"
)

// Inhibitor owns at most one inhibitor process.
type Inhibitor struct {
	mu      sync.Mutex
	command []string
	logger  *zap.Logger

	cmd  *exec.Cmd
	done chan struct{}
}

// New returns an Inhibitor that runs command while active.
func New(command []string, logger *zap.Logger) *Inhibitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inhibitor{
		command: append([]string(nil), command...),
		logger:  logger,
	}
}

// Apply starts or stops the inhibitor to match enabled. It is idempotent.
func (i *Inhibitor) Apply(enabled bool) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if enabled {
		return i.acquire()
	}
	i.release()
	return nil
}

// Active reports whether the inhibitor process is running.
func (i *Inhibitor) Active() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.running()
}

// Close stops the inhibitor.
func (i *Inhibitor) Close() error {
	return i.Apply(false)
}

func (i *Inhibitor) running() bool {
	if i.done == nil {
		return false
	}
	select {
	case <-i.done:
		return false
	default:
		return true
	}
}

func (i *Inhibitor) acquire() error {
	if i.running() {
		return nil
	}
	if len(i.command) == 0 {
		return errors.New("keep-awake command is empty")
	}
	path, err := exec.LookPath(i.command[0])
	if err != nil {
		return fmt.Errorf("find %s: %w", i.command[0], err)
	}

	cmd := exec.Command(path, i.command[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", i.command[0], err)
	}

	done := make(chan struct{})
	go func() {
		err := cmd.Wait()
		i.logger.Debug("keep-awake process exited", zap.Error(err))
		close(done)
	}()

	i.cmd = cmd
	i.done = done
	i.logger.Info("keep-awake acquired", zap.Int("pid", cmd.Process.Pid))
	return nil
}

func (i *Inhibitor) release() {
	if i.cmd == nil {
		return
	}
	if i.running() {
		_ = i.cmd.Process.Kill()
	}
	<-i.done
	i.logger.Info("keep-awake released")
	i.cmd = nil
	i.done = nil
}
