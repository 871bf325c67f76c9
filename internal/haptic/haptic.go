// Package haptic provides the feedback pulse sent on each increment. A terminal
// has no vibration motor, so the closest stand-in is the bell.
package haptic

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const bel = "\a"

// Bell rings the terminal bell. The duration is ignored: terminals decide how
// long a bell lasts.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell returns a Bell writing to w, or to stderr when w is nil. Stderr keeps
// the byte out of the renderer's stdout stream.
func NewBell(w io.Writer) *Bell {
	if w == nil {
		w = os.Stderr
	}
	return &Bell{w: w}
}

// Pulse writes a single BEL. Write errors are ignored.
func (b *Bell) Pulse(time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.w, bel)
}

// Nop discards pulses.
type Nop struct{}

func (Nop) Pulse(time.Duration) {}

// Pulser is the interface satisfied by Bell and Nop.
type Pulser interface {
	Pulse(d time.Duration)
}

// New returns the pulser for a config name: "bell" or "none".
func New(name string, w io.Writer) (Pulser, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bell":
		return NewBell(w), nil
	case "none", "off":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown haptic %q", name)
	}
}
