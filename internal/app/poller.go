package app

import (
	"context"
	"time"
)

const defaultPollInterval = 2 * time.Second

// StartPoller launches a background goroutine that signals on the returned
// channel at a fixed cadence. The SQLite backend has no file to watch, so
// polling is how another process's setting changes reach the UI. The channel
// is closed once ctx is done.
func StartPoller(ctx context.Context, interval time.Duration) <-chan struct{} {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ticks := make(chan struct{}, 1)
	go func() {
		defer close(ticks)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			// A pending signal already covers this tick.
			select {
			case ticks <- struct{}{}:
			default:
			}
		}
	}()
	return ticks
}
