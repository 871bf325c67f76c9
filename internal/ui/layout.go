package ui

import "time"

// Timing constants.
const (
	// NoticeDuration is how long a confirmation notice stays in the footer.
	NoticeDuration = 2 * time.Second

	// FlashDuration is how long the counter is highlighted after a haptic pulse.
	FlashDuration = 120 * time.Millisecond
)

// Layout constants.
const (
	// HelpModalWidth is the width of the help overlay.
	HelpModalWidth = 40

	// chromeHeight is the number of rows used by the header and footer bars.
	chromeHeight = 2
)
