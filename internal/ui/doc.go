// Package ui provides the Bubble Tea terminal interface for tasbih.
//
// # Architecture Overview
//
// The UI is a thin shell over state.Store. Every input becomes one Store call,
// after which the model copies Store.Snapshot and re-renders. The model keeps
// no counter or settings of its own.
//
// # Package Structure
//
//   - app.go: Model, event handling, commands, and the Run function
//   - keys.go: key bindings (bubbles/key) and footer help
//   - counter.go: header, centered counter, footer
//   - digits.go: block-digit font for the counter
//   - help.go: help overlay
//   - theme.go: light and dark palettes
//   - style_helpers.go: background-safe lipgloss helpers
//   - layout.go: timing and layout constants
//
// # Events
//
//	Input                         Store call        Notice
//	space, enter, left click      Increment         (counter flashes on pulse)
//	r                             Reset             "Counter reset"
//	R, v                          ToggleVibration   "Vibration enabled/disabled"
//	t                             ToggleTheme       "Dark/Light mode enabled"
//	focus lost, ctrl+z, q, esc    FlushCounter      -
//
// R stands in for the long press a touch screen would use. A theme toggle
// rebuilds every style from the new palette before the next frame.
//
// # Lifecycle
//
// The program runs with focus reporting on, so tea.BlurMsg arrives when the
// terminal loses focus and the counter is flushed. Quitting and suspending flush
// first too. The caller flushes once more after Run returns, which covers
// termination by signal.
//
// # External Changes
//
// When Options.Changes is set (the prefs file watcher), each notification calls
// Store.SyncSettings so edits made by `tasbih wakelock` or by hand show up
// without a restart.
//
// # Usage Example
//
//	store := state.Load(backend, state.Options{Haptic: haptic.NewBell(nil)})
//	if err := ui.Run(ui.Options{Context: ctx, Store: store}); err != nil {
//		log.Fatal(err)
//	}
//	store.FlushCounter()
package ui
