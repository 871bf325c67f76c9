// Package app provides the orchestration layer for the tasbih application.
//
// # Overview
//
// This package wires together configuration, logging, storage, the state
// store, keep-awake and the UI. It is the composition root: every dependency
// is built here and handed to the packages that use it.
//
// # Architecture
//
// Run follows a simple initialization pattern:
//
//  1. Load config from ~/.config/tasbih/config.toml and TASBIH_* variables
//  2. Open the zap log file
//  3. Open the prefs backend (falling back to memory if it cannot be opened)
//  4. Load the state.Store with the configured haptic pulser
//  5. Apply the persisted wakelock and subscribe keep-awake to changes
//  6. Start the settings watch (fsnotify for TOML, a poller for SQLite)
//  7. Start the TUI and block until the user quits or the context cancels
//  8. Flush the counter one last time and release everything
//
// ReadStatus and ToggleWakelock run steps 1-4 only and back the status and
// wakelock subcommands.
//
// # Components
//
//   - app.go: Run and the shared session setup
//   - status.go: one-shot entry points used by the CLI subcommands
//   - poller.go: background ticker that stands in for a file watch on SQLite
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read config + env
//	       ├─────> logging.New()      File logger
//	       ├─────> prefs.Open()       TOML, SQLite or memory backend
//	       ├─────> state.Load()       Store seeded from the backend
//	       ├─────> keepawake.New()    Inhibitor driven by OnChange
//	       ├─────> watchSettings()    prefs.Watch or StartPoller
//	       ├─────> ui.Run()           Start TUI (blocks)
//	       └─────> FlushCounter()     Final save
//
//	Settings changed by another process:
//	┌─────────────────────────────────────────┐
//	│ watcher / poller                        │
//	│  └─> changes channel                    │
//	│      └─> ui: store.SyncSettings()       │
//	│          └─> OnChange -> keepawake      │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Config file present but unreadable or invalid
//   - Log file cannot be created
//   - Unknown storage kind or haptic mode
//   - The UI itself fails to start
//
// Recoverable errors (logged, the session continues):
//   - Backend cannot be opened (counting continues in memory)
//   - Keep-awake command missing or failing
//   - Settings watch cannot be started
//   - Any individual read or write, which the store records instead
//
// A context cancelled by SIGINT or SIGTERM is a normal exit, and the counter
// is still flushed.
package app
