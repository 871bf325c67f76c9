// Package state holds the tally counter and its settings, and decides when each
// value reaches durable storage.
//
// # Overview
//
// A single Store is created at startup by Load and handed to the UI. The UI
// raises one event at a time and re-renders from Store.Snapshot afterwards.
//
//	┌──────────────┐  Increment / Reset       ┌──────────────┐
//	│   UI shell   │ ───────────────────────→ │    Store     │
//	│              │  Toggle* / FlushCounter  │   AppState   │
//	│              │ ←─────────────────────── │              │
//	└──────────────┘  Snapshot()              └──────┬───────┘
//	                                                 │ write
//	                                          ┌──────▼───────┐
//	                                          │ prefs.Backend│
//	                                          └──────────────┘
//
// # Persistence Timing
//
// Fields are split by how they are written:
//
//	Field             Key          Default  Written
//	Count             counter      0        FlushCounter only
//	DarkMode          dark_mode    false    every toggle
//	VibrationEnabled  vibration    true     every toggle
//	WakelockEnabled   wakelock     false    every toggle
//
// Settings therefore survive any crash. A counting session survives only if
// FlushCounter ran before the process died:
//
//	Load                 → Count=5 (on disk: 5)
//	Increment ×3         → Count=8 (on disk: 5)
//	<killed>
//	Load                 → Count=5
//
// The UI calls FlushCounter whenever it is about to lose the foreground
// (focus lost, suspend, quit, termination signal).
//
// # Error Handling
//
// Storage is best effort. Load substitutes defaults for unreadable keys. A
// failed write is logged, recorded in Snapshot.LastError and
// ConsecutiveFailures, and otherwise ignored; the in-memory value stands for
// the rest of the session. Nothing is retried and no method returns an error.
//
// # Change Notification
//
// OnChange listeners run synchronously after every mutation, outside the lock,
// with a Change bitmask. The app uses this to apply the keep-awake flag; the UI
// rebuilds its theme when ChangeTheme is reported.
//
// # Haptic Feedback
//
// Increment requests a Pulse of DefaultPulse (or Options.Pulse) from the Haptic
// collaborator when vibration is enabled. The request is fire-and-forget.
//
// # Concurrency
//
// The Store is driven from one event loop. It still guards its fields with a
// mutex so that CLI helpers and tests may call it from any goroutine.
package state
