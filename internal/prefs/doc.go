// Package prefs provides the durable key-value storage behind tasbih's state.
//
// # Overview
//
// All persisted values live under a single namespace, "TasbihPrefs". The
// namespace is part of the on-disk format and must stay stable so upgraded
// builds keep reading the same counter and settings.
//
// # Backends
//
//   - File (default): ~/.local/share/tasbih/TasbihPrefs.toml
//   - SQLite: ~/.local/share/tasbih/tasbih.db, table prefs(namespace, key, value)
//   - Memory: tests, and the fallback when neither of the above can be opened
//
// Open selects a backend by Kind. All backends satisfy Backend, which only
// knows ints and bools; key names and defaults belong to the state package.
//
// # TOML Format
//
//	counter = 33
//	dark_mode = true
//	vibration = true
//	wakelock = false
//
// Writes read the current document, change one key and replace the file via a
// temp file and rename, so a crash mid-write leaves the previous document in
// place and keys written by other processes survive.
//
// # Watching
//
// Watch reports edits to the TOML file (for example `tasbih wakelock` run from
// another terminal). Events are debounced and delivered on a buffered channel
// of size one. The SQLite backend is not watched.
//
// # Error Handling
//
// Backends return errors; they do not decide policy. The state package treats
// every storage error as best effort and falls back to defaults or in-memory
// values.
package prefs
