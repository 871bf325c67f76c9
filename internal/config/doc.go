// Package config loads tasbih's runtime configuration.
//
// # Resolution Order
//
//  1. If a path is explicitly provided, read it
//  2. Otherwise read ~/.config/tasbih/config.toml
//  3. A missing file is fine; an unparsable one is an error
//  4. TASBIH_* environment variables override file values
//  5. Empty or missing fields get defaults
//
// Command-line flags are applied by the caller on top of the result.
//
// # Fields
//
//	Key                 Env                          Default
//	storage             TASBIH_STORAGE               toml (or sqlite, memory)
//	data_dir            TASBIH_DATA_DIR              ~/.local/share/tasbih
//	haptic              TASBIH_HAPTIC                bell (or none)
//	pulse_ms            TASBIH_PULSE_MS              20
//	keep_awake_command  TASBIH_KEEP_AWAKE_COMMAND    systemd-inhibit ... sleep infinity
//	log_file            TASBIH_LOG_FILE              ~/.local/state/tasbih/tasbih.log ("none" disables)
//	log_level           TASBIH_LOG_LEVEL             info
//
// TASBIH_KEEP_AWAKE_COMMAND is split on spaces.
//
// # TOML Format
//
//	storage = "sqlite"
//	haptic = "none"
//	keep_awake_command = ["caffeinate", "-d"]
//
// The counter and the user's toggles are not configuration; they are persisted
// by the prefs package.
package config
