// Package logtail reads and formats tasbih's log file for `tasbih logs`.
//
// # Reading
//
// Read returns the last N lines of a file using a ring buffer, so memory is
// O(N) regardless of file size. A missing file is not an error; it simply has
// no lines yet.
//
// # Formatting
//
// The log file holds zap JSON entries. FormatLine renders one as
//
//	2026-10-16T09:12:03.114+0200 INFO  state loaded counter=33 dark_mode=true
//
// with the level coloured through lipgloss. Field order follows the JSON
// object. Non-JSON lines pass through untouched.
package logtail
