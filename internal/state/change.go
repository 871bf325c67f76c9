package state

import "strings"

// Change is a bitmask of AppState fields touched by a mutation.
type Change uint8

const (
	ChangeCount Change = 1 << iota
	ChangeTheme
	ChangeVibration
	ChangeWakelock
)

// Has reports whether c includes every bit of f.
func (c Change) Has(f Change) bool {
	return f != 0 && c&f == f
}

func (c Change) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	if c.Has(ChangeCount) {
		parts = append(parts, "count")
	}
	if c.Has(ChangeTheme) {
		parts = append(parts, "theme")
	}
	if c.Has(ChangeVibration) {
		parts = append(parts, "vibration")
	}
	if c.Has(ChangeWakelock) {
		parts = append(parts, "wakelock")
	}
	return strings.Join(parts, "|")
}
