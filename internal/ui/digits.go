package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const digitRows = 5

var bigDigits = [10][digitRows]string{
	{"███", "█ █", "█ █", "█ █", "███"},
	{" █ ", "██ ", " █ ", " █ ", "███"},
	{"███", "  █", "███", "█  ", "███"},
	{"███", "  █", "███", "  █", "███"},
	{"█ █", "█ █", "███", "  █", "  █"},
	{"███", "█  ", "███", "  █", "███"},
	{"███", "█  ", "███", "█ █", "███"},
	{"███", "  █", "  █", "  █", "  █"},
	{"███", "█ █", "███", "█ █", "███"},
	{"███", "█ █", "███", "  █", "███"},
}

// bigNumber renders n in block digits, one string per row.
func bigNumber(n int) []string {
	text := strconv.Itoa(n)
	rows := make([]string, digitRows)
	for r := 0; r < digitRows; r++ {
		parts := make([]string, 0, len(text))
		for _, ch := range text {
			if ch < '0' || ch > '9' {
				continue
			}
			parts = append(parts, bigDigits[ch-'0'][r])
		}
		rows[r] = strings.Join(parts, " ")
	}
	return rows
}

// renderCount renders n as block digits when they fit in width x height,
// otherwise as plain text.
func renderCount(n int, width, height int, style lipgloss.Style) string {
	rows := bigNumber(n)
	if lipgloss.Width(rows[0]) > width || digitRows > height {
		return style.Render(strconv.Itoa(n))
	}
	return style.Render(strings.Join(rows, "\n"))
}
