package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for one appearance.
type Theme struct {
	Name string
	Dark bool

	// Base colors
	Background string // Full-screen background
	Surface    string // Header and footer bars

	// Text colors
	Text    string // Counter digits
	Muted   string // Labels, help
	Faint   string // Separators
	Accent  string // Flash on haptic pulse
	Success string // Notices
	Warning string // Keep-awake indicator
	Danger  string // Storage failure
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	bg := lipgloss.Color(t.Background)
	return Styles{
		Background: lipgloss.NewStyle().
			Background(bg),

		Counter: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),

		CounterFlash: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Label: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Muted)),

		Bar: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Notice: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		Indicator: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Warning)),

		Danger: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Key: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		Faint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background   lipgloss.Style
	Counter      lipgloss.Style
	CounterFlash lipgloss.Style
	Label        lipgloss.Style
	Bar          lipgloss.Style
	Notice       lipgloss.Style
	Indicator    lipgloss.Style
	Danger       lipgloss.Style
	Key          lipgloss.Style
	Faint        lipgloss.Style
}

// ThemeFor returns the theme matching the dark-mode setting.
func ThemeFor(dark bool) Theme {
	if dark {
		return darkTheme()
	}
	return lightTheme()
}

func lightTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Light",
		Dark: false,

		Background: "#f8fafc", // slate-50
		Surface:    "#e2e8f0", // slate-200

		Text:    "#0f172a", // slate-900
		Muted:   "#475569", // slate-600
		Faint:   "#94a3b8", // slate-400
		Accent:  "#0284c7", // sky-600
		Success: "#15803d", // green-700
		Warning: "#b45309", // amber-700
		Danger:  "#b91c1c", // red-700
	}
}

func darkTheme() Theme {
	return Theme{
		Name: "Dark",
		Dark: true,

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
	}
}
