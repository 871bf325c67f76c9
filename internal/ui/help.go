package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	sections := []helpSection{
		{
			title: "Counting",
			items: []helpItem{
				{"space/enter", "Count (or left click)"},
				{"r", "Reset counter"},
				{"R/v", "Toggle vibration"},
				{"t", "Toggle dark mode"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"h/?", "Toggle help"},
				{"ctrl+z", "Suspend"},
				{"q/esc", "Quit"},
			},
		},
	}

	var b strings.Builder

	b.WriteString(m.styles.Label.UnsetBackground().Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(m.styles.Faint.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := m.styles.Key.Width(14)
	for i, section := range sections {
		b.WriteString(m.styles.Key.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(m.styles.Label.UnsetBackground().Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Faint.Render("The count is saved when you quit,\nsuspend, or switch away."))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(HelpModalWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
