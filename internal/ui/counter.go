package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMain renders header, counter and footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCounter())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader shows the title on the left and setting indicators on the right.
func (m Model) renderHeader() string {
	bar := NewBgStyle(m.theme.Surface)
	title := bar.Render(" TASBIH", m.styles.Bar.UnsetPadding().Bold(true))

	var indicators []string
	if m.snapshot.IsDegraded() {
		indicators = append(indicators, bar.Render("not saved", m.styles.Danger))
	}
	if m.snapshot.WakelockEnabled {
		indicators = append(indicators, bar.Render("awake", m.styles.Indicator))
	}
	if m.snapshot.VibrationEnabled {
		indicators = append(indicators, bar.Render("vibration on", m.styles.Bar.UnsetPadding()))
	} else {
		indicators = append(indicators, bar.Render("vibration off", m.styles.Bar.UnsetPadding()))
	}
	right := bar.Join(indicators, " · ") + bar.Spaces(1)

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right)
	return bar.FillLine(title+bar.Spaces(gap)+right, m.width)
}

// renderCounter centers the count in the space between the bars.
func (m Model) renderCounter() string {
	height := m.height - chromeHeight
	if height < 1 {
		height = 1
	}

	style := m.styles.Counter
	if m.flashing {
		style = m.styles.CounterFlash
	}
	count := renderCount(m.snapshot.Count, m.width, height-2, style)
	label := m.styles.Label.Render("tap to count")
	body := lipgloss.JoinVertical(lipgloss.Center, count, "", label)

	return lipgloss.Place(
		m.width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		body,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)),
	)
}

// renderFooter shows the current notice, or short help when there is none.
func (m Model) renderFooter() string {
	bar := NewBgStyle(m.theme.Surface)
	if m.notice != "" {
		return bar.FillLine(bar.Spaces(1)+bar.Render(m.notice, m.styles.Notice), m.width)
	}
	return bar.FillLine(bar.Spaces(1)+m.help.View(m.keys), m.width)
}
