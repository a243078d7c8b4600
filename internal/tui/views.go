package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/streampick/internal/tui/components"
	"github.com/mmcdole/streampick/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	width := max(m.Width, MinWidth)
	view := m.Controller.View()

	frame := styles.SpinnerStyle.Render(styles.SpinnerFrames[m.SpinnerFrame%len(styles.SpinnerFrames)])
	sections := []string{
		m.SearchBar.View(),
		components.RenderHero(view.Hero, m.loadingLine(frame), width),
	}

	switch {
	case view.Row != nil:
		sections = append(sections, " "+strings.ReplaceAll(m.Row.View(), "\n", "\n "))
	case view.EmptyMessage != "":
		sections = append(sections, m.renderEmpty(view.EmptyMessage))
	}

	if notice := components.RenderNotice(view.Notice, width); notice != "" {
		sections = append(sections, notice)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	footer := m.renderFooter(width)

	// Pin the footer to the bottom when there is room
	gap := m.Height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + footer
}

// renderEmpty draws the no-results notice plus earlier similar searches
func (m Model) renderEmpty(message string) string {
	lines := []string{styles.RowTitleStyle.Render(message)}
	if len(m.Hints) > 0 {
		lines = append(lines, styles.DimStyle.Render("Recent searches: ")+
			styles.SubtitleStyle.Render(strings.Join(m.Hints, ", ")))
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderFooter draws the status message or key help
func (m Model) renderFooter(width int) string {
	if m.StatusMsg != "" {
		style := styles.StatusBarStyle
		if m.StatusIsErr {
			style = styles.ErrorStyle
		}
		return style.Render(styles.Truncate(m.StatusMsg, width))
	}

	parts := make([]string, 0, len(Keys.ShortHelp()))
	for _, b := range Keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	help := strings.Join(parts, styles.DimStyle.Render(" • "))
	if lipgloss.Width(help) > width {
		help = styles.DimStyle.Render("/ search • enter more like this • q quit")
	}
	return help
}
