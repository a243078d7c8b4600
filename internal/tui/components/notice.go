package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/streampick/internal/controller"
	"github.com/mmcdole/streampick/internal/tui/styles"
)

// RenderNotice draws a dismissible notice, or nothing when there is none
func RenderNotice(n controller.Notice, width int) string {
	if n.Kind == controller.NoticeNone {
		return ""
	}

	style := styles.NoticeStyle
	label := styles.AccentStyle.Render("›")
	if n.Kind == controller.NoticeError {
		style = styles.ErrorNoticeStyle
		label = styles.ErrorStyle.Render("✗")
	}

	hint := styles.DimStyle.Render("enter/esc to dismiss")
	body := lipgloss.JoinVertical(lipgloss.Left,
		label+" "+styles.TitleStyle.Render(n.Message),
		"",
		hint,
	)
	return style.Width(min(max(width-2, 20), 72)).Render(body)
}
