package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/streampick/internal/controller"
	"github.com/mmcdole/streampick/internal/tui/styles"
)

// heroPosterWidth is the width of the poster placeholder in the hero
const heroPosterWidth = 14

// RenderHero draws the featured title with its poster.
// loading, when non-empty, is shown as an activity line under the title.
func RenderHero(hero controller.Hero, loading string, width int) string {
	title := hero.Title
	if title == "" {
		title = "StreamPick"
	}

	// Border (2) + padding (4)
	inner := max(width-6, 20)
	textWidth := max(inner-heroPosterWidth-2, 10)

	lines := []string{styles.HeroTitleStyle.Render(styles.Truncate(title, textWidth))}
	if hero.PosterURL != "" {
		lines = append(lines,
			styles.DimStyle.Render("poster"),
			styles.SubtitleStyle.Render(styles.Truncate(hero.PosterURL, textWidth)),
		)
	}
	if loading != "" {
		lines = append(lines, "", loading)
	}
	text := lipgloss.JoinVertical(lipgloss.Left, lines...)

	content := text
	if hero.PosterURL != "" {
		poster := PosterBlock(hero.PosterURL, heroPosterWidth, 6)
		content = lipgloss.JoinHorizontal(lipgloss.Top, poster, "  ", text)
	}

	return styles.HeroStyle.Width(max(width-2, 0)).Render(content)
}
