package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/streampick/internal/controller"
	"github.com/mmcdole/streampick/internal/tui/styles"
)

// Layout constants for cards
const (
	// Border adds 1 char on each side
	CardBorderWidth = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	CardPadding = 2

	// Gap between cards
	CardGap = 1

	// Height of the poster placeholder block
	PosterLines = 4

	// Minimum card width, including border and padding
	MinCardWidth = 12
)

// CardRow is a horizontal strip of recommendation cards with a cursor
type CardRow struct {
	heading string
	cards   []controller.Card

	// Selection
	cursor int
	offset int

	// Dimensions
	width     int
	cardWidth int
}

// NewCardRow creates an empty row with cards of the given outer width
func NewCardRow(cardWidth int) CardRow {
	return CardRow{cardWidth: max(cardWidth, MinCardWidth)}
}

// SetRow replaces the row content and resets the cursor.
// A nil row clears it.
func (r *CardRow) SetRow(row *controller.Row) {
	r.cursor = 0
	r.offset = 0
	if row == nil {
		r.heading = ""
		r.cards = nil
		return
	}
	r.heading = row.Heading
	r.cards = row.Cards
}

// SetWidth updates the available width
func (r *CardRow) SetWidth(width int) {
	r.width = width
	r.ensureVisible()
}

// Len returns the number of cards
func (r CardRow) Len() int {
	return len(r.cards)
}

// Cursor returns the index of the highlighted card
func (r CardRow) Cursor() int {
	return r.cursor
}

// Selected returns the highlighted card
func (r CardRow) Selected() (controller.Card, bool) {
	if r.cursor < 0 || r.cursor >= len(r.cards) {
		return controller.Card{}, false
	}
	return r.cards[r.cursor], true
}

// MoveLeft moves the cursor one card left
func (r *CardRow) MoveLeft() {
	if r.cursor > 0 {
		r.cursor--
		r.ensureVisible()
	}
}

// MoveRight moves the cursor one card right
func (r *CardRow) MoveRight() {
	if r.cursor < len(r.cards)-1 {
		r.cursor++
		r.ensureVisible()
	}
}

// visibleCount returns how many cards fit in the width
func (r CardRow) visibleCount() int {
	if r.width <= 0 {
		return max(len(r.cards), 1)
	}
	return max(1, (r.width+CardGap)/(r.cardWidth+CardGap))
}

// ensureVisible scrolls so the cursor is on screen
func (r *CardRow) ensureVisible() {
	visible := r.visibleCount()
	if r.cursor < r.offset {
		r.offset = r.cursor
	}
	if r.cursor >= r.offset+visible {
		r.offset = r.cursor - visible + 1
	}
}

// View renders the heading and the visible cards
func (r CardRow) View() string {
	if len(r.cards) == 0 {
		return ""
	}

	end := min(r.offset+r.visibleCount(), len(r.cards))
	rendered := make([]string, 0, end-r.offset)
	for i := r.offset; i < end; i++ {
		rendered = append(rendered, r.renderCard(r.cards[i], i == r.cursor))
		if i < end-1 {
			rendered = append(rendered, strings.Repeat(" ", CardGap))
		}
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	heading := styles.RowTitleStyle.Render(r.heading)
	if r.offset > 0 || end < len(r.cards) {
		heading += styles.DimStyle.Render("  " + scrollHint(r.offset, end, len(r.cards)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, heading, strip)
}

func scrollHint(offset, end, total int) string {
	left, right := " ", " "
	if offset > 0 {
		left = "‹"
	}
	if end < total {
		right = "›"
	}
	return fmt.Sprintf("%s %d-%d of %d %s", left, offset+1, end, total, right)
}

// renderCard draws one card: poster block, title, score
func (r CardRow) renderCard(card controller.Card, selected bool) string {
	inner := r.cardWidth - CardBorderWidth - CardPadding

	poster := PosterBlock(card.PosterURL, inner, PosterLines)
	title := styles.TitleStyle.Render(styles.Truncate(card.Title, inner))
	score := styles.ScoreStyle.Render(styles.Truncate(card.Score, inner))

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	return style.Width(r.cardWidth - CardBorderWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, poster, title, score))
}

// PosterBlock draws a placeholder for a poster image. The fill pattern is
// derived from the URL so each poster looks distinct.
func PosterBlock(url string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	shades := []rune{'░', '▒', '▓'}
	seed := 0
	for _, c := range url {
		seed = (seed*31 + int(c)) & 0xffff
	}

	lines := make([]string, height)
	for y := range lines {
		var b strings.Builder
		for x := 0; x < width; x++ {
			b.WriteRune(shades[(seed+x*7+y*13)%len(shades)])
		}
		lines[y] = b.String()
	}
	return styles.CardPosterStyle.Render(strings.Join(lines, "\n"))
}
