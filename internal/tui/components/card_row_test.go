package components

import (
	"fmt"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/streampick/internal/controller"
)

func testRow(n int) *controller.Row {
	cards := make([]controller.Card, n)
	for i := range cards {
		cards[i] = controller.Card{
			Title:     fmt.Sprintf("Movie %d", i+1),
			PosterURL: fmt.Sprintf("https://picsum.photos/seed/%d/300/450", i+1),
			Score:     controller.FormatScore(float64(90 - i)),
		}
	}
	return &controller.Row{Heading: "Because you liked Toy Story", Cards: cards}
}

func TestCardRow_CursorBounds(t *testing.T) {
	r := NewCardRow(20)
	r.SetRow(testRow(3))

	r.MoveLeft()
	assert.Equal(t, 0, r.Cursor())

	r.MoveRight()
	r.MoveRight()
	r.MoveRight()
	assert.Equal(t, 2, r.Cursor())

	card, ok := r.Selected()
	require.True(t, ok)
	assert.Equal(t, "Movie 3", card.Title)
}

func TestCardRow_SetRowResetsCursor(t *testing.T) {
	r := NewCardRow(20)
	r.SetRow(testRow(5))
	r.MoveRight()

	r.SetRow(testRow(2))
	assert.Equal(t, 0, r.Cursor())

	r.SetRow(nil)
	assert.Equal(t, 0, r.Len())
	_, ok := r.Selected()
	assert.False(t, ok)
	assert.Empty(t, r.View())
}

func TestCardRow_ScrollsToKeepCursorVisible(t *testing.T) {
	r := NewCardRow(20)
	r.SetRow(testRow(10))
	r.SetWidth(62) // three cards of 20 plus two gaps

	assert.Equal(t, 3, r.visibleCount())
	for i := 0; i < 4; i++ {
		r.MoveRight()
	}
	assert.Equal(t, 4, r.Cursor())
	assert.Equal(t, 2, r.offset)

	for i := 0; i < 4; i++ {
		r.MoveLeft()
	}
	assert.Equal(t, 0, r.offset)
}

func TestCardRow_ViewShowsVisibleCards(t *testing.T) {
	r := NewCardRow(20)
	r.SetRow(testRow(6))
	r.SetWidth(45)

	view := r.View()
	assert.Contains(t, view, "Because you liked Toy Story")
	assert.Contains(t, view, "Movie 1")
	assert.Contains(t, view, "Movie 2")
	assert.NotContains(t, view, "Movie 3")
	assert.Contains(t, view, "Match: 90.00%")
	assert.Contains(t, view, "1-2 of 6")
	assert.LessOrEqual(t, lipgloss.Width(view), 45)
}

func TestPosterBlock_Deterministic(t *testing.T) {
	a := PosterBlock("https://picsum.photos/seed/1/300/450", 8, 2)
	b := PosterBlock("https://picsum.photos/seed/1/300/450", 8, 2)
	assert.Equal(t, a, b)
	assert.Equal(t, 8, lipgloss.Width(a))
	assert.Empty(t, PosterBlock("x", 0, 2))
}
