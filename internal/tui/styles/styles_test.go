package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Toy Story", 20, "Toy Story"},
		{"Toy Story", 9, "Toy Story"},
		{"Toy Story 2", 8, "Toy S..."},
		{"Amélie", 5, "Am..."},
		{"Heat", 2, "He"},
		{"Heat", 0, ""},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.width)
		assert.Equal(t, tt.want, got, "Truncate(%q, %d)", tt.in, tt.width)
		assert.LessOrEqual(t, lipgloss.Width(got), max(tt.width, 0))
	}
}

func TestHighlight_PlainWhenNoMatches(t *testing.T) {
	base := lipgloss.NewStyle()
	assert.Equal(t, base.Render("Heat"), Highlight("Heat", nil, base))
}
