package components

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/streampick/internal/service"
	"github.com/mmcdole/streampick/internal/tui/styles"
)

// maxSuggestions is how many history matches are shown under the field
const maxSuggestions = 3

// SearchBar is the title entry field plus the result-count selector
type SearchBar struct {
	input       textinput.Model
	choices     []int
	kIdx        int
	suggestions []service.Suggestion
	width       int
}

// NewSearchBar creates a search bar offering choices, with defaultK selected.
// If defaultK is not among choices the first choice is selected.
func NewSearchBar(choices []int, defaultK int) SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Type a movie title..."
	ti.CharLimit = 200
	ti.Width = 40
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	if len(choices) == 0 {
		choices = []int{defaultK}
	}
	idx := slices.Index(choices, defaultK)
	if idx < 0 {
		idx = 0
	}

	return SearchBar{
		input:   ti,
		choices: choices,
		kIdx:    idx,
	}
}

// Focus focuses the text field
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes focus from the text field
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the text field has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the entered title
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the entered title
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
	s.input.CursorEnd()
}

// K returns the selected result count
func (s SearchBar) K() int {
	return s.choices[s.kIdx]
}

// NextK selects the next larger result count, stopping at the last
func (s *SearchBar) NextK() {
	if s.kIdx < len(s.choices)-1 {
		s.kIdx++
	}
}

// PrevK selects the next smaller result count, stopping at the first
func (s *SearchBar) PrevK() {
	if s.kIdx > 0 {
		s.kIdx--
	}
}

// SetSuggestions replaces the history suggestions shown under the field
func (s *SearchBar) SetSuggestions(suggestions []service.Suggestion) {
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	s.suggestions = suggestions
}

// Suggestions returns the suggestions currently shown
func (s SearchBar) Suggestions() []service.Suggestion {
	return s.suggestions
}

// AcceptSuggestion fills the field with the top suggestion
func (s *SearchBar) AcceptSuggestion() bool {
	if len(s.suggestions) == 0 {
		return false
	}
	s.SetValue(s.suggestions[0].Title)
	s.suggestions = nil
	return true
}

// SetWidth updates the component width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	// Leave room for the prompt and the k selector
	s.input.Width = max(10, width-24)
}

// Update forwards input events to the text field
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the field, the k selector and any suggestions
func (s SearchBar) View() string {
	selector := styles.KSelectorStyle.Render(fmt.Sprintf("k: %d ▾", s.K()))
	line := lipgloss.JoinHorizontal(lipgloss.Center, s.input.View(), "  ", selector)

	if !s.input.Focused() || len(s.suggestions) == 0 {
		return line
	}

	lines := []string{line}
	for i, sug := range s.suggestions {
		marker := "  "
		if i == 0 {
			marker = styles.DimStyle.Render("⇥ ")
		}
		lines = append(lines, "   "+marker+styles.Highlight(sug.Title, sug.MatchedIndexes, styles.SuggestionStyle))
	}
	return strings.Join(lines, "\n")
}
