package controller

import (
	"fmt"
	"strings"

	"github.com/mmcdole/streampick/internal/domain"
)

// Fallback content shown when a search finds nothing
const (
	PlaceholderTitle  = "Try a different title"
	PlaceholderPoster = "https://picsum.photos/seed/default/300/450"
	EmptyNotice       = "No recommendations found. Try another movie title."
	BlankTitlePrompt  = "Type a movie name"
)

// Hero is the featured title and poster
type Hero struct {
	Title     string
	PosterURL string
}

// Card is one clickable recommendation in the row
type Card struct {
	Title     string
	PosterURL string
	Score     string // Formatted match score, e.g. "Match: 87.50%"
}

// Row is a heading plus its cards, in response order
type Row struct {
	Heading string
	Cards   []Card
}

// NoticeKind distinguishes notices so the view can style them
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticePrompt
	NoticeError
)

// Notice is a dismissible message shown over the current content
type Notice struct {
	Kind    NoticeKind
	Message string
}

// View is the renderable projection of the controller's state.
// Exactly one of Row and EmptyMessage is set once a search has rendered.
type View struct {
	Hero         Hero
	Row          *Row
	EmptyMessage string
	Notice       Notice
}

// HasContent reports whether anything has been rendered yet
func (v View) HasContent() bool {
	return v.Hero.Title != ""
}

// clone returns a copy that shares no mutable data with v
func (v View) clone() View {
	if v.Row != nil {
		row := *v.Row
		row.Cards = append([]Card(nil), v.Row.Cards...)
		v.Row = &row
	}
	return v
}

// FormatScore renders a match score for a card
func FormatScore(score float64) string {
	return fmt.Sprintf("Match: %.2f%%", score)
}

// RowHeading is the heading for recommendations based on query
func RowHeading(query string) string {
	return "Because you liked " + query
}

func successView(r domain.Result) View {
	cards := make([]Card, len(r.Items))
	for i, item := range r.Items {
		cards[i] = Card{
			Title:     item.Title,
			PosterURL: item.PosterURL,
			Score:     FormatScore(item.Score),
		}
	}
	return View{
		Hero: Hero{Title: r.Query, PosterURL: r.Items[0].PosterURL},
		Row:  &Row{Heading: RowHeading(r.Query), Cards: cards},
	}
}

func emptyView() View {
	return View{
		Hero:         Hero{Title: PlaceholderTitle, PosterURL: PlaceholderPoster},
		EmptyMessage: EmptyNotice,
	}
}

// Text renders the view as plain text, one element per line
func (v View) Text() string {
	var b strings.Builder
	if v.HasContent() {
		fmt.Fprintf(&b, "%s\n", v.Hero.Title)
		fmt.Fprintf(&b, "poster: %s\n", v.Hero.PosterURL)
	}
	if v.Row != nil {
		fmt.Fprintf(&b, "\n%s\n", v.Row.Heading)
		for i, c := range v.Row.Cards {
			fmt.Fprintf(&b, "%2d. %s  [%s]  %s\n", i+1, c.Title, c.Score, c.PosterURL)
		}
	}
	if v.EmptyMessage != "" {
		fmt.Fprintf(&b, "\n%s\n", v.EmptyMessage)
	}
	if v.Notice.Kind != NoticeNone {
		fmt.Fprintf(&b, "\n! %s\n", v.Notice.Message)
	}
	return b.String()
}
