package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/streampick/internal/controller"
	"github.com/mmcdole/streampick/internal/domain"
)

// Command factories for async operations

// SearchCmd performs the request for an accepted query.
// No timeout is applied here; the HTTP client's configured timeout, if any,
// bounds the call.
func SearchCmd(ctrl *controller.Controller, q domain.SearchQuery) tea.Cmd {
	return func() tea.Msg {
		result := ctrl.Fetch(context.Background(), q)
		return SearchResolvedMsg{Query: q, Result: result}
	}
}

// RequestSearchCmd asks the model to start a search
func RequestSearchCmd(title string, k int) tea.Cmd {
	return func() tea.Msg {
		return SearchRequestMsg{Title: title, K: k}
	}
}

// OpenPosterCmd opens a poster URL in the external viewer
func OpenPosterCmd(opener PosterOpener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening poster"}
		}
		return PosterOpenedMsg{URL: url}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
