package tui

import (
	"github.com/mmcdole/streampick/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchRequestMsg asks the model to start a search.
// Used for searches that do not come from a key press, like the startup demo.
type SearchRequestMsg struct {
	Title string
	K     int
}

// SearchResolvedMsg carries the outcome of a finished request
type SearchResolvedMsg struct {
	Query  domain.SearchQuery
	Result domain.Result
}

// PosterOpenedMsg signals that a poster URL was handed to the opener
type PosterOpenedMsg struct {
	URL string
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
