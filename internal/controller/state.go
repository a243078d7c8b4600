package controller

import "github.com/mmcdole/streampick/internal/domain"

// StateKind identifies the phase of the search state machine
type StateKind int

const (
	StateIdle StateKind = iota
	StateLoading
	StateRendered
)

func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// UIState is the current phase plus its payload.
// Query is set while Loading; Result is set once Rendered.
type UIState struct {
	Kind   StateKind
	Query  domain.SearchQuery
	Result domain.Result
}

// Idle is the initial state
func Idle() UIState { return UIState{Kind: StateIdle} }

// Loading is the state while a request is outstanding
func Loading(q domain.SearchQuery) UIState { return UIState{Kind: StateLoading, Query: q} }

// Rendered is the state once a result has been applied
func Rendered(r domain.Result) UIState { return UIState{Kind: StateRendered, Result: r} }
