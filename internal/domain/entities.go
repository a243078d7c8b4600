package domain

import (
	"fmt"
	"strings"
	"time"
)

// SearchQuery is a single request for recommendations.
// It is created per search and never mutated.
type SearchQuery struct {
	Title string
	K     int
}

// NewSearchQuery validates and normalizes a title and result count.
func NewSearchQuery(title string, k int) (SearchQuery, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return SearchQuery{}, ErrBlankTitle
	}
	if k < 1 {
		return SearchQuery{}, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	return SearchQuery{Title: title, K: k}, nil
}

// String returns a compact form for logging
func (q SearchQuery) String() string {
	return fmt.Sprintf("%q (k=%d)", q.Title, q.K)
}

// RecommendationItem is one ranked recommendation
type RecommendationItem struct {
	MovieID   int     `json:"movie_id,omitempty"`
	Title     string  `json:"title"`
	PosterURL string  `json:"poster_url"`
	Score     float64 `json:"score"` // Match strength as a percentage
}

// Outcome tags which variant of Result is active
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeEmpty
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is the normalized outcome of one recommendation request.
// Exactly one of the variants is active, selected by Outcome:
//   - OutcomeSuccess: Query and a non-empty Items
//   - OutcomeEmpty:   Query only
//   - OutcomeFailure: Message only
type Result struct {
	Outcome Outcome
	Query   string
	Items   []RecommendationItem
	Message string
}

// Success builds a success result. An empty item list is reported as Empty
// so a Success never carries zero items.
func Success(query string, items []RecommendationItem) Result {
	if len(items) == 0 {
		return Empty(query)
	}
	return Result{Outcome: OutcomeSuccess, Query: query, Items: items}
}

// Empty builds a result for a well-formed response without recommendations
func Empty(query string) Result {
	return Result{Outcome: OutcomeEmpty, Query: query}
}

// Failure builds a result carrying a human-readable error message
func Failure(message string) Result {
	return Result{Outcome: OutcomeFailure, Message: message}
}

// IsSuccess reports whether the result carries recommendations
func (r Result) IsSuccess() bool { return r.Outcome == OutcomeSuccess }

// IsEmpty reports whether the service answered with no recommendations
func (r Result) IsEmpty() bool { return r.Outcome == OutcomeEmpty }

// IsFailure reports whether the request failed
func (r Result) IsFailure() bool { return r.Outcome == OutcomeFailure }

// HistoryEntry records one resolved search
type HistoryEntry struct {
	Title      string    `json:"title"`
	K          int       `json:"k"`
	Outcome    Outcome   `json:"outcome"`
	Count      int       `json:"count"`
	SearchedAt time.Time `json:"searched_at"`
}
