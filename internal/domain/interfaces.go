package domain

import "context"

// Recommender fetches ranked recommendations for a title.
// Implementations never return errors: every outcome, including transport
// and decoding failures, is folded into the returned Result.
type Recommender interface {
	Fetch(ctx context.Context, title string, k int) Result
}

// HistoryStore persists resolved searches, newest last
type HistoryStore interface {
	// Append records a search
	Append(entry HistoryEntry) error

	// Recent returns up to limit entries, newest first
	Recent(limit int) ([]HistoryEntry, error)

	// Clear removes all history
	Clear() error

	// Close releases the underlying storage
	Close() error
}
