package service

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/streampick/internal/domain"
)

// Suggestion is a previously searched title matching the current input
type Suggestion struct {
	Title          string
	MatchedIndexes []int // Character positions that matched, for highlighting
}

// titleIndex implements sahilm/fuzzy.Source over history titles
type titleIndex struct {
	titles []string
}

// String returns the title at index i (implements fuzzy.Source)
func (idx titleIndex) String(i int) string { return idx.titles[i] }

// Len returns the number of titles (implements fuzzy.Source)
func (idx titleIndex) Len() int { return len(idx.titles) }

// HistoryService records resolved searches and answers title lookups
// against them.
type HistoryService struct {
	store  domain.HistoryStore
	logger *slog.Logger
	now    func() time.Time

	// How many entries to scan for titles
	window int
}

// NewHistoryService creates a new history service
func NewHistoryService(store domain.HistoryStore, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryService{
		store:  store,
		logger: logger,
		now:    time.Now,
		window: 500,
	}
}

// Record stores a resolved search. Only searches the service answered are
// kept; failures are not useful as suggestions.
func (s *HistoryService) Record(query domain.SearchQuery, result domain.Result) error {
	if result.IsFailure() {
		return nil
	}
	entry := domain.HistoryEntry{
		Title:      query.Title,
		K:          query.K,
		Outcome:    result.Outcome,
		Count:      len(result.Items),
		SearchedAt: s.now(),
	}
	if err := s.store.Append(entry); err != nil {
		s.logger.Warn("failed to record search", "title", query.Title, "error", err)
		return err
	}
	return nil
}

// Titles returns distinct titles, newest first, compared case-insensitively
func (s *HistoryService) Titles(limit int) []string {
	entries, err := s.store.Recent(s.window)
	if err != nil {
		s.logger.Warn("failed to read history", "error", err)
		return nil
	}

	seen := make(map[string]bool, len(entries))
	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		key := strings.ToLower(e.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		titles = append(titles, e.Title)
		if limit > 0 && len(titles) >= limit {
			break
		}
	}
	return titles
}

// Suggest returns up to n history titles fuzzy-matching input, best first.
// Blank input yields the most recent titles.
func (s *HistoryService) Suggest(input string, n int) []Suggestion {
	input = strings.TrimSpace(input)
	titles := s.Titles(0)

	if input == "" {
		if n > 0 && len(titles) > n {
			titles = titles[:n]
		}
		out := make([]Suggestion, len(titles))
		for i, t := range titles {
			out[i] = Suggestion{Title: t}
		}
		return out
	}

	matches := fuzzy.FindFrom(input, titleIndex{titles: titles})
	out := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		// An exact repeat of the input is not a useful suggestion
		if strings.EqualFold(m.Str, input) {
			continue
		}
		out = append(out, Suggestion{Title: m.Str, MatchedIndexes: m.MatchedIndexes})
		if n > 0 && len(out) >= n {
			break
		}
	}
	return out
}

// Similar returns up to n earlier titles that resemble title, closest first.
// Used to offer alternatives when a search finds nothing.
func (s *HistoryService) Similar(title string, n int) []string {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	candidates := make([]string, 0)
	for _, t := range s.Titles(0) {
		if strings.EqualFold(t, title) {
			continue
		}
		candidates = append(candidates, t)
	}

	type ranked struct {
		title    string
		distance int
	}
	var results []ranked
	seen := make(map[string]bool)

	// Subsequence matches first ("toy" -> "Toy Story 2")
	for _, m := range fuzzysearch.RankFindFold(title, candidates) {
		seen[m.Target] = true
		results = append(results, ranked{m.Target, m.Distance})
	}

	// Then near misses by edit distance ("Toy Stroy" -> "Toy Story")
	lower := strings.ToLower(title)
	threshold := max(2, len(lower)/3)
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		if d := fuzzysearch.LevenshteinDistance(lower, strings.ToLower(c)); d <= threshold {
			results = append(results, ranked{c, d})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].distance < results[j].distance
	})

	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.title)
		if n > 0 && len(out) >= n {
			break
		}
	}
	return out
}

// Clear removes all recorded searches
func (s *HistoryService) Clear() error {
	return s.store.Clear()
}
