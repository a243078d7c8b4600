package controller

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/streampick/internal/domain"
	"github.com/mmcdole/streampick/internal/log"
)

// fakeRecommender returns canned results keyed by title and counts calls
type fakeRecommender struct {
	mu      sync.Mutex
	results map[string]domain.Result
	calls   []domain.SearchQuery
}

func newFake() *fakeRecommender {
	return &fakeRecommender{results: make(map[string]domain.Result)}
}

func (f *fakeRecommender) Fetch(_ context.Context, title string, k int) domain.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, domain.SearchQuery{Title: title, K: k})
	if r, ok := f.results[title]; ok {
		return r
	}
	return domain.Empty(title)
}

func (f *fakeRecommender) Calls() []domain.SearchQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.SearchQuery(nil), f.calls...)
}

type recorded struct {
	query  domain.SearchQuery
	result domain.Result
}

type fakeRecorder struct {
	entries []recorded
	err     error
}

func (r *fakeRecorder) Record(q domain.SearchQuery, res domain.Result) error {
	r.entries = append(r.entries, recorded{q, res})
	return r.err
}

func toyStoryItems(n int) []domain.RecommendationItem {
	items := make([]domain.RecommendationItem, n)
	for i := range items {
		items[i] = domain.RecommendationItem{
			MovieID:   i + 1,
			Title:     fmt.Sprintf("Movie %d", i+1),
			PosterURL: fmt.Sprintf("https://picsum.photos/seed/%d/300/450", i+1),
			Score:     90 - float64(i)*5.5,
		}
	}
	return items
}

func newController(f domain.Recommender) *Controller {
	return New(f, nil, log.NullLogger())
}

func TestController_StartsIdle(t *testing.T) {
	c := newController(newFake())
	assert.Equal(t, StateIdle, c.State().Kind)
	assert.False(t, c.View().HasContent())
}

func TestController_Success(t *testing.T) {
	f := newFake()
	f.results["Toy Story"] = domain.Success("Toy Story (1995)", toyStoryItems(6))
	c := newController(f)

	require.NoError(t, c.Search(context.Background(), "Toy Story", 6))

	state := c.State()
	assert.Equal(t, StateRendered, state.Kind)
	assert.True(t, state.Result.IsSuccess())

	v := c.View()
	assert.Equal(t, "Toy Story (1995)", v.Hero.Title)
	assert.Equal(t, "https://picsum.photos/seed/1/300/450", v.Hero.PosterURL, "hero poster is the first item's")
	require.NotNil(t, v.Row)
	assert.Equal(t, "Because you liked Toy Story (1995)", v.Row.Heading)
	require.Len(t, v.Row.Cards, 6)
	for i, card := range v.Row.Cards {
		assert.Equal(t, fmt.Sprintf("Movie %d", i+1), card.Title, "cards keep response order")
	}
	assert.Equal(t, "Match: 90.00%", v.Row.Cards[0].Score)
	assert.Equal(t, "Match: 84.50%", v.Row.Cards[1].Score)
	assert.Empty(t, v.EmptyMessage)
	assert.Equal(t, NoticeNone, v.Notice.Kind)
}

func TestController_Empty(t *testing.T) {
	c := newController(newFake())

	require.NoError(t, c.Search(context.Background(), "Nothing Matches", 6))

	assert.True(t, c.State().Result.IsEmpty())
	v := c.View()
	assert.Equal(t, PlaceholderTitle, v.Hero.Title)
	assert.Equal(t, PlaceholderPoster, v.Hero.PosterURL)
	assert.Nil(t, v.Row, "no cards are rendered")
	assert.Equal(t, EmptyNotice, v.EmptyMessage)
}

func TestController_EmptyReplacesPreviousRow(t *testing.T) {
	f := newFake()
	f.results["Toy Story"] = domain.Success("Toy Story", toyStoryItems(3))
	c := newController(f)

	require.NoError(t, c.Search(context.Background(), "Toy Story", 3))
	require.NoError(t, c.Search(context.Background(), "Nothing", 3))

	v := c.View()
	assert.Nil(t, v.Row)
	assert.Equal(t, PlaceholderTitle, v.Hero.Title)
}

func TestController_FailureKeepsPreviousContent(t *testing.T) {
	f := newFake()
	f.results["Toy Story"] = domain.Success("Toy Story", toyStoryItems(3))
	f.results["Broken"] = domain.Failure("movie not found")
	c := newController(f)

	require.NoError(t, c.Search(context.Background(), "Toy Story", 3))
	before := c.View()

	require.NoError(t, c.Search(context.Background(), "Broken", 3))

	state := c.State()
	assert.Equal(t, StateRendered, state.Kind)
	assert.True(t, state.Result.IsFailure())
	assert.Equal(t, "movie not found", state.Result.Message)

	after := c.View()
	assert.Equal(t, before.Hero, after.Hero)
	assert.Equal(t, before.Row, after.Row)
	assert.Equal(t, Notice{Kind: NoticeError, Message: "API error: movie not found"}, after.Notice)

	c.DismissNotice()
	assert.Equal(t, NoticeNone, c.View().Notice.Kind)
	assert.Equal(t, before.Row, c.View().Row, "dismissing leaves content")
}

func TestController_FailureFromIdleLeavesBlankContent(t *testing.T) {
	f := newFake()
	f.results["Broken"] = domain.Failure("API error")
	c := newController(f)

	require.NoError(t, c.Search(context.Background(), "Broken", 6))

	v := c.View()
	assert.False(t, v.HasContent())
	assert.Equal(t, NoticeError, v.Notice.Kind)
}

func TestController_BlankTitleNeverFetches(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		f := newFake()
		c := newController(f)

		err := c.Search(context.Background(), title, 6)

		require.ErrorIs(t, err, domain.ErrBlankTitle)
		assert.Empty(t, f.Calls(), "no request for %q", title)
		assert.Equal(t, StateIdle, c.State().Kind)
		assert.Equal(t, Notice{Kind: NoticePrompt, Message: BlankTitlePrompt}, c.View().Notice)
	}
}

func TestController_BlankTitleKeepsRenderedState(t *testing.T) {
	f := newFake()
	f.results["Toy Story"] = domain.Success("Toy Story", toyStoryItems(2))
	c := newController(f)
	require.NoError(t, c.Search(context.Background(), "Toy Story", 2))

	_, err := c.Begin("", 2)
	require.Error(t, err)

	assert.Equal(t, StateRendered, c.State().Kind)
	assert.True(t, c.State().Result.IsSuccess())
	assert.Len(t, c.View().Row.Cards, 2)
}

func TestController_InvalidK(t *testing.T) {
	f := newFake()
	c := newController(f)

	err := c.Search(context.Background(), "Toy Story", 0)

	require.ErrorIs(t, err, domain.ErrInvalidK)
	assert.Empty(t, f.Calls())
	assert.Equal(t, StateIdle, c.State().Kind)
}

func TestController_BeginEntersLoading(t *testing.T) {
	c := newController(newFake())

	q, err := c.Begin("  Heat ", 3)
	require.NoError(t, err)

	assert.Equal(t, domain.SearchQuery{Title: "Heat", K: 3}, q)
	assert.Equal(t, Loading(q), c.State())

	c.Resolve(q, c.Fetch(context.Background(), q))
	assert.Equal(t, StateRendered, c.State().Kind)
}

func TestController_IdempotentForSameResponse(t *testing.T) {
	f := newFake()
	f.results["Toy Story"] = domain.Success("Toy Story", toyStoryItems(6))
	c := newController(f)

	require.NoError(t, c.Search(context.Background(), "Toy Story", 6))
	first := c.View()
	require.NoError(t, c.Search(context.Background(), "Toy Story", 6))
	second := c.View()

	assert.Equal(t, first, second)
	assert.Equal(t, first.Text(), second.Text())
}

func TestController_SelectCardCascades(t *testing.T) {
	f := newFake()
	items := toyStoryItems(3)
	f.results["Toy Story"] = domain.Success("Toy Story", items)
	f.results["Movie 2"] = domain.Success("Movie 2", toyStoryItems(2))
	c := newController(f)
	require.NoError(t, c.Search(context.Background(), "Toy Story", 6))

	q, err := c.SelectCard(1, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.SearchQuery{Title: "Movie 2", K: 9}, q, "uses the k selected at click time")

	require.NoError(t, c.Search(context.Background(), q.Title, q.K))
	calls := f.Calls()
	assert.Equal(t, domain.SearchQuery{Title: "Movie 2", K: 9}, calls[len(calls)-1])
	assert.Equal(t, "Movie 2", c.View().Hero.Title)
}

func TestController_SelectCardOutOfRange(t *testing.T) {
	c := newController(newFake())

	_, err := c.SelectCard(0, 6)
	assert.Error(t, err, "no row yet")

	require.NoError(t, c.Search(context.Background(), "Nothing", 6))
	_, err = c.SelectCard(0, 6)
	assert.Error(t, err, "empty result has no cards")
}

func TestController_ViewSnapshotIsIsolated(t *testing.T) {
	f := newFake()
	f.results["Toy Story"] = domain.Success("Toy Story", toyStoryItems(2))
	c := newController(f)
	require.NoError(t, c.Search(context.Background(), "Toy Story", 2))

	v := c.View()
	v.Row.Cards[0].Title = "mutated"

	assert.Equal(t, "Movie 1", c.View().Row.Cards[0].Title)
}

func TestController_RecordsResolvedSearches(t *testing.T) {
	f := newFake()
	f.results["Broken"] = domain.Failure("boom")
	rec := &fakeRecorder{err: fmt.Errorf("disk full")}
	c := New(f, rec, log.NullLogger())

	require.NoError(t, c.Search(context.Background(), "Nothing", 6))
	require.NoError(t, c.Search(context.Background(), "Broken", 3))
	_ = c.Search(context.Background(), "", 3)

	require.Len(t, rec.entries, 2, "rejected input is not recorded; recorder errors are not surfaced")
	assert.Equal(t, "Nothing", rec.entries[0].query.Title)
	assert.True(t, rec.entries[1].result.IsFailure())
}

// gatedRecommender blocks each title until its gate is released
type gatedRecommender struct {
	gates   map[string]chan struct{}
	results map[string]domain.Result
}

func (g *gatedRecommender) Fetch(_ context.Context, title string, _ int) domain.Result {
	<-g.gates[title]
	return g.results[title]
}

func TestController_LastResolvedWins(t *testing.T) {
	g := &gatedRecommender{
		gates: map[string]chan struct{}{
			"First":  make(chan struct{}),
			"Second": make(chan struct{}),
		},
		results: map[string]domain.Result{
			"First":  domain.Success("First", toyStoryItems(1)),
			"Second": domain.Success("Second", toyStoryItems(2)),
		},
	}
	c := newController(g)

	qFirst, err := c.Begin("First", 6)
	require.NoError(t, err)
	qSecond, err := c.Begin("Second", 6)
	require.NoError(t, err)
	assert.Equal(t, Loading(qSecond), c.State())

	var wg sync.WaitGroup
	resolved := make(chan string, 2)
	for _, q := range []domain.SearchQuery{qFirst, qSecond} {
		q := q
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Resolve(q, c.Fetch(context.Background(), q))
			resolved <- q.Title
		}()
	}

	// The later search answers first; the earlier one then overwrites it
	close(g.gates["Second"])
	assert.Equal(t, "Second", <-resolved)
	assert.Equal(t, "Second", c.View().Hero.Title)

	close(g.gates["First"])
	assert.Equal(t, "First", <-resolved)
	wg.Wait()

	assert.Equal(t, "First", c.View().Hero.Title)
	assert.Equal(t, StateRendered, c.State().Kind)
}

func TestView_Text(t *testing.T) {
	v := successView(domain.Success("Heat", []domain.RecommendationItem{
		{Title: "Ronin", PosterURL: "p1", Score: 55.5},
	}))

	text := v.Text()
	assert.Contains(t, text, "Heat\nposter: p1\n")
	assert.Contains(t, text, "Because you liked Heat")
	assert.Contains(t, text, " 1. Ronin  [Match: 55.50%]  p1")

	empty := emptyView().Text()
	assert.Contains(t, empty, PlaceholderTitle)
	assert.Contains(t, empty, EmptyNotice)
}
