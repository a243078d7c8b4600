package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/streampick/internal/domain"
)

// Recorder receives every resolved search
type Recorder interface {
	Record(query domain.SearchQuery, result domain.Result) error
}

// Controller owns the search state machine and is the only writer of the
// rendered view.
//
// There is no cancellation: every search runs to completion and whichever
// result is resolved last is the one displayed, regardless of the order the
// searches were started in.
type Controller struct {
	client   domain.Recommender
	recorder Recorder
	logger   *slog.Logger

	mu    sync.Mutex
	state UIState
	view  View
}

// New creates a controller in the Idle state.
// recorder may be nil.
func New(client domain.Recommender, recorder Recorder, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		client:   client,
		recorder: recorder,
		logger:   logger,
		state:    Idle(),
	}
}

// State returns the current state
func (c *Controller) State() UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns a snapshot of the rendered view
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.clone()
}

// Begin validates a search and moves to Loading.
// A blank title is rejected with domain.ErrBlankTitle: the state is left as
// it was and the view shows a prompt to enter a title.
func (c *Controller) Begin(title string, k int) (domain.SearchQuery, error) {
	q, err := domain.NewSearchQuery(title, k)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if errors.Is(err, domain.ErrBlankTitle) {
			c.view.Notice = Notice{Kind: NoticePrompt, Message: BlankTitlePrompt}
		} else {
			c.view.Notice = Notice{Kind: NoticePrompt, Message: err.Error()}
		}
		c.logger.Debug("search rejected", "title", title, "k", k, "error", err)
		return domain.SearchQuery{}, err
	}

	c.state = Loading(q)
	c.logger.Info("search started", "title", q.Title, "k", q.K)
	return q, nil
}

// Fetch performs the request for a query that Begin accepted
func (c *Controller) Fetch(ctx context.Context, q domain.SearchQuery) domain.Result {
	return c.client.Fetch(ctx, q.Title, q.K)
}

// Resolve applies a result, moving to Rendered.
// Success and Empty replace the view; Failure keeps the previous hero and
// row and raises an error notice instead.
func (c *Controller) Resolve(q domain.SearchQuery, result domain.Result) {
	c.mu.Lock()
	c.state = Rendered(result)

	switch result.Outcome {
	case domain.OutcomeSuccess:
		c.view = successView(result)
	case domain.OutcomeEmpty:
		c.view = emptyView()
	case domain.OutcomeFailure:
		c.view.Notice = Notice{Kind: NoticeError, Message: "API error: " + result.Message}
	}
	c.mu.Unlock()

	c.logger.Info("search resolved",
		"title", q.Title,
		"k", q.K,
		"outcome", result.Outcome.String(),
		"items", len(result.Items),
	)
	if result.IsFailure() {
		c.logger.Warn("search failed", "title", q.Title, "message", result.Message)
	}

	if c.recorder != nil {
		if err := c.recorder.Record(q, result); err != nil {
			c.logger.Warn("failed to record search", "title", q.Title, "error", err)
		}
	}
}

// Search runs a whole search: Begin, Fetch and Resolve.
// It returns an error only when the input is rejected.
func (c *Controller) Search(ctx context.Context, title string, k int) error {
	q, err := c.Begin(title, k)
	if err != nil {
		return err
	}
	c.Resolve(q, c.Fetch(ctx, q))
	return nil
}

// SelectCard returns the query a click on card index should issue: the
// card's title with the currently selected k. The caller starts the search
// with Begin so the cascade goes through the same validation.
func (c *Controller) SelectCard(index, k int) (domain.SearchQuery, error) {
	c.mu.Lock()
	row := c.view.Row
	c.mu.Unlock()

	if row == nil || index < 0 || index >= len(row.Cards) {
		return domain.SearchQuery{}, fmt.Errorf("no card at index %d", index)
	}
	return domain.NewSearchQuery(row.Cards[index].Title, k)
}

// DismissNotice clears the current notice, leaving content untouched
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Notice = Notice{}
}
