package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/streampick/internal/controller"
	"github.com/mmcdole/streampick/internal/domain"
	"github.com/mmcdole/streampick/internal/service"
	"github.com/mmcdole/streampick/internal/tui/components"
)

// PosterOpener opens a poster URL outside the terminal
type PosterOpener interface {
	Open(url string) error
}

// Options configures the model
type Options struct {
	DefaultTitle string // Searched on startup, empty to skip
	DefaultK     int
	KChoices     []int
	CardWidth    int
}

// Model is the main Bubble Tea model for the application.
//
// The controller owns search state and the rendered view; the model only
// wires input to it and draws what it projects. Update runs on a single
// goroutine and each request runs as its own command, so results are
// applied in the order they arrive.
type Model struct {
	Ready bool

	// Services
	Controller *controller.Controller
	History    *service.HistoryService // nil disables suggestions
	Opener     PosterOpener            // nil disables poster opening

	// UI Components
	SearchBar components.SearchBar
	Row       components.CardRow

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	InFlight     int // Requests started but not yet resolved
	SpinnerFrame int
	Hints        []string // Earlier searches resembling a title that found nothing

	opts Options
}

// NewModel creates a new application model
func NewModel(
	ctrl *controller.Controller,
	history *service.HistoryService,
	opener PosterOpener,
	opts Options,
) Model {
	return Model{
		Controller: ctrl,
		History:    history,
		Opener:     opener,
		SearchBar:  components.NewSearchBar(opts.KChoices, opts.DefaultK),
		Row:        components.NewCardRow(opts.CardWidth),
		opts:       opts,
	}
}

// Init runs the default search and starts the spinner
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(100 * time.Millisecond)}
	if m.opts.DefaultTitle != "" {
		cmds = append(cmds, RequestSearchCmd(m.opts.DefaultTitle, m.SearchBar.K()))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(100 * time.Millisecond)

	case SearchRequestMsg:
		m.SearchBar.SetValue(msg.Title)
		return m, m.startSearch(msg.Title, msg.K)

	case SearchResolvedMsg:
		m.applyResult(msg.Query, msg.Result)
		return m, nil

	case PosterOpenedMsg:
		m.StatusMsg = "Opened poster"
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Forward everything else (cursor blink) to the search field
	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	return m, cmd
}

// startSearch validates and issues a search. Rejected input leaves the
// current content as it is; the controller raises a prompt instead.
func (m *Model) startSearch(title string, k int) tea.Cmd {
	q, err := m.Controller.Begin(title, k)
	if err != nil {
		return nil
	}
	m.InFlight++
	m.Hints = nil
	return SearchCmd(m.Controller, q)
}

// applyResult hands a resolved request to the controller and syncs the
// card row with the new projection.
func (m *Model) applyResult(q domain.SearchQuery, result domain.Result) {
	if m.InFlight > 0 {
		m.InFlight--
	}
	m.Controller.Resolve(q, result)

	if result.IsFailure() {
		// Content stays as it was; only the notice changes
		return
	}

	m.Row.SetRow(m.Controller.View().Row)
	m.Hints = nil
	if result.IsEmpty() && m.History != nil {
		m.Hints = m.History.Similar(q.Title, 3)
	}
	m.refreshSuggestions()
}

// selectCard cascades: the highlighted card's title becomes the new search,
// using the result count selected right now.
func (m *Model) selectCard() tea.Cmd {
	q, err := m.Controller.SelectCard(m.Row.Cursor(), m.SearchBar.K())
	if err != nil {
		slog.Debug("card selection ignored", "error", err)
		return nil
	}
	m.SearchBar.SetValue(q.Title)
	return m.startSearch(q.Title, q.K)
}

// openPoster opens the highlighted card's poster, or the hero's
func (m Model) openPoster() tea.Cmd {
	if m.Opener == nil {
		return nil
	}
	url := m.Controller.View().Hero.PosterURL
	if card, ok := m.Row.Selected(); ok {
		url = card.PosterURL
	}
	if url == "" {
		return nil
	}
	return OpenPosterCmd(m.Opener, url)
}

func (m *Model) refreshSuggestions() {
	if m.History == nil {
		return
	}
	m.SearchBar.SetSuggestions(m.History.Suggest(m.SearchBar.Value(), 3))
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	// A notice holds input until it is dismissed
	if m.Controller.View().Notice.Kind != controller.NoticeNone {
		if key.Matches(msg, Keys.Escape, Keys.Enter) {
			m.Controller.DismissNotice()
		}
		return m, nil
	}

	if m.SearchBar.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Focus):
		m.refreshSuggestions()
		return m, m.SearchBar.Focus()

	case key.Matches(msg, Keys.Left):
		m.Row.MoveLeft()
		return m, nil

	case key.Matches(msg, Keys.Right):
		m.Row.MoveRight()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		return m, m.selectCard()

	case key.Matches(msg, Keys.MoreK):
		m.SearchBar.NextK()
		return m, nil

	case key.Matches(msg, Keys.FewerK):
		m.SearchBar.PrevK()
		return m, nil

	case key.Matches(msg, Keys.Repeat):
		return m, m.startSearch(m.SearchBar.Value(), m.SearchBar.K())

	case key.Matches(msg, Keys.OpenPoster):
		return m, m.openPoster()
	}

	return m, nil
}

// handleSearchKey handles keys while the search field has focus
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		m.SearchBar.Blur()
		return m, m.startSearch(m.SearchBar.Value(), m.SearchBar.K())

	case key.Matches(msg, Keys.Escape):
		m.SearchBar.Blur()
		return m, nil

	case key.Matches(msg, Keys.Complete):
		m.SearchBar.AcceptSuggestion()
		return m, nil
	}

	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	m.refreshSuggestions()
	return m, cmd
}

// loadingLine describes outstanding requests, or "" when there are none
func (m Model) loadingLine(frame string) string {
	if m.InFlight == 0 {
		return ""
	}
	state := m.Controller.State()
	if state.Kind == controller.StateLoading {
		return fmt.Sprintf("%s Finding picks for %s...", frame, state.Query.Title)
	}
	return fmt.Sprintf("%s Waiting on %d request(s)...", frame, m.InFlight)
}
