package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dhabedank/retailer-check/internal/core"
)

// PageTitle heads the interactive page and the web page.
const PageTitle = "E-Commerce Retailer Fraud Detection"

// Searcher runs a single search. *core.Searcher implements it.
type Searcher interface {
	Search(ctx context.Context, retailer string) (*core.SearchResult, error)
}

type searchDoneMsg struct {
	result *core.SearchResult
	err    error
}

// SearchModel is a Bubble Tea model for the interactive search page: one
// text input, a spinner while the completion service answers, then the
// two-column details, a warning, or an error.
type SearchModel struct {
	ctx       context.Context
	searcher  Searcher
	input     textinput.Model
	spinner   spinner.Model
	searching bool
	result    *core.SearchResult
	warning   string
	err       error
	width     int
	quitting  bool
}

// NewSearchModel creates the interactive search page.
func NewSearchModel(ctx context.Context, searcher Searcher) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search"
	ti.Prompt = "Retailer Name: "
	ti.CharLimit = 200
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return SearchModel{
		ctx:      ctx,
		searcher: searcher,
		input:    ti,
		spinner:  s,
		width:    DefaultWidth,
	}
}

// Init implements tea.Model.
func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if m.searching {
				return m, nil
			}
			// Each search replaces whatever the previous one showed.
			m.result = nil
			m.warning = ""
			m.err = nil

			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				m.warning = core.ErrEmptyRetailer
				return m, nil
			}
			m.searching = true
			return m, tea.Batch(m.spinner.Tick, m.search(query))
		}

	case searchDoneMsg:
		m.searching = false
		m.result = nil
		var inputErr *core.InputError
		switch {
		case errors.As(msg.err, &inputErr):
			m.warning = inputErr.Message
		case msg.err != nil:
			m.err = msg.err
		default:
			m.result = msg.result
		}
		return m, nil

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m SearchModel) search(query string) tea.Cmd {
	ctx, searcher := m.ctx, m.searcher
	return func() tea.Msg {
		result, err := searcher.Search(ctx, query)
		return searchDoneMsg{result: result, err: err}
	}
}

// View implements tea.Model.
func (m SearchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + TitleStyle.Render(PageTitle) + "\n\n")
	b.WriteString(InputBoxStyle.Render(m.input.View()) + "\n\n")

	switch {
	case m.searching:
		b.WriteString(m.spinner.View() + " " + SearchingMessage + "\n")
	case m.warning != "":
		b.WriteString(RenderWarning(m.warning) + "\n")
	case m.err != nil:
		b.WriteString(RenderError(m.err) + "\n")
	case m.result != nil:
		b.WriteString(RenderResult(m.result, m.width) + "\n")
	}

	b.WriteString(HelpStyle.Render("\n  enter: search • esc: quit"))
	return b.String()
}

// Result returns the records currently shown, if any.
func (m SearchModel) Result() *core.SearchResult {
	return m.result
}
