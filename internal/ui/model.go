package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lanepos/register/internal/domain"
)

// State is the controller's position in the keystroke-to-results cycle.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateSearching
	StateShowingResults
	StateEmpty
)

// Searcher ranks the catalog against a query.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]domain.Match, error)
}

// Selector dispatches a confirmed selection.
type Selector interface {
	SelectByID(ctx context.Context, productID int64) error
}

// debounceMsg fires when the debounce window for one keystroke burst closes.
// Seq ties it to the keystroke that armed it; a stale seq means another
// keystroke arrived in the meantime and this window was superseded.
type debounceMsg struct {
	seq int
}

// resultsMsg carries the outcome of one search pass.
type resultsMsg struct {
	seq     int
	matches []domain.Match
	err     error
}

// selectedMsg carries the outcome of a confirmed selection.
type selectedMsg struct {
	name string
	err  error
}

// Model is the lane search controller. Every keystroke bumps seq and arms a
// fresh debounce window; only the window whose seq is still current when it
// fires runs a search, so a burst of typing costs exactly one search.
type Model struct {
	input    textinput.Model
	state    State
	seq      int
	matches  []domain.Match
	cursor   int
	status   string
	debounce time.Duration

	searcher Searcher
	selector Selector

	width  int
	height int
}

// New creates a controller over the given search and selection services.
func New(searcher Searcher, selector Selector, debounce time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Scan or type a product..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	if debounce <= 0 {
		debounce = 150 * time.Millisecond
	}

	return Model{
		input:    ti,
		state:    StateIdle,
		debounce: debounce,
		searcher: searcher,
		selector: selector,
	}
}

// State reports the current controller state.
func (m Model) State() State { return m.state }

// Matches reports the currently displayed result list.
func (m Model) Matches() []domain.Match { return m.matches }

// Cursor reports the index of the highlighted result.
func (m Model) Cursor() int { return m.cursor }

// Query reports the current input text.
func (m Model) Query() string { return m.input.Value() }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			m = m.reset()
			return m, nil

		case "up":
			if m.state == StateShowingResults && len(m.matches) > 0 {
				m.cursor = (m.cursor + len(m.matches) - 1) % len(m.matches)
			}
			return m, nil

		case "down":
			if m.state == StateShowingResults && len(m.matches) > 0 {
				m.cursor = (m.cursor + 1) % len(m.matches)
			}
			return m, nil

		case "enter":
			if m.state != StateShowingResults || m.cursor >= len(m.matches) {
				return m, nil
			}
			chosen := m.matches[m.cursor]
			if !chosen.Addable {
				m.status = fmt.Sprintf("%s is not available right now", chosen.Product.Name)
				return m, nil
			}
			m = m.reset()
			return m, m.selectCmd(chosen)

		default:
			before := m.input.Value()
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)

			after := m.input.Value()
			if after != before {
				m.seq++
				m.status = ""
				if strings.TrimSpace(after) == "" {
					m.state = StateIdle
					m.matches = nil
					m.cursor = 0
				} else {
					m.state = StateDebouncing
					cmds = append(cmds, m.debounceCmd(m.seq))
				}
			}
		}

	case debounceMsg:
		if msg.seq != m.seq || m.state != StateDebouncing {
			// A later keystroke superseded this window
			return m, nil
		}
		m.state = StateSearching
		return m, m.searchCmd(msg.seq, m.input.Value())

	case resultsMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.state = StateEmpty
			m.matches = nil
			m.cursor = 0
			m.status = "catalog unavailable"
			return m, nil
		}
		m.matches = msg.matches
		m.cursor = 0
		if len(m.matches) == 0 {
			m.state = StateEmpty
		} else {
			m.state = StateShowingResults
		}

	case selectedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("could not add %s", msg.name)
		} else {
			m.status = fmt.Sprintf("added %s", msg.name)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
	}

	return m, tea.Batch(cmds...)
}

// reset returns the controller to idle and invalidates any in-flight
// debounce or search by bumping seq past them.
func (m Model) reset() Model {
	m.seq++
	m.state = StateIdle
	m.matches = nil
	m.cursor = 0
	m.input.SetValue("")
	return m
}

func (m Model) debounceCmd(seq int) tea.Cmd {
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

func (m Model) searchCmd(seq int, query string) tea.Cmd {
	searcher := m.searcher
	return func() tea.Msg {
		matches, err := searcher.Search(context.Background(), query, 0)
		return resultsMsg{seq: seq, matches: matches, err: err}
	}
}

func (m Model) selectCmd(match domain.Match) tea.Cmd {
	selector := m.selector
	return func() tea.Msg {
		if selector == nil {
			return selectedMsg{name: match.Product.Name}
		}
		err := selector.SelectByID(context.Background(), match.Product.ID)
		return selectedMsg{name: match.Product.Name, err: err}
	}
}
