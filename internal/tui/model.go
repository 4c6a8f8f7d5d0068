// Package tui implements the interactive debug client of SPEC_FULL §4.11:
// a bubbletea program showing live completions as the operator types,
// the interactive analogue of a line-oriented debug CLI upgraded to a
// real TUI.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lexiserve/lexiserve/internal/utils"
)

// DefaultLimit caps how many completions the debug client requests per
// keystroke.
const DefaultLimit = 15

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().
			Faint(true)
)

type completionItem string

func (i completionItem) Title() string       { return string(i) }
func (i completionItem) Description() string { return "" }
func (i completionItem) FilterValue() string { return string(i) }

type resultsMsg struct {
	query string
	items []string
	err   error
}

// Model is the bubbletea model driving the debug client.
type Model struct {
	client Client
	input  textinput.Model
	list   list.Model
	status string
	err    error
}

// NewModel builds a Model against client.
func NewModel(client Client) Model {
	ti := textinput.New()
	ti.Placeholder = "type a query..."
	ti.Focus()
	ti.CharLimit = 50

	l := list.New(nil, list.NewDefaultDelegate(), 40, 20)
	l.Title = "completions"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	return Model{client: client, input: ti, list: l}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		query := m.input.Value()
		return m, tea.Batch(cmd, m.queryCmd(query))

	case resultsMsg:
		if msg.query != m.input.Value() {
			// stale response for a query the operator has already moved past
			return m, nil
		}
		m.err = msg.err
		items := make([]list.Item, len(msg.items))
		for i, s := range msg.items {
			items[i] = completionItem(s)
		}
		m.list.SetItems(items)
		if msg.err != nil {
			m.status = fmt.Sprintf("error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("%s results", utils.FormatWithCommas(len(msg.items)))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-6)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) queryCmd(query string) tea.Cmd {
	return func() tea.Msg {
		if query == "" {
			return resultsMsg{query: query}
		}
		items, err := m.client.BestCompletions(query, DefaultLimit)
		return resultsMsg{query: query, items: items, err: err}
	}
}

func (m Model) View() string {
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n%s",
		titleStyle.Render("lexiserve debug client"),
		m.input.View(),
		m.list.View(),
		statusStyle.Render(m.status),
	)
}

// Run starts the bubbletea program against client and blocks until the
// operator quits.
func Run(client Client) error {
	p := tea.NewProgram(NewModel(client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
