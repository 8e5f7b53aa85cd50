// Package tui is an interactive hand evaluator.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/wildpoker/internal/display"
	"github.com/lox/wildpoker/poker"
)

const helpText = "enter 5-7 cards (e.g. TD TC 5H 5C 7C ?R ?B) · clear · quit"

// Entry is one evaluated line of input.
type Entry struct {
	Input  string
	Result poker.Result
	Err    error
}

// Model is the Bubble Tea model for the interactive evaluator
type Model struct {
	logger  *log.Logger
	input   textinput.Model
	history viewport.Model
	entries []Entry

	width    int
	height   int
	quitting bool
}

// New creates a new evaluator model
func New(logger *log.Logger) *Model {
	vp := viewport.New(80, 10)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "TD TC 5H 5C 7C ?R ?B"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 60
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = inputStyle

	return &Model{
		logger:  logger.WithPrefix("tui"),
		input:   ti,
		history: vp,
	}
}

// Run starts the interactive program and blocks until the user quits.
func Run(logger *log.Logger) error {
	_, err := tea.NewProgram(New(logger), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if cmd := m.submit(line); cmd != nil {
				return m, cmd
			}
			return m, nil
		case "pgup":
			m.history.HalfPageUp()
			return m, nil
		case "pgdown":
			m.history.HalfPageDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles one line of input.
func (m *Model) submit(line string) tea.Cmd {
	switch strings.ToLower(line) {
	case "":
		return nil
	case "quit", "exit":
		m.quitting = true
		return tea.Quit
	case "clear":
		m.entries = nil
		m.refresh()
		return nil
	}

	result, err := poker.Evaluate(strings.Fields(line))
	if err != nil {
		m.logger.Debug("Rejected hand", "input", line, "error", err)
	} else {
		m.logger.Debug("Evaluated hand", "input", line, "category", result.Category())
	}
	m.entries = append(m.entries, Entry{Input: line, Result: result, Err: err})
	m.refresh()
	return nil
}

// Entries returns the evaluated lines, oldest first.
func (m *Model) Entries() []Entry {
	return m.entries
}

func (m *Model) resize() {
	w := m.width - 2
	h := m.height - 6 // title, input and borders
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.history.Width = w
	m.history.Height = h
	m.input.Width = max(w-len(m.input.Prompt), 1)
	m.refresh()
}

func (m *Model) refresh() {
	m.history.SetContent(m.renderHistory())
	m.history.GotoBottom()
}

func (m *Model) renderHistory() string {
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("> " + e.Input))
		b.WriteString("\n")
		if e.Err != nil {
			b.WriteString(display.Error(e.Err))
			continue
		}
		b.WriteString(display.Result(e.Result))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(display.Describe(e.Result)))
	}
	return b.String()
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.Render("wildpoker")
	pane := paneStyle.Render(m.history.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		pane,
		m.input.View(),
		helpStyle.Render(helpText),
	)
}
