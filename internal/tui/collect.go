// Package tui provides Bubble Tea front-ends for answering question sets and
// viewing transcripts.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/qna/internal/prompt"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	answeredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// CollectModel drives a prompt.Collector from keyboard input. Each Enter
// records the current input line as the answer to the pending question.
type CollectModel struct {
	title     string
	collector *prompt.Collector
	input     textinput.Model
	question  string
	err       error
	width     int
}

// NewCollect starts c and returns a model asking its first question.
func NewCollect(title string, c *prompt.Collector) (CollectModel, error) {
	q, err := c.Begin()
	if err != nil {
		return CollectModel{}, err
	}
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "type your answer"
	ti.Focus()
	return CollectModel{
		title:     title,
		collector: c,
		input:     ti,
		question:  q,
	}, nil
}

// ── Bubble Tea interface ───────────────

func (m CollectModel) Init() tea.Cmd { return textinput.Blink }

func (m CollectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.collector.Abort()
			return m, tea.Quit
		case tea.KeyEnter:
			next, done, err := m.collector.Record(m.input.Value())
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.input.Reset()
			if done {
				return m, tea.Quit
			}
			m.question = next
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m CollectModel) View() string {
	var sb strings.Builder

	title := "  qna"
	if m.title != "" {
		title += "  " + m.title
	}
	if m.width > 0 {
		sb.WriteString(titleStyle.Width(m.width).Render(title))
	} else {
		sb.WriteString(titleStyle.Render(title))
	}
	sb.WriteString("\n\n")

	questions := m.collector.Questions()
	for i, a := range m.collector.Answers() {
		shown := a
		if shown == "" {
			shown = dimStyle.Render("(blank)")
		} else {
			shown = answerStyle.Render(shown)
		}
		sb.WriteString(answeredStyle.Render("  "+strings.TrimSpace(questions[i])) + "  " + shown + "\n")
	}

	if m.collector.State() == prompt.StateAwaiting {
		counter := counterStyle.Render(fmt.Sprintf("[%d/%d]", m.collector.Index()+1, len(questions)))
		sb.WriteString("\n  " + counter + " " + questionStyle.Render(strings.TrimSpace(m.question)) + "\n")
		sb.WriteString("  " + m.input.View() + "\n")
	}

	sb.WriteString("\n" + hintStyle.Render("  enter answer  esc quit") + "\n")
	return sb.String()
}

// Err returns the error that stopped the model, if any.
func (m CollectModel) Err() error { return m.err }

// RunCollect runs c interactively and returns its answers. It returns
// prompt.ErrAborted if the user quits before answering every question.
func RunCollect(title string, c *prompt.Collector) ([]string, error) {
	m, err := NewCollect(title, c)
	if err != nil {
		return nil, err
	}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		c.Abort()
		return nil, err
	}
	if fm, ok := final.(CollectModel); ok && fm.err != nil {
		return nil, fm.err
	}
	if c.State() != prompt.StateComplete {
		c.Abort()
		return nil, prompt.ErrAborted
	}
	return c.Answers(), nil
}
