package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/qna/internal/transcript"
)

var (
	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// ViewerModel is a scrollable view of one transcript.
type ViewerModel struct {
	transcript *transcript.Transcript
	filename   string
	viewport   viewport.Model
	width      int
	height     int
	ready      bool
}

// NewViewer creates a viewer for t. filename is shown in the title bar.
func NewViewer(t *transcript.Transcript, filename string) ViewerModel {
	return ViewerModel{transcript: t, filename: filepath.Base(filename)}
}

func (m ViewerModel) Init() tea.Cmd { return nil }

func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// title(1) + statusBar(1) = 2 fixed rows
		vpHeight := m.height - 2
		if vpHeight < 1 {
			vpHeight = 1
		}
		m.viewport = viewport.New(m.width, vpHeight)
		m.viewport.SetContent(renderTranscript(m.transcript))
		m.ready = true
		return m, nil
	}
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ViewerModel) View() string {
	if !m.ready {
		return "Loading…"
	}
	title := titleStyle.Width(m.width).Render("  qna  " + m.filename)

	hint := "  ↑/↓ scroll  q quit"
	pct := fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)
	pad := m.width - lipgloss.Width(hint) - len(pct) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(hint + strings.Repeat(" ", pad) + pct)

	return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), statusBar)
}

func renderTranscript(t *transcript.Transcript) string {
	var sb strings.Builder

	sb.WriteString("\n" + sectionHeader.Render("  Summary") + "\n\n")
	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-12s", label)) + "  " + value + "\n")
	}
	if t.Set != "" {
		row("Set:", t.Set)
	}
	if t.Respondent != "" {
		row("Respondent:", t.Respondent)
	}
	row("Started:", t.StartTime.Format("2006-01-02 15:04:05 MST"))
	row("Duration:", t.Duration().Round(time.Second).String())
	row("Answers:", fmt.Sprintf("%d", len(t.Entries)))

	sb.WriteString("\n" + sectionHeader.Render(fmt.Sprintf("  Answers (%d)", len(t.Entries))) + "\n\n")
	if len(t.Entries) == 0 {
		sb.WriteString(dimStyle.Render("  (none)") + "\n")
		return sb.String()
	}
	for i, e := range t.Entries {
		ts := timeStyle.Render(e.Timestamp.Format("15:04:05"))
		answer := e.Answer
		if answer == "" {
			answer = dimStyle.Render("(blank)")
		}
		sb.WriteString(fmt.Sprintf("  %s  %s %s\n", ts, counterStyle.Render(fmt.Sprintf("%d.", i+1)), questionStyle.Render(strings.TrimSpace(e.Question))))
		sb.WriteString("              " + answer + "\n\n")
	}
	return sb.String()
}

// RunViewer starts the pager for t.
func RunViewer(t *transcript.Transcript, filename string) error {
	p := tea.NewProgram(NewViewer(t, filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
