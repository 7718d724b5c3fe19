package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/qna/internal/transcript"
)

func TestViewerRendersAfterResize(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tr := &transcript.Transcript{
		ID:        "1",
		Set:       "intro",
		StartTime: start,
		EndTime:   start.Add(time.Minute),
		Entries: []transcript.Entry{
			{Question: "What is your name? ", Answer: "Rahul", Timestamp: start},
			{Question: "Where do you live? ", Answer: "", Timestamp: start},
		},
	}

	m := NewViewer(tr, "/tmp/x/abc.md")
	if m.View() != "Loading…" {
		t.Errorf("view before resize = %q", m.View())
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	view := updated.(ViewerModel).View()
	for _, want := range []string{"abc.md", "intro", "What is your name?", "Rahul", "(blank)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	_, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("expected quit command on q")
	}
}
