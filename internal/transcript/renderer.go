package transcript

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	markdownSentinel   = "<!-- qna-transcript-version: 1 -->"
	markdownDataPrefix = "<!-- qna-data: "
	markdownDataSuffix = " -->"
)

// Renderer serializes a Transcript to bytes.
type Renderer interface {
	Render(t *Transcript) ([]byte, error)
}

// RendererFor returns the renderer for format: "json", "markdown" or
// "plain".
func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "json":
		return &JSONRenderer{}, nil
	case "markdown", "md":
		return &MarkdownRenderer{}, nil
	case "plain", "text", "":
		return &PlainRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want plain, json or markdown)", format)
}

// JSONRenderer renders a Transcript as indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(t *Transcript) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// PlainRenderer renders one "question answer" pair per line.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(t *Transcript) ([]byte, error) {
	var sb strings.Builder
	for _, e := range t.Entries {
		fmt.Fprintf(&sb, "%s %s\n", strings.TrimRight(e.Question, " "), e.Answer)
	}
	return []byte(sb.String()), nil
}

// MarkdownRenderer renders a Transcript as human-readable Markdown with an
// embedded base64 JSON payload for lossless parsing.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(t *Transcript) ([]byte, error) {
	jsonBytes, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(jsonBytes)

	var sb strings.Builder
	sb.WriteString(markdownSentinel + "\n")
	fmt.Fprintf(&sb, "%s%s%s\n\n", markdownDataPrefix, encoded, markdownDataSuffix)

	title := t.Set
	if title == "" {
		title = "answers"
	}
	fmt.Fprintf(&sb, "# %s — %s\n\n", title, t.StartTime.Format("2006-01-02 15:04:05 MST"))

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- ID: %s\n", t.ID)
	if t.Respondent != "" {
		fmt.Fprintf(&sb, "- Respondent: %s\n", t.Respondent)
	}
	fmt.Fprintf(&sb, "- Questions: %d\n", len(t.Entries))
	fmt.Fprintf(&sb, "- Duration: %s\n\n", t.Duration().Round(time.Second))

	sb.WriteString("## Answers\n\n")
	if len(t.Entries) == 0 {
		sb.WriteString("_No answers recorded._\n")
	} else {
		sb.WriteString("| # | Question | Answer |\n")
		sb.WriteString("|---|----------|--------|\n")
		for i, e := range t.Entries {
			fmt.Fprintf(&sb, "| %d | %s | %s |\n", i+1, cell(e.Question), cell(e.Answer))
		}
	}
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}

// cell escapes a value for a Markdown table cell.
func cell(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "_(blank)_"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
