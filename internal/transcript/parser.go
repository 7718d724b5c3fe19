package transcript

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Parser deserializes a rendered transcript.
type Parser interface {
	Parse(data []byte) (*Transcript, error)
}

// ParserFor picks a parser from the file extension: .json is parsed as JSON,
// anything else as Markdown.
func ParserFor(path string) Parser {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return &JSONParser{}
	}
	return &MarkdownParser{}
}

// JSONParser parses a JSON-encoded Transcript.
type JSONParser struct{}

func (p *JSONParser) Parse(data []byte) (*Transcript, error) {
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse JSON transcript: %w", err)
	}
	return &t, nil
}

// MarkdownParser extracts the embedded payload from a Markdown transcript.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(data []byte) (*Transcript, error) {
	content := string(data)

	if !strings.Contains(content, markdownSentinel) {
		return nil, fmt.Errorf("not a qna transcript: missing version sentinel")
	}

	start := strings.Index(content, markdownDataPrefix)
	if start == -1 {
		return nil, fmt.Errorf("not a qna transcript: missing data payload")
	}
	start += len(markdownDataPrefix)
	end := strings.Index(content[start:], markdownDataSuffix)
	if end == -1 {
		return nil, fmt.Errorf("not a qna transcript: malformed data payload")
	}

	jsonBytes, err := base64.StdEncoding.DecodeString(content[start : start+end])
	if err != nil {
		return nil, fmt.Errorf("not a qna transcript: corrupted base64 payload: %w", err)
	}

	var t Transcript
	if err := json.Unmarshal(jsonBytes, &t); err != nil {
		return nil, fmt.Errorf("not a qna transcript: failed to parse embedded JSON: %w", err)
	}
	return &t, nil
}
