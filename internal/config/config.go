package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds all configurable qna settings.
type Config struct {
	DefaultSet    string   `json:"default_set"`
	DefaultFormat string   `json:"default_format"` // "plain" | "json" | "markdown"
	QuestionFiles []string `json:"question_files"` // YAML question set files
	TranscriptDir string   `json:"transcript_dir"` // empty = XDG data dir
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		DefaultSet:    "intro",
		DefaultFormat: "plain",
		QuestionFiles: []string{},
	}
}

// Dir returns the qna config directory, ~/.config/qna.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qna"), nil
}

// LoadGlobal reads ~/.config/qna/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return loadFile(filepath.Join(dir, "config.json"), true)
}

// LoadProject reads .qnaconfig in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".qnaconfig", false)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()
	for _, c := range []*Config{global, project} {
		if c == nil {
			continue
		}
		if c.DefaultSet != "" {
			result.DefaultSet = c.DefaultSet
		}
		if c.DefaultFormat != "" {
			result.DefaultFormat = c.DefaultFormat
		}
		if c.TranscriptDir != "" {
			result.TranscriptDir = c.TranscriptDir
		}
		if len(c.QuestionFiles) > 0 {
			result.QuestionFiles = c.QuestionFiles
		}
	}
	return result
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
