// Package profile manages the user's persistent qna profile.
// The profile is stored at ~/.config/qna/profile.json and is created once via
// the interactive setup flow, then referenced on every command.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fakeyudi/qna/internal/prompt"
)

// Profile holds user-level preferences set during first-run setup.
type Profile struct {
	Name            string `json:"name"`
	DefaultFormat   string `json:"default_format"`   // "plain" | "json" | "markdown"
	DefaultSet      string `json:"default_set"`      // question set used by `qna ask`
	SaveTranscripts bool   `json:"save_transcripts"` // save every completed run
	Interface       string `json:"interface"`        // "line" | "tui"
}

// Defaults returns the profile used before setup has run.
func Defaults() *Profile {
	return &Profile{
		DefaultFormat:   "plain",
		DefaultSet:      "intro",
		SaveTranscripts: true,
		Interface:       "line",
	}
}

// profilePath returns the path to the profile file.
func profilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qna", "profile.json"), nil
}

// Exists reports whether a profile file is present on disk.
func Exists() bool {
	p, err := profilePath()
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Load reads the profile from disk. Returns an error if the file is missing or malformed.
func Load() (*Profile, error) {
	p, err := profilePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("profile not found, run 'qna setup' to configure: %w", err)
	}
	var prof Profile
	if err := json.Unmarshal(data, &prof); err != nil {
		return nil, fmt.Errorf("malformed profile at %s: %w", p, err)
	}
	return &prof, nil
}

// Save writes the profile to disk, creating the config directory if needed.
func Save(prof *Profile) error {
	p, err := profilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

// RunSetup asks the setup questions over r/w and returns the resulting
// profile. If existing is non-nil its values are offered as defaults (edit
// mode); an empty answer keeps the default.
func RunSetup(ctx context.Context, r io.Reader, w io.Writer, existing *Profile) (*Profile, error) {
	prof := Defaults()
	if existing != nil {
		*prof = *existing
	}

	ask := func(label, def string) string {
		if def != "" {
			return fmt.Sprintf("  %s [%s]: ", label, def)
		}
		return fmt.Sprintf("  %s: ", label)
	}
	questions := []string{
		ask("Your name (shown in transcripts)", prof.Name),
		ask("Default output format (plain/json/markdown)", prof.DefaultFormat),
		ask("Default question set", prof.DefaultSet),
		ask("Save transcripts of completed runs (y/n)", yesNo(prof.SaveTranscripts)),
		ask("Interface (line/tui)", prof.Interface),
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  ┌─────────────────────────────┐")
	fmt.Fprintln(w, "  │      qna — profile setup    │")
	fmt.Fprintln(w, "  └─────────────────────────────┘")
	fmt.Fprintln(w)

	c, err := prompt.New(questions, nil)
	if err != nil {
		return nil, err
	}
	answers, err := c.Run(ctx, prompt.NewLineChannel(r, w))
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(w)

	or := func(answer, def string) string {
		if answer == "" {
			return def
		}
		return answer
	}

	prof.Name = or(answers[0], prof.Name)

	switch strings.ToLower(or(answers[1], prof.DefaultFormat)) {
	case "json":
		prof.DefaultFormat = "json"
	case "markdown", "md":
		prof.DefaultFormat = "markdown"
	default:
		prof.DefaultFormat = "plain"
	}

	prof.DefaultSet = or(answers[2], prof.DefaultSet)

	save := strings.ToLower(or(answers[3], yesNo(prof.SaveTranscripts)))
	prof.SaveTranscripts = save == "y" || save == "yes"

	if strings.ToLower(or(answers[4], prof.Interface)) == "tui" {
		prof.Interface = "tui"
	} else {
		prof.Interface = "line"
	}

	return prof, nil
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}
