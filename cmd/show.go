package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/qna/internal/transcript"
	"github.com/fakeyudi/qna/internal/tui"
)

var (
	showPlain  bool
	showFormat string
)

var showCmd = &cobra.Command{
	Use:   "show <id|file>",
	Short: "Show a saved transcript or a rendered transcript file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, source, err := loadTranscript(args[0])
		if err != nil {
			return err
		}

		if !showPlain && showFormat == "" && stdinIsTerminal() {
			return tui.RunViewer(t, source)
		}

		format := showFormat
		if format == "" {
			format = "markdown"
		}
		renderer, err := transcript.RendererFor(format)
		if err != nil {
			return err
		}
		data, err := renderer.Render(t)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// loadTranscript reads ref as a file path if one exists, otherwise as a
// transcript ID in the store.
func loadTranscript(ref string) (*transcript.Transcript, string, error) {
	data, err := os.ReadFile(ref)
	if err == nil {
		t, err := transcript.ParserFor(ref).Parse(data)
		return t, ref, err
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, "", err
	}

	store, err := transcript.NewStore(GetConfig().TranscriptDir)
	if err != nil {
		return nil, "", err
	}
	t, err := store.Load(ref)
	if err != nil {
		if errors.Is(err, transcript.ErrNotFound) || errors.Is(err, transcript.ErrInvalidID) {
			return nil, "", fmt.Errorf("no transcript file or ID %q", ref)
		}
		return nil, "", err
	}
	return t, ref + ".json", nil
}

func init() {
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "print instead of opening the pager")
	showCmd.Flags().StringVar(&showFormat, "format", "", "print in this format: plain, json or markdown")
	rootCmd.AddCommand(showCmd)
}
