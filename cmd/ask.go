package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/qna/internal/prompt"
	"github.com/fakeyudi/qna/internal/questions"
	"github.com/fakeyudi/qna/internal/transcript"
	"github.com/fakeyudi/qna/internal/tui"
)

var (
	askSet    string
	askFile   string
	askFormat string
	askSave   bool
	askEvents bool
	askPlain  bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask a question set (or the given questions) and print the answers",
	Long: `Ask each question in order, waiting for one line of input per question.
Answers are trimmed; an empty line is a valid answer.

With no arguments the configured default set is asked. Use --set to pick
another set and --file to load sets from a YAML file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := resolveSet(args)
		if err != nil {
			return err
		}

		format := GetConfig().DefaultFormat
		if cmd.Flags().Changed("format") {
			format = askFormat
		}
		renderer, err := transcript.RendererFor(format)
		if err != nil {
			return err
		}

		prof := GetProfile()
		save := prof.SaveTranscripts
		if cmd.Flags().Changed("save") {
			save = askSave
		}

		out := cmd.OutOrStdout()

		c, err := prompt.New(set.Questions, func(answers []string) {
			logger.Debug("all questions answered", "set", set.Name, "answers", len(answers))
		}, prompt.WithLogger(logger))
		if err != nil {
			return err
		}

		rec := transcript.NewRecorder(set.Name, prof.Name)
		rec.Attach(c.Events())
		if askEvents {
			c.Events().SubscribeAll(func(e prompt.Event) { printEvent(cmd.ErrOrStderr(), e) })
		}

		var answers []string
		if !askPlain && prof.Interface == "tui" && stdinIsTerminal() {
			answers, err = tui.RunCollect(set.Name, c)
		} else {
			answers, err = c.Run(cmd.Context(), prompt.NewLineChannel(cmd.InOrStdin(), out))
			fmt.Fprintln(out)
		}
		if err != nil {
			return err
		}
		finished := rec.Transcript()

		if format == "" || format == "plain" || format == "text" {
			thanks, err := set.RenderThanks(answers)
			if err != nil {
				return err
			}
			if thanks == "" {
				thanks = "Thank you for your answers."
			}
			fmt.Fprintln(out, thanks)
		}
		data, err := renderer.Render(finished)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}

		if save {
			store, err := transcript.NewStore(GetConfig().TranscriptDir)
			if err != nil {
				return err
			}
			if err := store.Save(finished); err != nil {
				return err
			}
			cmd.PrintErrf("Saved transcript %s\n", finished.ID)
		}
		return nil
	},
}

// resolveSet returns the ad-hoc set built from args, or the named set from
// the registry.
func resolveSet(args []string) (questions.Set, error) {
	if len(args) > 0 {
		qs := make([]string, len(args))
		for i, a := range args {
			qs[i] = strings.TrimRight(a, " ") + " "
		}
		s := questions.Set{Name: "adhoc", Questions: qs}
		return s, s.Validate()
	}

	reg, err := loadRegistry()
	if err != nil {
		return questions.Set{}, err
	}
	if askFile != "" {
		sets, err := questions.LoadFile(askFile)
		if err != nil {
			return questions.Set{}, err
		}
		reg.Add(sets...)
		// A file with a single set needs no --set.
		if askSet == "" && len(sets) == 1 {
			return sets[0], nil
		}
	}

	name := askSet
	if name == "" {
		name = GetConfig().DefaultSet
	}
	return reg.Get(name)
}

func printEvent(w io.Writer, e prompt.Event) {
	switch e.Type {
	case prompt.EventAnswer:
		fmt.Fprintf(w, "answer[%d]: %q\n", e.Index, e.Answer)
	case prompt.EventComplete:
		fmt.Fprintf(w, "complete: %q\n", e.Answers)
	}
}

func init() {
	askCmd.Flags().StringVarP(&askSet, "set", "s", "", "question set to ask (default from config)")
	askCmd.Flags().StringVarP(&askFile, "file", "f", "", "YAML file with additional question sets")
	askCmd.Flags().StringVar(&askFormat, "format", "plain", "output format: plain, json or markdown")
	askCmd.Flags().BoolVar(&askSave, "save", false, "save a transcript of the run (default from profile)")
	askCmd.Flags().BoolVar(&askEvents, "events", false, "print each answer event to stderr as it arrives")
	askCmd.Flags().BoolVar(&askPlain, "plain", false, "use the line prompt even on a terminal")
	rootCmd.AddCommand(askCmd)
}
