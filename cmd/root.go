package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/qna/internal/config"
	"github.com/fakeyudi/qna/internal/profile"
	"github.com/fakeyudi/qna/internal/questions"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// activeProfile holds the loaded user profile.
var activeProfile *profile.Profile

// logger is the diagnostics logger; user-facing output goes to cmd's writers.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

var verbose bool

var rootCmd = &cobra.Command{
	Use:          "qna",
	Short:        "Ask a list of questions one at a time and collect the answers",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		// The setup wizard and the command that follows it read the same
		// input, so they share one buffered reader.
		if _, ok := cmd.InOrStdin().(*bufio.Reader); !ok {
			cmd.Root().SetIn(bufio.NewReader(cmd.InOrStdin()))
		}

		// First-run: profile missing → run setup wizard automatically.
		// Only do this when stdin is an interactive terminal.
		if !profile.Exists() && stdinIsTerminal() {
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "  Welcome to qna! Looks like this is your first time.")
			if err := runSetup(cmd); err != nil {
				return err
			}
		}

		activeProfile = nil
		if profile.Exists() {
			p, err := profile.Load()
			if err != nil {
				return fmt.Errorf("loading profile: %w", err)
			}
			activeProfile = p
		}

		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		project, err := config.LoadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		cfg = config.Merge(global, project)

		// Profile values fill in config gaps.
		if activeProfile != nil {
			defaults := config.Defaults()
			if cfg.DefaultFormat == defaults.DefaultFormat && activeProfile.DefaultFormat != "" {
				cfg.DefaultFormat = activeProfile.DefaultFormat
			}
			if cfg.DefaultSet == defaults.DefaultSet && activeProfile.DefaultSet != "" {
				cfg.DefaultSet = activeProfile.DefaultSet
			}
		}

		logger.Debug("configuration loaded",
			"default_set", cfg.DefaultSet,
			"default_format", cfg.DefaultFormat,
			"question_files", len(cfg.QuestionFiles),
			"profile", activeProfile != nil,
		)
		return nil
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}

// GetProfile returns the active user profile, or the defaults when setup has
// not run.
func GetProfile() *profile.Profile {
	if activeProfile == nil {
		return profile.Defaults()
	}
	return activeProfile
}

// stdinIsTerminal is a variable so tests can force the non-interactive path.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(os.Stdin.Fd())
}

// loadRegistry returns the built-in question sets overlaid with every
// configured question file.
func loadRegistry() (*questions.Registry, error) {
	reg := questions.NewRegistry(questions.Builtin()...)
	for _, path := range GetConfig().QuestionFiles {
		sets, err := questions.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading question file: %w", err)
		}
		reg.Add(sets...)
		logger.Debug("question file loaded", "path", path, "sets", len(sets))
	}
	return reg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
}
