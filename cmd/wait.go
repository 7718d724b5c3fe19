package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/qna/internal/timer"
)

var (
	waitSeconds  float64
	waitInterval time.Duration
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for a while, showing progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		total := time.Duration(waitSeconds * float64(time.Second))
		return timer.Progress(cmd.Context(), cmd.OutOrStdout(), total, waitInterval)
	},
}

func init() {
	waitCmd.Flags().Float64Var(&waitSeconds, "seconds", 5, "total time to wait, in seconds")
	waitCmd.Flags().DurationVar(&waitInterval, "interval", 500*time.Millisecond, "progress update interval")
	rootCmd.AddCommand(waitCmd)
}
