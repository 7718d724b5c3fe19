package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/qna/internal/transcript"
)

var (
	historyFollow bool
	historyDelete string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved transcripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := transcript.NewStore(GetConfig().TranscriptDir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if historyDelete != "" {
			if _, err := store.Load(historyDelete); err != nil {
				return err
			}
			if err := store.Delete(historyDelete); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted transcript %s\n", historyDelete)
			return nil
		}

		list, err := store.List()
		if err != nil {
			return err
		}

		if len(list) == 0 && !historyFollow {
			fmt.Fprintln(out, "no saved transcripts")
			return nil
		}
		if len(list) > 0 {
			printHistory(out, list)
		}
		if !historyFollow {
			return nil
		}

		dir := GetConfig().TranscriptDir
		if dir == "" {
			if dir, err = transcript.DefaultDir(); err != nil {
				return err
			}
		}
		fmt.Fprintln(out, "Waiting for new transcripts (ctrl+c to stop)…")
		return transcript.Follow(cmd.Context(), dir, func(t *transcript.Transcript) {
			fmt.Fprintln(out, historyLine(t))
		})
	},
}

func printHistory(w io.Writer, list []*transcript.Transcript) {
	var rows [][]string
	for _, t := range list {
		rows = append(rows, []string{
			t.ID,
			t.Set,
			t.StartTime.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", len(t.Entries)),
			t.Duration().Round(time.Second).String(),
		})
	}
	tbl := table.New().
		Headers("ID", "SET", "STARTED", "ANSWERS", "DURATION").
		Rows(rows...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(w, tbl.String())
}

func historyLine(t *transcript.Transcript) string {
	return fmt.Sprintf("%s  %s  %s  %d answers",
		t.StartTime.Local().Format("2006-01-02 15:04:05"), t.ID, t.Set, len(t.Entries))
}

func init() {
	historyCmd.Flags().BoolVarP(&historyFollow, "follow", "f", false, "keep running and print transcripts as they are saved")
	historyCmd.Flags().StringVar(&historyDelete, "delete", "", "delete the transcript with this ID")
	historyCmd.MarkFlagsMutuallyExclusive("follow", "delete")
	rootCmd.AddCommand(historyCmd)
}
