package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List the available question sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		var rows [][]string
		for _, name := range reg.Names() {
			s, err := reg.Get(name)
			if err != nil {
				return err
			}
			marker := ""
			if name == GetConfig().DefaultSet {
				marker = "*"
			}
			rows = append(rows, []string{marker + name, fmt.Sprintf("%d", len(s.Questions)), s.Description})
		}

		t := table.New().
			Headers("SET", "QUESTIONS", "DESCRIPTION").
			Rows(rows...).
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return lipgloss.NewStyle().Bold(true).Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})

		fmt.Fprintln(cmd.OutOrStdout(), t.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setsCmd)
}
