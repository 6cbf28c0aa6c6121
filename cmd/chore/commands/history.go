package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/chore/internal/app"
)

func (c *CLI) newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the last outcome of every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			clearRuns, _ := cmd.Flags().GetBool("clear")
			return c.app.History(cmd.Context(), app.HistoryOptions{
				ConfigPath: configPath,
				Clear:      clearRuns,
			})
		},
	}
	cmd.Flags().Bool("clear", false, "Remove the recorded runs")
	return cmd
}
