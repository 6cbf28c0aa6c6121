package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/chore/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the declared tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return c.app.List(cmd.Context(), app.ListOptions{ConfigPath: configPath})
		},
	}
}
