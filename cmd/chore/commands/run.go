package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tasks...]",
		Short: "Run tasks and their prerequisites",
		Long: "Run tasks and their prerequisites.\n\n" +
			"Use this form for tasks whose names collide with a chore subcommand.",
		Args: cobra.ArbitraryArgs,
		RunE: c.runTargets,
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Print the commands without running them")
	return cmd
}
