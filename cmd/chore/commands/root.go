// Package commands implements the CLI commands for chore.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/chore/internal/app"
	"go.trai.ch/chore/internal/build"
)

// CLI represents the command line interface for chore.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, targetNames []string, opts app.RunOptions) error
	List(ctx context.Context, opts app.ListOptions) error
	History(ctx context.Context, opts app.HistoryOptions) error
	SetLogJSON(enabled bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "chore [tasks...]",
		Short: "Run the tasks declared in chore.yaml",
		Long: "Run the tasks declared in chore.yaml.\n\n" +
			"Each task runs its prerequisites first, left to right, then its own commands in order.\n" +
			"The first failing command stops the run and its exit code becomes chore's exit code.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logJSON, _ := cmd.Flags().GetBool("log-json")
			c.app.SetLogJSON(logJSON)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTargets(cmd, args)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the task file (default: search for chore.yaml upwards)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write log messages as JSON")
	rootCmd.Flags().BoolP("dry-run", "n", false, "Print the commands without running them")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newHistoryCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// runTargets is shared by the root command and the run subcommand.
func (c *CLI) runTargets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		// Display command usage help without returning an error
		_ = cmd.Help()
		return nil
	}

	configPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	return c.app.Run(cmd.Context(), args, app.RunOptions{
		ConfigPath: configPath,
		DryRun:     dryRun,
	})
}
