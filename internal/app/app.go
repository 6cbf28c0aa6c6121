// Package app implements the application layer for chore.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"go.trai.ch/chore/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/chore/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/chore/internal/core/domain"
	"go.trai.ch/chore/internal/core/ports"
	"go.trai.ch/chore/internal/engine/runner"
	"go.trai.ch/chore/internal/ui/output"
	"go.trai.ch/chore/internal/ui/style"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	envLoader    ports.EnvLoader
	executor     ports.Executor
	store        ports.RunStore
	logger       ports.Logger

	stdout  io.Writer
	stderr  io.Writer
	workDir string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	envLoader ports.EnvLoader,
	executor ports.Executor,
	store ports.RunStore,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		envLoader:    envLoader,
		executor:     executor,
		store:        store,
		logger:       log,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithOutput redirects task output and listings to stdout and status lines to stderr.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithWorkDir sets the directory task file discovery starts from.
// It defaults to the process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// SetLogJSON switches the logger to JSON output when it supports it.
func (a *App) SetLogJSON(enabled bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enabled)
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// ConfigPath is an explicit task file. Empty means discovery.
	ConfigPath string
	DryRun     bool
}

// Run executes the targets and their prerequisites.
func (a *App) Run(ctx context.Context, targetNames []string, opts RunOptions) error {
	tf, err := a.load(opts.ConfigPath)
	if err != nil {
		return err
	}

	if len(targetNames) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	renderer := linear.NewRenderer(a.stdout, a.stderr)

	tp := telemetry.Setup(telemetry.NewBridge(renderer))
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracer("chore").WithRenderer(renderer)

	run := runner.NewRunner(a.executor, a.envLoader, a.store, tracer, a.logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()

		if err := run.Run(ctx, tf, targetNames, runner.Options{DryRun: opts.DryRun}); err != nil {
			return errors.Join(domain.ErrRunFailed, err)
		}
		return nil
	})

	return g.Wait()
}

// ListOptions configuration for the List method.
type ListOptions struct {
	ConfigPath string
}

// List prints every task with its description and prerequisites.
func (a *App) List(_ context.Context, opts ListOptions) error {
	tf, err := a.load(opts.ConfigPath)
	if err != nil {
		return err
	}

	names := tf.Registry.Names()
	if len(names) == 0 {
		a.logger.Info(fmt.Sprintf("no tasks defined in %s", tf.Path))
		return nil
	}

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	r := output.NewRenderer(a.stdout)
	nameStyle := style.Name(r)
	muted := style.Muted(r)

	for _, name := range names {
		task, _ := tf.Registry.Lookup(name)

		var b strings.Builder
		b.WriteString(nameStyle.Render(name))
		if task.Description != "" || len(task.Prerequisites) > 0 {
			b.WriteString(strings.Repeat(" ", width-len(name)))
		}
		if task.Description != "" {
			b.WriteString("  " + task.Description)
		}
		if len(task.Prerequisites) > 0 {
			b.WriteString("  " + muted.Render(style.Arrow+" "+strings.Join(task.Prerequisites, ", ")))
		}
		b.WriteString("\n")

		if _, err := io.WriteString(a.stdout, b.String()); err != nil {
			return zerr.Wrap(err, "failed to write task list")
		}
	}
	return nil
}

// HistoryOptions configuration for the History method.
type HistoryOptions struct {
	ConfigPath string
	// Clear removes the recorded runs instead of printing them.
	Clear bool
}

// History prints the last recorded outcome of every task, or clears the records.
func (a *App) History(_ context.Context, opts HistoryOptions) error {
	tf, err := a.load(opts.ConfigPath)
	if err != nil {
		return err
	}

	if opts.Clear {
		if err := a.store.Clear(tf.Root); err != nil {
			return err
		}
		a.logger.Info("cleared run history")
		return nil
	}

	records, err := a.store.List(tf.Root)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		a.logger.Info("no runs recorded yet")
		return nil
	}

	r := output.NewRenderer(a.stdout)
	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TASK\tEXIT\tDURATION\tSTARTED\tSTATUS")

	for _, rec := range records {
		ok := rec.Status == domain.RunStatusCompleted
		icon := style.Cross
		if ok {
			icon = style.Check
		}
		status := style.Status(r, ok).Render(icon + " " + string(rec.Status))
		if rec.TaskfileDigest != "" && rec.TaskfileDigest != tf.Digest {
			status += " " + style.Muted(r).Render("(task file changed)")
		}

		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			rec.TaskName,
			rec.ExitCode,
			rec.Duration.Round(time.Millisecond),
			rec.StartedAt.Format(time.RFC3339),
			status,
		)
	}

	if err := tw.Flush(); err != nil {
		return zerr.Wrap(err, "failed to write run history")
	}
	return nil
}

func (a *App) load(configPath string) (*domain.Taskfile, error) {
	cwd := a.workDir
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		cwd = wd
	}

	tf, err := a.configLoader.Load(cwd, configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return tf, nil
}
