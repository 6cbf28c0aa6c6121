// Package runner executes the ordered task invocations of a task file.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.trai.ch/chore/internal/core/domain"
	"go.trai.ch/chore/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options controls a single run.
type Options struct {
	// DryRun announces every command without executing it.
	DryRun bool
}

// Runner runs task invocations one at a time, stopping at the first failure.
type Runner struct {
	executor  ports.Executor
	envLoader ports.EnvLoader
	store     ports.RunStore
	tracer    ports.Tracer
	logger    ports.Logger
	environ   func() []string
	now       func() time.Time
}

// NewRunner creates a new Runner.
func NewRunner(
	executor ports.Executor,
	envLoader ports.EnvLoader,
	store ports.RunStore,
	tracer ports.Tracer,
	logger ports.Logger,
) *Runner {
	return &Runner{
		executor:  executor,
		envLoader: envLoader,
		store:     store,
		tracer:    tracer,
		logger:    logger,
		environ:   processEnviron,
		now:       time.Now,
	}
}

// Run plans the targets and executes the resulting invocations in order.
// Each target's prerequisites run left to right before its own commands, and the
// first failing command aborts the whole run. A failing command is returned as
// *domain.CommandFailure so callers can forward its exit code.
func (r *Runner) Run(ctx context.Context, tf *domain.Taskfile, targets []string, opts Options) error {
	if len(targets) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	plan, err := tf.Registry.Plan(targets...)
	if err != nil {
		return err
	}

	dotenv, err := r.envLoader.Load(tf.Root, tf.Dotenv)
	if err != nil {
		return err
	}
	base := mergeEnv(dotenv, envMap(r.environ()), tf.Env)

	names := make([]string, len(plan))
	for i := range plan {
		names[i] = plan[i].Name
	}
	r.tracer.EmitPlan(ctx, names, targets)

	for i := range plan {
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(err, "run interrupted")
		}
		if err := r.runTask(ctx, tf, plan[i], base, opts); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runTask(ctx context.Context, tf *domain.Taskfile, task domain.Task, base map[string]string, opts Options) error {
	ctx, span := r.tracer.Start(ctx, task.Name, ports.WithAttribute(ports.AttrTaskName, task.Name))
	defer span.End()

	task.Dir = resolveDir(tf.Root, task.Dir)
	span.SetAttribute(ports.AttrTaskDir, task.Dir)
	env := environList(mergeEnv(base, task.Env))

	started := r.now()
	var runErr error
	for _, command := range task.Commands {
		span.MarkCommand(command)
		if opts.DryRun {
			continue
		}
		if runErr = r.executor.Execute(ctx, &task, command, env, span, span); runErr != nil {
			break
		}
	}

	if !opts.DryRun {
		r.record(tf, task.Name, started, runErr)
	}

	if runErr != nil {
		span.RecordError(runErr)
		return runErr
	}
	return nil
}

// record stores the outcome of an invocation. Failures to record never change the run result.
func (r *Runner) record(tf *domain.Taskfile, name string, started time.Time, runErr error) {
	rec := domain.RunRecord{
		TaskName:       name,
		Status:         domain.RunStatusCompleted,
		StartedAt:      started,
		Duration:       r.now().Sub(started),
		TaskfileDigest: tf.Digest,
	}
	if runErr != nil {
		rec.Status = domain.RunStatusFailed
		rec.ExitCode = 1
		if code, ok := domain.ExitCode(runErr); ok {
			rec.ExitCode = code
		}
	}

	if err := r.store.Put(tf.Root, rec); err != nil {
		r.logger.Warn(fmt.Sprintf("failed to record run of %s: %v", name, err))
	}
}

func resolveDir(root, dir string) string {
	if dir == "" {
		return root
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}
