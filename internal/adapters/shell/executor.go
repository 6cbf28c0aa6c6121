// Package shell provides a shell-based executor for running task commands.
package shell

import (
	"context"
	"io"
	"os"
	"strings"

	"go.trai.ch/chore/internal/core/domain"
	"go.trai.ch/zerr"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Executor implements ports.Executor using an embedded POSIX shell interpreter.
type Executor struct {
	stdin io.Reader
}

// NewExecutor creates a new Executor whose commands read from the process stdin.
func NewExecutor() *Executor {
	return &Executor{stdin: os.Stdin}
}

// WithStdin replaces the reader commands see as their standard input.
func (e *Executor) WithStdin(r io.Reader) *Executor {
	e.stdin = r
	return e
}

// Execute interprets command in task.Dir with exactly the variables in env.
// The shell runs with errexit set, so a multi-statement command stops at its first failure.
func (e *Executor) Execute(
	ctx context.Context,
	task *domain.Task,
	command string,
	env []string,
	stdout, stderr io.Writer,
) error {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), task.Name)
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrCommandParseFailed.Error()), "task", task.Name), "command", command)
	}

	runner, err := interp.New(
		interp.Dir(task.Dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(e.stdin, stdout, stderr),
		interp.Params("-e"),
	)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInterpreterInitFailed.Error()), "task", task.Name)
	}

	err = runner.Run(ctx, file)
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return zerr.With(zerr.Wrap(ctxErr, "command interrupted"), "task", task.Name)
	}

	if status, ok := interp.IsExitStatus(err); ok {
		return &domain.CommandFailure{
			Task:     task.Name,
			Command:  command,
			ExitCode: int(status),
		}
	}

	return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "task", task.Name), "command", command)
}
