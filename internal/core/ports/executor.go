// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/chore/internal/core/domain"
)

// Executor defines the interface for executing task commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs a single command of the given task.
	//
	// The command runs in task.Dir with exactly the variables in env ("KEY=VALUE").
	// A non-zero exit is reported as a *domain.CommandFailure.
	Execute(ctx context.Context, task *domain.Task, command string, env []string, stdout, stderr io.Writer) error
}
