package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering.
// It decouples telemetry collection from presentation.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called once the targets have been expanded.
	// tasks: task invocations in execution order, repeated names included
	// targets: the user-requested targets
	OnPlanEmit(tasks []string, targets []string)

	// OnTaskStart is called when a task invocation begins.
	OnTaskStart(spanID, name string, startTime time.Time)

	// OnTaskCommand is called before each command of a task runs.
	OnTaskCommand(spanID, command string)

	// OnTaskLog is called when a task emits output.
	// data may contain partial lines.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a task invocation finishes.
	// err is nil if every command succeeded.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
