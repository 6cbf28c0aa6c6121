package domain

import "time"

// RunStatus is the terminal state of a task invocation.
type RunStatus string

const (
	// RunStatusCompleted indicates every command of the task exited zero.
	RunStatusCompleted RunStatus = "completed"
	// RunStatusFailed indicates a command of the task failed.
	RunStatusFailed RunStatus = "failed"
)

// RunRecord is the outcome of the latest invocation of a task.
type RunRecord struct {
	TaskName       string        `json:"task_name"`
	Status         RunStatus     `json:"status"`
	ExitCode       int           `json:"exit_code"`
	StartedAt      time.Time     `json:"started_at,omitzero"`
	Duration       time.Duration `json:"duration"`
	TaskfileDigest string        `json:"taskfile_digest,omitzero"`
}
