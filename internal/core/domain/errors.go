package domain

import (
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrTaskAlreadyExists is returned when attempting to register a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a prerequisite that is not registered.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected between prerequisites.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not registered.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrInvalidTaskName is returned when a task name contains invalid characters.
	ErrInvalidTaskName = zerr.New("invalid task name")

	// ErrNoTargetsSpecified is returned when no targets are specified for the run command.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrConfigNotFound is returned when no task file can be found.
	ErrConfigNotFound = zerr.New("could not find chore.yaml")

	// ErrConfigReadFailed is returned when the task file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the task file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrDotenvReadFailed is returned when a dotenv file exists but cannot be read.
	ErrDotenvReadFailed = zerr.New("failed to read dotenv file")

	// ErrDotenvParseFailed is returned when a dotenv file is malformed.
	ErrDotenvParseFailed = zerr.New("failed to parse dotenv file")

	// ErrRunFailed is returned when a run aborts because a task failed.
	ErrRunFailed = zerr.New("run failed")

	// ErrCommandFailed is matched by every CommandFailure.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandParseFailed is returned when a command string is not valid shell.
	ErrCommandParseFailed = zerr.New("failed to parse command")

	// ErrInterpreterInitFailed is returned when the shell interpreter cannot be created.
	ErrInterpreterInitFailed = zerr.New("failed to initialize shell interpreter")

	// ErrStoreReadFailed is returned when the run history cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read run history")

	// ErrStoreUnmarshalFailed is returned when the run history cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal run history")

	// ErrStoreMarshalFailed is returned when the run history cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal run history")

	// ErrStoreWriteFailed is returned when the run history cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write run history")

	// ErrStoreCreateFailed is returned when the state directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create state directory")

	// ErrStoreClearFailed is returned when the run history cannot be removed.
	ErrStoreClearFailed = zerr.New("failed to clear run history")
)

// CommandFailure reports a command that exited with a non-zero status.
type CommandFailure struct {
	Task     string
	Command  string
	ExitCode int
}

// Error implements error.
func (e *CommandFailure) Error() string {
	return fmt.Sprintf("task %q: command %q exited with status %d", e.Task, e.Command, e.ExitCode)
}

// Is reports whether target is ErrCommandFailed.
func (e *CommandFailure) Is(target error) bool {
	return target == ErrCommandFailed
}

// ExitCode returns the exit status of the CommandFailure in err's chain.
func ExitCode(err error) (int, bool) {
	var failure *CommandFailure
	if errors.As(err, &failure) {
		return failure.ExitCode, true
	}
	return 0, false
}
