package domain

import "path/filepath"

const (
	// StateDirName is the name of the per-project state directory.
	StateDirName = ".chore"

	// HistoryFileName is the name of the run history file inside the state directory.
	HistoryFileName = "history.json"

	// TaskfileName is the name of the task file.
	TaskfileName = "chore.yaml"

	// DefaultDotenvFile is loaded when a task file does not list any dotenv files.
	DefaultDotenvFile = ".env"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// StatePath returns the state directory for the project rooted at root.
func StatePath(root string) string {
	return filepath.Join(root, StateDirName)
}

// HistoryPath returns the run history file for the project rooted at root.
func HistoryPath(root string) string {
	return filepath.Join(root, StateDirName, HistoryFileName)
}
