package domain

// Task is a named, statically defined sequence of prerequisite tasks plus shell commands.
type Task struct {
	Name          string
	Description   string
	Prerequisites []string
	Commands      []string
	// Dir is the working directory of the commands. Empty means the task file root.
	Dir string
	Env map[string]string
}
