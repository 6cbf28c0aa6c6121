package config

// Taskfile represents the structure of the chore.yaml file.
type Taskfile struct {
	Version string              `yaml:"version"`
	Dotenv  []string            `yaml:"dotenv"`
	Env     map[string]string   `yaml:"env"`
	Tasks   map[string]*TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task definition in the task file.
type TaskDTO struct {
	Desc string            `yaml:"desc"`
	Deps []string          `yaml:"deps"`
	Cmds []string          `yaml:"cmds"`
	Dir  string            `yaml:"dir"`
	Env  map[string]string `yaml:"env"`
}
