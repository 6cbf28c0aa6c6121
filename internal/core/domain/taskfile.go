package domain

// Taskfile is a loaded task file together with the ambient settings it declares.
type Taskfile struct {
	// Path is the absolute path of the loaded file.
	Path string
	// Root is the directory containing Path. Relative task dirs and dotenv files resolve against it.
	Root string
	// Digest is the xxhash of the file contents, hex encoded.
	Digest string
	// Dotenv lists the settings files loaded before any task runs.
	Dotenv []string
	// Env holds variables applied to every task.
	Env      map[string]string
	Registry *Registry
}
