package ports

// EnvLoader reads the settings files declared by a task file.
//
//go:generate mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvLoader interface {
	// Load reads every file in order, relative to root, and returns the merged variables.
	// Later files override earlier ones. Missing files are skipped.
	Load(root string, files []string) (map[string]string, error)
}
