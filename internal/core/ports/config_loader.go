package ports

import "go.trai.ch/chore/internal/core/domain"

// ConfigLoader defines the interface for loading the task file.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads and validates the task file.
	// When path is empty the file is discovered by walking up from cwd.
	Load(cwd, path string) (*domain.Taskfile, error)

	// Discover walks up from cwd and returns the path of the nearest task file.
	Discover(cwd string) (string, error)
}
