// Package config provides the task file loader for chore.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/chore/internal/core/domain"
	"go.trai.ch/chore/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the task file schema version understood by this loader.
const SupportedVersion = "1"

var validTaskNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_:.-]+$`)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the task file at path, or the nearest one above cwd when path is empty,
// and returns it with a validated registry.
func (l *Loader) Load(cwd, path string) (*domain.Taskfile, error) {
	configPath, err := l.resolvePath(cwd, path)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- configPath is either discovered or explicitly requested by the user
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	var file Taskfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", domain.TaskfileName, file.Version, SupportedVersion))
	}

	registry, err := buildRegistry(file.Tasks)
	if err != nil {
		return nil, err
	}

	dotenv := file.Dotenv
	if dotenv == nil {
		dotenv = []string{domain.DefaultDotenvFile}
	}

	return &domain.Taskfile{
		Path:     configPath,
		Root:     filepath.Dir(configPath),
		Digest:   fmt.Sprintf("%016x", xxhash.Sum64(data)),
		Dotenv:   dotenv,
		Env:      file.Env,
		Registry: registry,
	}, nil
}

// Discover walks up from cwd to the filesystem root and returns the first task file found.
func (l *Loader) Discover(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}

	for {
		candidate := filepath.Join(currentDir, domain.TaskfileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) resolvePath(cwd, path string) (string, error) {
	if path == "" {
		return l.Discover(cwd)
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", zerr.With(domain.ErrConfigNotFound, "path", path)
	}
	return path, nil
}

// buildRegistry converts the task definitions into a validated registry.
func buildRegistry(tasks map[string]*TaskDTO) (*domain.Registry, error) {
	names := make([]string, 0, len(tasks))
	for name := range tasks {
		names = append(names, name)
	}
	slices.Sort(names)

	registry := domain.NewRegistry()
	for _, name := range names {
		if !validTaskNameRegex.MatchString(name) {
			return nil, zerr.With(domain.ErrInvalidTaskName, "task_name", name)
		}

		dto := tasks[name]
		if dto == nil {
			dto = &TaskDTO{}
		}

		if err := registry.Register(&domain.Task{
			Name:          name,
			Description:   dto.Desc,
			Prerequisites: dto.Deps,
			Commands:      dto.Cmds,
			Dir:           dto.Dir,
			Env:           dto.Env,
		}); err != nil {
			return nil, err
		}
	}

	if err := registry.Validate(); err != nil {
		return nil, err
	}
	return registry, nil
}
