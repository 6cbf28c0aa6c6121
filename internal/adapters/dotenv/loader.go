// Package dotenv loads settings files in the dotenv format.
package dotenv

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.trai.ch/chore/internal/core/domain"
	"go.trai.ch/zerr"
)

// Loader implements ports.EnvLoader using godotenv.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the given files relative to root. Later files override earlier ones.
// Files that do not exist are skipped.
func (l *Loader) Load(root string, files []string) (map[string]string, error) {
	vars := make(map[string]string)

	for _, file := range files {
		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		//nolint:gosec // Path comes from the task file
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrDotenvReadFailed.Error()), "path", path)
		}

		parsed, err := godotenv.UnmarshalBytes(data)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrDotenvParseFailed.Error()), "path", path)
		}

		for k, v := range parsed {
			vars[k] = v
		}
	}

	return vars, nil
}
