// Package history implements the run history store.
package history

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/chore/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.RunStore with a single JSON file per project.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Put stores the record, replacing the previous record of the same task.
func (s *Store) Put(root string, record domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(root)
	if err != nil {
		return err
	}
	records[record.TaskName] = record

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	if err := os.MkdirAll(domain.StatePath(root), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	// Write to a sibling file first so readers never see a partial history.
	filename := domain.HistoryPath(root)
	tmp := filename + ".tmp"
	//nolint:gosec // Path is constructed from the project root
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmp, filename); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

// List returns all records ordered by task name.
func (s *Store) List(root string) ([]domain.RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(root)
	if err != nil {
		return nil, err
	}

	list := make([]domain.RunRecord, 0, len(records))
	for _, record := range records {
		list = append(list, record)
	}
	slices.SortFunc(list, func(a, b domain.RunRecord) int {
		return strings.Compare(a.TaskName, b.TaskName)
	})
	return list, nil
}

// Clear removes the history file. Clearing an empty history is not an error.
func (s *Store) Clear(root string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(domain.HistoryPath(root)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, domain.ErrStoreClearFailed.Error())
	}
	return nil
}

func (s *Store) read(root string) (map[string]domain.RunRecord, error) {
	records := make(map[string]domain.RunRecord)

	//nolint:gosec // Path is constructed from the project root
	data, err := os.ReadFile(filepath.Clean(domain.HistoryPath(root)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return records, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	if err := json.Unmarshal(data, &records); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}
	// A file holding "null" decodes into a nil map.
	if records == nil {
		records = make(map[string]domain.RunRecord)
	}
	return records, nil
}
