package ports

import "go.trai.ch/chore/internal/core/domain"

// RunStore persists the outcome of the latest invocation of each task.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunStore interface {
	// Put stores the record, replacing any previous record of the same task.
	Put(root string, record domain.RunRecord) error

	// List returns all records ordered by task name.
	// It returns an empty slice when nothing was recorded yet.
	List(root string) ([]domain.RunRecord, error)

	// Clear removes every record.
	Clear(root string) error
}
