package repository

import (
	"time"

	"zoneguard/internal/model"
)

// ViolationRepository is the durable, ordered violation event log.
type ViolationRepository interface {
	// Create operations
	Insert(v *model.Violation) (int64, error)
	InsertBatch(violations []model.Violation) error

	// Read operations
	GetRecent(limit int) ([]model.Violation, error)
	GetSince(since time.Time) ([]model.Violation, error)
	GetLatest() (*model.Violation, error)
	CountByClass() (map[string]int, error)
	Count() (int, error)

	// Delete operations
	DeleteAll() error
}
