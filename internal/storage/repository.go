// ABOUTME: Repository interface for measurement storage.
// ABOUTME: Defines the load, append and delete-by-person contract.
package storage

import (
	"github.com/harperreed/bodylog/internal/models"
)

// Repository defines the storage interface for measurements.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Load reads every stored record. A missing store is an empty result, not an error.
	Load() (*LoadResult, error)

	// Append validates, derives and stores one record.
	Append(m *models.Measurement) error

	// DeletePerson removes every record for the named person and returns how many were removed.
	DeletePerson(name string) (int, error)

	Close() error
}
