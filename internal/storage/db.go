// ABOUTME: CSV file store for measurements with atomic whole-table rewrites.
// ABOUTME: Uses write-temp-then-rename and a single-writer lock per store.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/harperreed/bodylog/internal/models"
)

// StoreFileName is the default file name of the measurements table.
const StoreFileName = "measurements.csv"

// CSVStore keeps all measurements in a single CSV file.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

// Compile-time check that CSVStore implements Repository.
var _ Repository = (*CSVStore)(nil)

// Open returns a store backed by the file at path. The file itself is created on first write.
func Open(path string) (*CSVStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &CSVStore{path: path}, nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "bodylog")
}

// DefaultStorePath returns the default store path following XDG spec.
func DefaultStorePath() string {
	return filepath.Join(DataDir(), StoreFileName)
}

// Path returns the file backing the store.
func (s *CSVStore) Path() string {
	return s.path
}

// Close releases resources. For CSVStore this is a no-op.
func (s *CSVStore) Close() error {
	return nil
}

// Load reads the whole table from disk.
func (s *CSVStore) Load() (*LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Append validates m, recomputes its derived values and rewrites the table with it appended.
func (s *CSVStore) Append(m *models.Measurement) error {
	if err := m.Validate(); err != nil {
		return err
	}
	m.Derive()

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return fmt.Errorf("append measurement: %w", err)
	}
	records := append(current.Records, m)
	if err := s.persist(records); err != nil {
		return fmt.Errorf("append measurement: %w", err)
	}
	return nil
}

// DeletePerson removes every record whose name matches exactly.
// Deleting a person with no records is a no-op.
func (s *CSVStore) DeletePerson(name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return 0, fmt.Errorf("delete person: %w", err)
	}

	kept := make([]*models.Measurement, 0, len(current.Records))
	for _, m := range current.Records {
		if m.PersonName != name {
			kept = append(kept, m)
		}
	}
	removed := len(current.Records) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.persist(kept); err != nil {
		return 0, fmt.Errorf("delete person: %w", err)
	}
	return removed, nil
}

// Rewrite replaces the whole table with records.
func (s *CSVStore) Rewrite(records []*models.Measurement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(records)
}

func (s *CSVStore) load() (*LoadResult, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &LoadResult{Revision: CurrentRevision}, nil
		}
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	result, err := DecodeTable(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}

	if result.Issues != nil {
		log.WithFields(log.Fields{
			"store":  s.path,
			"issues": len(result.IssueList()),
		}).Warnf("some stored values could not be parsed: %v", result.Issues)
	}
	if len(result.UnknownColumns) > 0 {
		log.WithField("store", s.path).Warnf("ignoring unknown columns: %s", strings.Join(result.UnknownColumns, ", "))
	}
	return result, nil
}

// persist writes the table to a temporary file in the same directory and renames it into place.
func (s *CSVStore) persist(records []*models.Measurement) (err error) {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = EncodeTable(tmp, records); err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("set store permissions: %w", err)
	}
	if err = os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}

	log.WithFields(log.Fields{"store": s.path, "records": len(records)}).Debug("store persisted")
	return nil
}
