// ABOUTME: Import of external tables and upgrade of legacy-revision stores.
// ABOUTME: Import appends through validation; upgrade rewrites with the current header.
package storage

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/harperreed/bodylog/internal/models"
)

// ImportSummary holds counts of an import run.
type ImportSummary struct {
	Imported int
	Skipped  int
	// Rejected combines the validation errors of skipped records.
	Rejected error
}

// Import appends every record to dst. Records failing validation are skipped and
// reported in the summary; any other error aborts the import.
func Import(dst Repository, records []*models.Measurement) (*ImportSummary, error) {
	summary := &ImportSummary{}

	for i, m := range records {
		err := dst.Append(m)
		var verr *models.ValidationError
		switch {
		case err == nil:
			summary.Imported++
		case errors.As(err, &verr):
			summary.Skipped++
			summary.Rejected = multierr.Append(summary.Rejected, fmt.Errorf("record %d (%s): %w", i+1, m.PersonName, err))
		default:
			return summary, fmt.Errorf("import record %d: %w", i+1, err)
		}
	}

	return summary, nil
}

// UpgradeSummary describes a schema upgrade of the store.
type UpgradeSummary struct {
	FromRevision int
	ToRevision   int
	Records      int
	AddedColumns []string
	// Rewritten is false for dry runs and stores already at the current revision.
	Rewritten bool
}

// Upgrade rewrites the store with the current header when it was written by an older revision.
func Upgrade(s *CSVStore, dryRun bool) (*UpgradeSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("upgrade: %w", err)
	}

	summary := &UpgradeSummary{
		FromRevision: current.Revision,
		ToRevision:   CurrentRevision,
		Records:      len(current.Records),
	}
	for _, c := range Columns() {
		if c.Revision > current.Revision {
			summary.AddedColumns = append(summary.AddedColumns, c.Name)
		}
	}

	if dryRun || current.Revision >= CurrentRevision {
		return summary, nil
	}

	if err := s.persist(current.Records); err != nil {
		return nil, fmt.Errorf("upgrade: %w", err)
	}
	summary.Rewritten = true
	return summary, nil
}
