// ABOUTME: Tests for importing tables and upgrading legacy stores.
// ABOUTME: Covers validation skips during import and dry-run versus real upgrades.
package storage

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/harperreed/bodylog/internal/models"
)

func TestImportSkipsInvalidRecords(t *testing.T) {
	store := setupTestStore(t)

	records := []*models.Measurement{
		measurement("Alice", day(2024, 1, 1), 70),
		measurement("", day(2024, 1, 2), 70),
		measurement("Bob", day(2024, 1, 3), 0),
		measurement("Carol", day(2024, 1, 4), 60),
	}

	summary, err := Import(store, records)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 2, summary.Skipped)
	assert.Len(t, multierr.Errors(summary.Rejected), 2)
	assert.Contains(t, summary.Rejected.Error(), "record 3 (Bob)")

	result, err := store.Load()
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "Carol", result.Records[1].PersonName)
}

func TestImportAbortsOnCorruptDestination(t *testing.T) {
	store := setupTestStore(t)
	writeStoreFile(t, store, "no,person,here\n")

	summary, err := Import(store, []*models.Measurement{measurement("Alice", day(2024, 1, 1), 70)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreCorrupt)
	assert.Zero(t, summary.Imported)
}

func TestUpgradeLegacyStore(t *testing.T) {
	store := setupTestStore(t)
	legacy := "Nome,Sexo,Data,Altura,Peso,Cintura,Quadril,IMC,C/Q\nCarol,F,01/03/2024,1.65,65,78,98,,\n"
	writeStoreFile(t, store, legacy)

	t.Run("dry run", func(t *testing.T) {
		summary, err := Upgrade(store, true)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.FromRevision)
		assert.Equal(t, CurrentRevision, summary.ToRevision)
		assert.Equal(t, 1, summary.Records)
		assert.Contains(t, summary.AddedColumns, ColBodyFatPct)
		assert.Contains(t, summary.AddedColumns, ColGoalWeightKg)
		assert.False(t, summary.Rewritten)

		data, err := os.ReadFile(store.Path())
		require.NoError(t, err)
		assert.Equal(t, legacy, string(data))
	})

	t.Run("rewrite", func(t *testing.T) {
		summary, err := Upgrade(store, false)
		require.NoError(t, err)
		assert.True(t, summary.Rewritten)

		data, err := os.ReadFile(store.Path())
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), strings.Join(Header(), ",")))

		result, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, CurrentRevision, result.Revision)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "2024-03-01", FormatDate(result.Records[0].MeasuredAt))
	})

	t.Run("already current", func(t *testing.T) {
		summary, err := Upgrade(store, false)
		require.NoError(t, err)
		assert.Empty(t, summary.AddedColumns)
		assert.False(t, summary.Rewritten)
	})
}
