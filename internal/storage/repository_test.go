// ABOUTME: Tests for the CSV measurement store.
// ABOUTME: Verifies load, append, delete-by-person, coercion and atomic persistence.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/bodylog/internal/models"
)

func TestLoadMissingStore(t *testing.T) {
	store := setupTestStore(t)

	result, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.NoError(t, result.Issues)
	assert.Equal(t, CurrentRevision, result.Revision)
}

func TestAppendAndLoad(t *testing.T) {
	store := setupTestStore(t)

	m := measurement("Alice", day(2024, 1, 1), 70).WithWaistHip(80, 100)
	m.WithBodyComposition(f64(28.5), f64(70), f64(6)).WithGoals(f64(65), f64(75), f64(24))
	require.NoError(t, store.Append(m))

	result, err := store.Load()
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	got := result.Records[0]
	assert.Equal(t, "Alice", got.PersonName)
	assert.Equal(t, models.SexFemale, got.Sex)
	assert.True(t, got.MeasuredAt.Equal(day(2024, 1, 1)))
	assert.Equal(t, 1.70, *got.HeightM)
	assert.Equal(t, 70.0, *got.WeightKg)
	assert.Equal(t, *m.BMI, *got.BMI)
	assert.Equal(t, 0.80, *got.WHR)
	assert.Equal(t, 28.5, *got.BodyFatPct)
	assert.Equal(t, 6.0, *got.VisceralFat)
	assert.Equal(t, 65.0, *got.GoalWeightKg)
	assert.Equal(t, 24.0, *got.GoalBodyFatPct)
	assert.NoError(t, result.Issues)
}

func TestAppendRejectsInvalid(t *testing.T) {
	store := setupTestStore(t)

	tests := []struct {
		name  string
		m     *models.Measurement
		field string
	}{
		{"empty name", measurement("", day(2024, 1, 1), 70), "person_name"},
		{"zero height", models.NewMeasurement("Alice", models.SexFemale, day(2024, 1, 1), 0, 70), "height_m"},
		{"zero weight", measurement("Alice", day(2024, 1, 1), 0), "weight_kg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Append(tt.m)
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err), "rejected appends must not create the store")
}

func TestDeletePerson(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.Append(measurement("Alice", day(2024, 1, 1), 70)))
	require.NoError(t, store.Append(measurement("Bob", day(2024, 1, 2), 80)))
	require.NoError(t, store.Append(measurement("Alice", day(2024, 2, 1), 69)))

	removed, err := store.DeletePerson("Alice")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	result, err := store.Load()
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Bob", result.Records[0].PersonName)
}

func TestDeletePersonIsIdempotent(t *testing.T) {
	store := setupTestStore(t)

	removed, err := store.DeletePerson("Nobody")
	require.NoError(t, err)
	assert.Zero(t, removed)

	require.NoError(t, store.Append(measurement("Bob", day(2024, 1, 2), 80)))
	removed, err = store.DeletePerson("Nobody")
	require.NoError(t, err)
	assert.Zero(t, removed)

	result, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
}

func TestLoadIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.Append(measurement("Carol", day(2024, 1, 1), 70)))
	require.NoError(t, store.Append(measurement("Carol", day(2024, 3, 1), 65)))

	first, err := store.Load()
	require.NoError(t, err)
	second, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadMalformedRow(t *testing.T) {
	store := setupTestStore(t)
	writeStoreFile(t, store, strings.Join([]string{
		"person_name,sex,measured_at,height_m,weight_kg,waist_cm,hip_cm,bmi,whr",
		"Alice,Female,2024-01-01,1.70,seventy,80,100,,",
		"Alice,Female,2024-02-01,1.70,69,80,100,23.88,0.8",
		"Bob,Male,not-a-date,abc,xyz,,,,",
	}, "\n")+"\n")

	result, err := store.Load()
	require.NoError(t, err)
	require.Len(t, result.Records, 3)

	bad := result.Records[0]
	assert.Nil(t, bad.WeightKg)
	assert.Nil(t, bad.BMI)
	assert.Equal(t, 1.70, *bad.HeightM)
	assert.Equal(t, 0.80, *bad.WHR)
	assert.Equal(t, "seventy", bad.Unparsed[ColWeightKg])

	good := result.Records[1]
	require.NotNil(t, good.WeightKg)
	assert.Equal(t, 69.0, *good.WeightKg)

	issues := result.IssueList()
	require.Len(t, issues, 4)
	var perr *ParseError
	require.True(t, errors.As(issues[0], &perr))
	assert.Equal(t, ColWeightKg, perr.Column)
	assert.Equal(t, 2, perr.Line)

	assert.False(t, result.Records[2].HasDate())
	chartable := result.Chartable()
	assert.Len(t, chartable, 2, "row with no height or weight is not chartable")
}

func TestLoadStrayQuoteInCell(t *testing.T) {
	store := setupTestStore(t)
	writeStoreFile(t, store, strings.Join([]string{
		"person_name,sex,measured_at,height_m,weight_kg",
		"Alice,F,01/02/2024,1.65,70",
		`Bob,M,01/02/2024,1.80,8"0`,
	}, "\n")+"\n")

	result, err := store.Load()
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	alice := result.Records[0]
	require.NotNil(t, alice.WeightKg)
	assert.Equal(t, 70.0, *alice.WeightKg)

	bob := result.Records[1]
	assert.Equal(t, "Bob", bob.PersonName)
	assert.Nil(t, bob.WeightKg)
	assert.Nil(t, bob.BMI)
	assert.Equal(t, 1.80, *bob.HeightM)
	assert.Equal(t, `8"0`, bob.Unparsed[ColWeightKg])

	issues := result.IssueList()
	require.Len(t, issues, 1)
	var perr *ParseError
	require.True(t, errors.As(issues[0], &perr))
	assert.Equal(t, 3, perr.Line)

	require.NoError(t, store.Append(measurement("Carol", day(2024, 2, 2), 60)))
	result, err = store.Load()
	require.NoError(t, err)
	require.Len(t, result.Records, 3)
	assert.Equal(t, `8"0`, result.Records[1].Unparsed[ColWeightKg], "stray quote survives a rewrite")
}

func TestLoadLegacyHeader(t *testing.T) {
	store := setupTestStore(t)
	writeStoreFile(t, store, strings.Join([]string{
		"Nome,Sexo,Data,Altura,Peso,Cintura,Quadril,IMC,C/Q",
		"Carol,Feminino,01/03/2024,1.65,\"65,5\",78,98,0,0",
		"Dan,Masculino,15.01.24,1.80,81,,,,",
	}, "\n"))

	result, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Revision)
	require.Len(t, result.Records, 2)

	carol := result.Records[0]
	assert.Equal(t, models.SexFemale, carol.Sex)
	assert.True(t, carol.MeasuredAt.Equal(day(2024, 3, 1)))
	assert.Equal(t, 65.5, *carol.WeightKg)
	assert.Equal(t, 24.06, *carol.BMI, "stored IMC is ignored and recomputed")
	assert.Equal(t, 0.80, *carol.WHR)

	dan := result.Records[1]
	assert.Equal(t, models.SexMale, dan.Sex)
	assert.True(t, dan.MeasuredAt.Equal(day(2024, 1, 15)))
	assert.Nil(t, dan.WHR)
}

func TestCorruptStore(t *testing.T) {
	store := setupTestStore(t)
	content := "peso_total,altura_cm\n70,170\n"
	writeStoreFile(t, store, content)

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStoreCorrupt))

	err = store.Append(measurement("Carol", day(2024, 1, 1), 70))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStoreCorrupt))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, content, string(data), "a corrupt store must not be overwritten")
}

func TestHeaderWithoutNameIsCorrupt(t *testing.T) {
	store := setupTestStore(t)
	writeStoreFile(t, store, "foo,bar\n1,2\n")

	_, err := store.Load()
	assert.True(t, errors.Is(err, ErrStoreCorrupt))
}

func TestUnparsedCellsSurviveRewrite(t *testing.T) {
	store := setupTestStore(t)
	writeStoreFile(t, store, "person_name,sex,measured_at,height_m,weight_kg\nAlice,Female,32/13/2024,1.70,??\n")

	require.NoError(t, store.Append(measurement("Bob", day(2024, 1, 2), 80)))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "32/13/2024")
	assert.Contains(t, string(data), "??")
	assert.True(t, strings.HasPrefix(string(data), strings.Join(Header(), ",")+"\n"))
}

func TestPersistLeavesNoTempFiles(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.Append(measurement("Alice", day(2024, 1, 1), 70)))
	require.NoError(t, store.Append(measurement("Alice", day(2024, 1, 2), 70)))

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, StoreFileName, entries[0].Name())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConcurrentAppendsKeepEveryRecord(t *testing.T) {
	store := setupTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Append(measurement("Alice", day(2024, 1, 1+i), 70+float64(i))))
		}(i)
	}
	wg.Wait()

	result, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, result.Records, 20)
}

func TestRewrite(t *testing.T) {
	store := setupTestStore(t)
	records := []*models.Measurement{
		measurement("Alice", day(2024, 1, 1), 70),
		measurement("Bob", day(2024, 1, 1), 80),
	}
	require.NoError(t, store.Rewrite(records))

	result, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
}

func TestDefaultStorePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	assert.Equal(t, filepath.Join("/tmp/xdg-data", "bodylog", StoreFileName), DefaultStorePath())
}
