// ABOUTME: Tests for the column registry and permissive date parsing.
// ABOUTME: Covers header resolution across revisions and accepted date spellings.
package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderOrder(t *testing.T) {
	h := Header()
	require.Len(t, h, len(Columns()))
	assert.Equal(t, ColPersonName, h[0])
	assert.Equal(t, ColGoalBodyFatPct, h[len(h)-1])
}

func TestColumnsFor(t *testing.T) {
	assert.Len(t, ColumnsFor(1), 9)
	assert.Len(t, ColumnsFor(2), 12)
	assert.Len(t, ColumnsFor(CurrentRevision), len(Columns()))
}

func TestResolveHeader(t *testing.T) {
	tests := []struct {
		name     string
		row      []string
		revision int
		unknown  []string
	}{
		{"current", Header(), CurrentRevision, nil},
		{"legacy portuguese", []string{"Nome", "Sexo", "Data", "Peso"}, 1, nil},
		{"body composition", []string{"\ufeffNome", "Gordura  Corporal (%)", "massa magra"}, 2, nil},
		{"unknown extras", []string{"person_name", "mood", "weight_kg"}, 1, []string{"mood"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := ResolveHeader(tt.row)
			require.NoError(t, err)
			assert.Equal(t, tt.revision, layout.Revision)
			assert.Equal(t, tt.unknown, layout.Unknown)
			assert.Equal(t, 0, layout.Index[ColPersonName])
		})
	}
}

func TestResolveHeaderDuplicateKeepsFirst(t *testing.T) {
	layout, err := ResolveHeader([]string{"Nome", "Peso", "weight_kg"})
	require.NoError(t, err)
	assert.Equal(t, 1, layout.Index[ColWeightKg])
}

func TestResolveHeaderRequiresPerson(t *testing.T) {
	_, err := ResolveHeader([]string{"Data", "Peso"})
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	valid := []string{
		"2024-03-01",
		"01/03/2024",
		"1/3/24",
		"01.03.2024",
		"01-03-2024",
		"2024/03/01",
		"2024-03-01T14:30:00Z",
		"01/03/2024 08:15",
		" 2024-03-01 ",
	}
	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			got, err := ParseDate(s)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %v", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	invalid := []string{"", "yesterday", "2024-13-01", "31/02/2024", "01/03", "00/01/2024", "a/b/c"}
	for _, s := range invalid {
		t.Run("invalid "+s, func(t *testing.T) {
			_, err := ParseDate(s)
			assert.Error(t, err)
		})
	}
}

func TestParseDateTwoDigitYear(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"31/12/99", time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"1/1/69", time.Date(1969, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"31.12.68", time.Date(2068, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"15/01/00", time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v", got)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-03-01", FormatDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}
