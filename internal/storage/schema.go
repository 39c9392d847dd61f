// ABOUTME: Column registry for the measurements table across schema revisions.
// ABOUTME: Maps canonical and legacy header names to columns and detects the file revision.
package storage

import (
	"fmt"
	"strings"
)

// CurrentRevision is the schema revision written by this version.
const CurrentRevision = 3

// ColumnKind is the value type stored in a column.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindSex
	KindDate
	KindNumber
)

// Column describes one column of the measurements table.
type Column struct {
	Name     string
	Kind     ColumnKind
	Revision int
	Aliases  []string
}

// Canonical column names.
const (
	ColPersonName     = "person_name"
	ColSex            = "sex"
	ColMeasuredAt     = "measured_at"
	ColHeightM        = "height_m"
	ColWeightKg       = "weight_kg"
	ColWaistCm        = "waist_cm"
	ColHipCm          = "hip_cm"
	ColBMI            = "bmi"
	ColWHR            = "whr"
	ColBodyFatPct     = "body_fat_pct"
	ColLeanMassPct    = "lean_mass_pct"
	ColVisceralFat    = "visceral_fat"
	ColGoalWeightKg   = "goal_weight_kg"
	ColGoalWaistCm    = "goal_waist_cm"
	ColGoalBodyFatPct = "goal_body_fat_pct"
)

var columns = []Column{
	{Name: ColPersonName, Kind: KindText, Revision: 1, Aliases: []string{"Nome", "Name"}},
	{Name: ColSex, Kind: KindSex, Revision: 1, Aliases: []string{"Sexo"}},
	{Name: ColMeasuredAt, Kind: KindDate, Revision: 1, Aliases: []string{"Data", "Date"}},
	{Name: ColHeightM, Kind: KindNumber, Revision: 1, Aliases: []string{"Altura"}},
	{Name: ColWeightKg, Kind: KindNumber, Revision: 1, Aliases: []string{"Peso"}},
	{Name: ColWaistCm, Kind: KindNumber, Revision: 1, Aliases: []string{"Cintura"}},
	{Name: ColHipCm, Kind: KindNumber, Revision: 1, Aliases: []string{"Quadril"}},
	{Name: ColBMI, Kind: KindNumber, Revision: 1, Aliases: []string{"IMC"}},
	{Name: ColWHR, Kind: KindNumber, Revision: 1, Aliases: []string{"C/Q", "RCQ"}},
	{Name: ColBodyFatPct, Kind: KindNumber, Revision: 2, Aliases: []string{"Gordura Corporal (%)", "% Gordura", "Gordura Corporal"}},
	{Name: ColLeanMassPct, Kind: KindNumber, Revision: 2, Aliases: []string{"Massa Magra (%)", "Massa Magra"}},
	{Name: ColVisceralFat, Kind: KindNumber, Revision: 2, Aliases: []string{"Gordura Visceral"}},
	{Name: ColGoalWeightKg, Kind: KindNumber, Revision: 3, Aliases: []string{"Meta Peso", "Meta de Peso"}},
	{Name: ColGoalWaistCm, Kind: KindNumber, Revision: 3, Aliases: []string{"Meta Cintura", "Meta de Cintura"}},
	{Name: ColGoalBodyFatPct, Kind: KindNumber, Revision: 3, Aliases: []string{"Meta Gordura (%)", "Meta Gordura", "Meta de Gordura"}},
}

// Columns returns the full ordered column list of the current revision.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// ColumnsFor returns the columns that exist in the given revision.
func ColumnsFor(revision int) []Column {
	var out []Column
	for _, c := range columns {
		if c.Revision <= revision {
			out = append(out, c)
		}
	}
	return out
}

// Header returns the header row written by the current revision.
func Header() []string {
	h := make([]string, len(columns))
	for i, c := range columns {
		h[i] = c.Name
	}
	return h
}

// HeaderLayout is a file header resolved against the registry.
type HeaderLayout struct {
	// Index maps canonical column names to their position in the file.
	Index    map[string]int
	Revision int
	Unknown  []string
}

// Has reports whether the file carries the column.
func (l *HeaderLayout) Has(name string) bool {
	_, ok := l.Index[name]
	return ok
}

// ResolveHeader matches a header row against canonical names and legacy aliases.
// A header without a person-name column cannot be a measurements table.
func ResolveHeader(row []string) (*HeaderLayout, error) {
	layout := &HeaderLayout{Index: make(map[string]int), Revision: 1}
	for i, raw := range row {
		col, ok := lookupColumn(raw)
		if !ok {
			if strings.TrimSpace(raw) != "" {
				layout.Unknown = append(layout.Unknown, raw)
			}
			continue
		}
		if _, dup := layout.Index[col.Name]; dup {
			continue
		}
		layout.Index[col.Name] = i
		if col.Revision > layout.Revision {
			layout.Revision = col.Revision
		}
	}
	if !layout.Has(ColPersonName) {
		return nil, fmt.Errorf("header has no %s column", ColPersonName)
	}
	return layout, nil
}

var columnLookup = buildLookup()

func buildLookup() map[string]Column {
	m := make(map[string]Column)
	for _, c := range columns {
		m[normalizeHeader(c.Name)] = c
		for _, a := range c.Aliases {
			m[normalizeHeader(a)] = c
		}
	}
	return m
}

func lookupColumn(raw string) (Column, bool) {
	c, ok := columnLookup[normalizeHeader(raw)]
	return c, ok
}

func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
