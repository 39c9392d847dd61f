// ABOUTME: CSV codec for the measurements table.
// ABOUTME: Decodes any schema revision with per-cell coercion and encodes the current revision.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/harperreed/bodylog/internal/calc"
	"github.com/harperreed/bodylog/internal/models"
)

// ErrStoreCorrupt marks a table that cannot be read at all.
var ErrStoreCorrupt = errors.New("measurement store is corrupt")

// ParseError describes one stored cell that could not be coerced.
type ParseError struct {
	Line   int
	Column string
	Value  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse %s %q", e.Line, e.Column, e.Value)
}

// LoadResult is the outcome of reading a table.
type LoadResult struct {
	Records  []*models.Measurement
	Revision int
	// Issues combines every *ParseError found; nil when all cells parsed.
	Issues error
	// UnknownColumns lists header cells that match no known column.
	UnknownColumns []string
}

// IssueList returns the individual parse problems.
func (r *LoadResult) IssueList() []error {
	return multierr.Errors(r.Issues)
}

// Chartable returns the records that carry at least one required numeric value.
// Rows whose height and weight both failed to parse stay in Records but are left out here.
func (r *LoadResult) Chartable() []*models.Measurement {
	var out []*models.Measurement
	for _, m := range r.Records {
		if m.HeightM == nil && m.WeightKg == nil {
			continue
		}
		out = append(out, m)
	}
	return out
}

// DecodeTable reads a measurements table in any known revision.
// An empty input is an empty table. A stray quote inside a cell is kept as text.
// Read failures and unrecognisable headers wrap ErrStoreCorrupt.
func DecodeTable(r io.Reader) (*LoadResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	result := &LoadResult{Revision: CurrentRevision}

	header, err := cr.Read()
	if err == io.EOF {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrStoreCorrupt, err)
	}

	layout, err := ResolveHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}
	result.Revision = layout.Revision
	result.UnknownColumns = layout.Unknown

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
		}
		if blankRow(row) {
			continue
		}
		line, _ := cr.FieldPos(0)
		m, issues := decodeRow(layout, row, line)
		result.Records = append(result.Records, m)
		result.Issues = multierr.Append(result.Issues, issues)
	}

	return result, nil
}

func decodeRow(layout *HeaderLayout, row []string, line int) (*models.Measurement, error) {
	m := &models.Measurement{}
	var issues error

	cell := func(name string) (string, bool) {
		i, ok := layout.Index[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}
	bad := func(name, raw string) {
		if m.Unparsed == nil {
			m.Unparsed = make(map[string]string)
		}
		m.Unparsed[name] = raw
		issues = multierr.Append(issues, &ParseError{Line: line, Column: name, Value: raw})
	}
	number := func(name string) *float64 {
		raw, ok := cell(name)
		if !ok || raw == "" {
			return nil
		}
		v := calc.ParseNumber(raw)
		if v == nil {
			bad(name, raw)
		}
		return v
	}

	m.PersonName, _ = cell(ColPersonName)

	if raw, ok := cell(ColSex); ok && raw != "" {
		m.Sex = models.ParseSex(raw)
		if m.Sex == models.SexUnknown {
			bad(ColSex, raw)
		}
	}

	if raw, ok := cell(ColMeasuredAt); ok && raw != "" {
		t, err := ParseDate(raw)
		if err != nil {
			bad(ColMeasuredAt, raw)
		}
		m.MeasuredAt = t
	}

	m.HeightM = number(ColHeightM)
	m.WeightKg = number(ColWeightKg)
	m.WaistCm = number(ColWaistCm)
	m.HipCm = number(ColHipCm)
	m.BodyFatPct = number(ColBodyFatPct)
	m.LeanMassPct = number(ColLeanMassPct)
	m.VisceralFat = number(ColVisceralFat)
	m.GoalWeightKg = number(ColGoalWeightKg)
	m.GoalWaistCm = number(ColGoalWaistCm)
	m.GoalBodyFatPct = number(ColGoalBodyFatPct)

	m.Derive()
	return m, issues
}

// EncodeTable writes records under the current header.
// Cells that failed to parse on load are written back with their original text.
func EncodeTable(w io.Writer, records []*models.Measurement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, m := range records {
		if err := cw.Write(encodeRow(m)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func encodeRow(m *models.Measurement) []string {
	raw := func(name, formatted string) string {
		if formatted == "" {
			if v, ok := m.Unparsed[name]; ok {
				return v
			}
		}
		return formatted
	}

	date := ""
	if m.HasDate() {
		date = FormatDate(m.MeasuredAt)
	}

	return []string{
		m.PersonName,
		raw(ColSex, string(m.Sex)),
		raw(ColMeasuredAt, date),
		raw(ColHeightM, formatNumber(m.HeightM)),
		raw(ColWeightKg, formatNumber(m.WeightKg)),
		raw(ColWaistCm, formatNumber(m.WaistCm)),
		raw(ColHipCm, formatNumber(m.HipCm)),
		formatNumber(m.BMI),
		formatNumber(m.WHR),
		raw(ColBodyFatPct, formatNumber(m.BodyFatPct)),
		raw(ColLeanMassPct, formatNumber(m.LeanMassPct)),
		raw(ColVisceralFat, formatNumber(m.VisceralFat)),
		raw(ColGoalWeightKg, formatNumber(m.GoalWeightKg)),
		raw(ColGoalWaistCm, formatNumber(m.GoalWaistCm)),
		raw(ColGoalBodyFatPct, formatNumber(m.GoalBodyFatPct)),
	}
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
