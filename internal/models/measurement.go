// ABOUTME: Measurement model for body-measurement records.
// ABOUTME: Holds raw inputs, derived BMI/WHR, and write-time validation.
package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/harperreed/bodylog/internal/calc"
)

// Sex selects which threshold tables apply to a person.
type Sex string

const (
	SexUnknown Sex = ""
	SexMale    Sex = "Male"
	SexFemale  Sex = "Female"
)

// ParseSex accepts English and Portuguese spellings and single-letter codes.
// Anything unrecognised yields SexUnknown.
func ParseSex(s string) Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male", "masculino", "homem":
		return SexMale
	case "f", "female", "feminino", "mulher":
		return SexFemale
	default:
		return SexUnknown
	}
}

// Valid reports whether the sex is one of the known values.
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// Measurement is one submitted measurement event for a person.
// Optional values are nil when absent or when the stored cell could not be parsed.
type Measurement struct {
	PersonName string    `json:"person_name" yaml:"person_name"`
	Sex        Sex       `json:"sex" yaml:"sex"`
	MeasuredAt time.Time `json:"measured_at" yaml:"measured_at"`

	HeightM  *float64 `json:"height_m,omitempty" yaml:"height_m,omitempty"`
	WeightKg *float64 `json:"weight_kg,omitempty" yaml:"weight_kg,omitempty"`
	WaistCm  *float64 `json:"waist_cm,omitempty" yaml:"waist_cm,omitempty"`
	HipCm    *float64 `json:"hip_cm,omitempty" yaml:"hip_cm,omitempty"`

	BodyFatPct  *float64 `json:"body_fat_pct,omitempty" yaml:"body_fat_pct,omitempty"`
	LeanMassPct *float64 `json:"lean_mass_pct,omitempty" yaml:"lean_mass_pct,omitempty"`
	VisceralFat *float64 `json:"visceral_fat,omitempty" yaml:"visceral_fat,omitempty"`

	GoalWeightKg   *float64 `json:"goal_weight_kg,omitempty" yaml:"goal_weight_kg,omitempty"`
	GoalWaistCm    *float64 `json:"goal_waist_cm,omitempty" yaml:"goal_waist_cm,omitempty"`
	GoalBodyFatPct *float64 `json:"goal_body_fat_pct,omitempty" yaml:"goal_body_fat_pct,omitempty"`

	BMI *float64 `json:"bmi,omitempty" yaml:"bmi,omitempty"`
	WHR *float64 `json:"whr,omitempty" yaml:"whr,omitempty"`

	// Unparsed keeps the raw text of stored cells that failed coercion, keyed by column name,
	// so that rewriting the table does not destroy hand-edited values.
	Unparsed map[string]string `json:"-" yaml:"-"`
}

// NewMeasurement creates a measurement with the required fields set and derived values computed.
func NewMeasurement(name string, sex Sex, measuredAt time.Time, heightM, weightKg float64) *Measurement {
	m := &Measurement{
		PersonName: strings.TrimSpace(name),
		Sex:        sex,
		MeasuredAt: DateOf(measuredAt),
		HeightM:    &heightM,
		WeightKg:   &weightKg,
	}
	m.Derive()
	return m
}

// WithWaistHip sets waist and hip circumferences in centimeters.
func (m *Measurement) WithWaistHip(waistCm, hipCm float64) *Measurement {
	m.WaistCm = &waistCm
	m.HipCm = &hipCm
	m.Derive()
	return m
}

// WithBodyComposition sets body-fat %, lean-mass % and visceral fat. Nil leaves a value unset.
func (m *Measurement) WithBodyComposition(bodyFatPct, leanMassPct, visceralFat *float64) *Measurement {
	m.BodyFatPct = bodyFatPct
	m.LeanMassPct = leanMassPct
	m.VisceralFat = visceralFat
	return m
}

// WithGoals sets the informational target values. Nil leaves a goal unset.
func (m *Measurement) WithGoals(weightKg, waistCm, bodyFatPct *float64) *Measurement {
	m.GoalWeightKg = weightKg
	m.GoalWaistCm = waistCm
	m.GoalBodyFatPct = bodyFatPct
	return m
}

// Derive recomputes BMI and WHR from the raw inputs. Stored derived values are never trusted.
func (m *Measurement) Derive() {
	m.BMI = calc.BMIOf(m.WeightKg, m.HeightM)
	m.WHR = calc.WHROf(m.WaistCm, m.HipCm)
}

// HasDate reports whether the measurement date is known.
func (m *Measurement) HasDate() bool {
	return !m.MeasuredAt.IsZero()
}

// Validate checks the measurement before it is written.
// It returns a *ValidationError naming the first failing field.
func (m *Measurement) Validate() error {
	if strings.TrimSpace(m.PersonName) == "" {
		return &ValidationError{Field: "person_name", Reason: "name is required"}
	}
	if !positive(m.HeightM) {
		return &ValidationError{Field: "height_m", Reason: "height must be greater than zero"}
	}
	if !positive(m.WeightKg) {
		return &ValidationError{Field: "weight_kg", Reason: "weight must be greater than zero"}
	}
	if !m.Sex.Valid() {
		return &ValidationError{Field: "sex", Reason: fmt.Sprintf("sex must be %s or %s", SexMale, SexFemale)}
	}
	if !m.HasDate() {
		return &ValidationError{Field: "measured_at", Reason: "date is required"}
	}

	optional := []struct {
		field string
		value *float64
	}{
		{"waist_cm", m.WaistCm},
		{"hip_cm", m.HipCm},
		{"body_fat_pct", m.BodyFatPct},
		{"lean_mass_pct", m.LeanMassPct},
		{"visceral_fat", m.VisceralFat},
		{"goal_weight_kg", m.GoalWeightKg},
		{"goal_waist_cm", m.GoalWaistCm},
		{"goal_body_fat_pct", m.GoalBodyFatPct},
	}
	for _, o := range optional {
		if o.value != nil && !positive(o.value) {
			return &ValidationError{Field: o.field, Reason: "value must be greater than zero when set"}
		}
	}
	return nil
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func positive(v *float64) bool {
	return v != nil && *v > 0 && !math.IsInf(*v, 0) && !math.IsNaN(*v)
}
