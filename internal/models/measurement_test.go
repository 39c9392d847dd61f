// ABOUTME: Tests for the Measurement model.
// ABOUTME: Validates constructor, derivation, sex parsing and validation order.
package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewMeasurement(t *testing.T) {
	at := time.Date(2024, 3, 1, 15, 30, 0, 0, time.Local)
	m := NewMeasurement("  Carol ", SexFemale, at, 1.75, 70)

	if m.PersonName != "Carol" {
		t.Errorf("PersonName = %q, want Carol", m.PersonName)
	}
	if !m.MeasuredAt.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("MeasuredAt = %v, want 2024-03-01 UTC midnight", m.MeasuredAt)
	}
	if m.BMI == nil || *m.BMI != 22.86 {
		t.Errorf("BMI = %v, want 22.86", m.BMI)
	}
	if m.WHR != nil {
		t.Errorf("WHR = %v, want nil without waist/hip", *m.WHR)
	}

	m.WithWaistHip(80, 100)
	if m.WHR == nil || *m.WHR != 0.80 {
		t.Errorf("WHR = %v, want 0.80", m.WHR)
	}
}

func TestDeriveIgnoresStoredValues(t *testing.T) {
	m := NewMeasurement("Dan", SexMale, time.Now(), 1.80, 81)
	bogus := 99.0
	m.BMI = &bogus
	m.Derive()
	if m.BMI == nil || *m.BMI != 25 {
		t.Errorf("BMI = %v, want 25 after Derive", m.BMI)
	}

	zero := 0.0
	m.HeightM = &zero
	m.Derive()
	if m.BMI != nil {
		t.Errorf("BMI = %v, want nil for zero height", *m.BMI)
	}
}

func TestParseSex(t *testing.T) {
	tests := []struct {
		input string
		want  Sex
	}{
		{"Male", SexMale},
		{"m", SexMale},
		{"Masculino", SexMale},
		{"FEMALE", SexFemale},
		{"f", SexFemale},
		{"Feminino", SexFemale},
		{"", SexUnknown},
		{"other", SexUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseSex(tt.input); got != tt.want {
				t.Errorf("ParseSex(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	neg := -5.0

	tests := []struct {
		name      string
		m         *Measurement
		wantField string
	}{
		{"valid", NewMeasurement("Alice", SexFemale, day, 1.65, 60), ""},
		{"missing name", NewMeasurement("   ", SexFemale, day, 1.65, 60), "person_name"},
		{"zero height", NewMeasurement("Alice", SexFemale, day, 0, 60), "height_m"},
		{"zero weight", NewMeasurement("Alice", SexFemale, day, 1.65, 0), "weight_kg"},
		{"name checked first", NewMeasurement("", SexUnknown, time.Time{}, 0, 0), "person_name"},
		{"height before weight", NewMeasurement("Alice", SexFemale, day, -1, -1), "height_m"},
		{"unknown sex", NewMeasurement("Alice", SexUnknown, day, 1.65, 60), "sex"},
		{"missing date", NewMeasurement("Alice", SexFemale, time.Time{}, 1.65, 60), "measured_at"},
		{"negative visceral", NewMeasurement("Alice", SexFemale, day, 1.65, 60).WithBodyComposition(nil, nil, &neg), "visceral_fat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestDateOfZero(t *testing.T) {
	if !DateOf(time.Time{}).IsZero() {
		t.Error("DateOf(zero) should stay zero")
	}
}
