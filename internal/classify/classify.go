// ABOUTME: Health band classification for BMI, WHR and body-composition metrics.
// ABOUTME: One canonical set of threshold tables consumed by every surface.
package classify

import (
	"fmt"
	"math"
	"strings"

	"github.com/harperreed/bodylog/internal/calc"
	"github.com/harperreed/bodylog/internal/models"
)

// Kind identifies which metric a value belongs to.
type Kind string

const (
	KindBMI         Kind = "bmi"
	KindWHR         Kind = "whr"
	KindVisceralFat Kind = "visceral_fat"
	KindBodyFat     Kind = "body_fat"
	KindLeanMass    Kind = "lean_mass"
)

// Kinds returns every supported metric kind.
func Kinds() []Kind {
	return []Kind{KindBMI, KindWHR, KindVisceralFat, KindBodyFat, KindLeanMass}
}

// ParseKind resolves a kind name, accepting a few common aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bmi", "imc":
		return KindBMI, nil
	case "whr", "rcq", "c/q":
		return KindWHR, nil
	case "visceral_fat", "visceral":
		return KindVisceralFat, nil
	case "body_fat", "bodyfat", "fat":
		return KindBodyFat, nil
	case "lean_mass", "leanmass", "lean":
		return KindLeanMass, nil
	default:
		return "", fmt.Errorf("unknown metric kind: %s", s)
	}
}

// Level is the feedback severity of a band.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelInvalid Level = "invalid"
)

// InvalidLabel is the label given to values that cannot be classified.
const InvalidLabel = "Inválido"

// Result is the classification of one value.
type Result struct {
	Kind    Kind   `json:"kind"`
	Label   string `json:"label"`
	Name    string `json:"name"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
	// Rank is the ordinal of the band within its table, -1 when invalid.
	Rank int `json:"rank"`
}

// Valid reports whether the value fell into a band.
func (r Result) Valid() bool {
	return r.Level != LevelInvalid
}

// Classify maps a value to its band. It never panics: nil, NaN, infinite and
// out-of-domain values, or a missing sex for a sex-dependent kind, yield an invalid result.
func Classify(kind Kind, value *float64, sex models.Sex) Result {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return invalid(kind)
	}
	t, ok := tableFor(kind, sex)
	if !ok {
		return invalid(kind)
	}
	return t.lookup(kind, *value)
}

// ClassifyText coerces raw text before classifying it.
func ClassifyText(kind Kind, text string, sex models.Sex) Result {
	return Classify(kind, calc.ParseNumber(text), sex)
}

// BMI classifies a body mass index.
func BMI(v float64) Result {
	return Classify(KindBMI, &v, models.SexUnknown)
}

// WHR classifies a waist-to-hip ratio for the given sex.
func WHR(v float64, sex models.Sex) Result {
	return Classify(KindWHR, &v, sex)
}

// VisceralFat classifies a visceral fat score.
func VisceralFat(v float64) Result {
	return Classify(KindVisceralFat, &v, models.SexUnknown)
}

// BodyFat classifies a body-fat percentage for the given sex.
func BodyFat(v float64, sex models.Sex) Result {
	return Classify(KindBodyFat, &v, sex)
}

// LeanMass classifies a lean-mass percentage for the given sex.
func LeanMass(v float64, sex models.Sex) Result {
	return Classify(KindLeanMass, &v, sex)
}

func invalid(kind Kind) Result {
	return Result{
		Kind:    kind,
		Label:   InvalidLabel,
		Name:    "Invalid",
		Level:   LevelInvalid,
		Message: "Valor inválido para classificação",
		Rank:    -1,
	}
}

func tableFor(kind Kind, sex models.Sex) (table, bool) {
	switch kind {
	case KindBMI:
		return bmiTable, true
	case KindVisceralFat:
		return visceralTable, true
	case KindWHR:
		return bySex(whrTables, sex)
	case KindBodyFat:
		return bySex(bodyFatTables, sex)
	case KindLeanMass:
		return bySex(leanMassTables, sex)
	default:
		return table{}, false
	}
}

func bySex(tables map[models.Sex]table, sex models.Sex) (table, bool) {
	t, ok := tables[sex]
	return t, ok
}
