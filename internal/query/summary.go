// ABOUTME: Per-person progress summary combining views and classifications.
// ABOUTME: Reports weight change, current bands and distance to goals.
package query

import (
	"fmt"

	"github.com/harperreed/bodylog/internal/calc"
	"github.com/harperreed/bodylog/internal/classify"
	"github.com/harperreed/bodylog/internal/models"
)

// GoalGaps holds current value minus goal for each goal the person has set.
// Positive means above goal.
type GoalGaps struct {
	WeightKg   *float64 `json:"weight_kg,omitempty"`
	WaistCm    *float64 `json:"waist_cm,omitempty"`
	BodyFatPct *float64 `json:"body_fat_pct,omitempty"`
}

// Summary is the progress overview for one person.
type Summary struct {
	Person  string     `json:"person"`
	Sex     models.Sex `json:"sex"`
	Records int        `json:"records"`

	First   *models.Measurement `json:"first,omitempty"`
	Current *models.Measurement `json:"current"`

	FirstWeightKg   *float64 `json:"first_weight_kg,omitempty"`
	CurrentWeightKg *float64 `json:"current_weight_kg,omitempty"`
	DeltaKg         *float64 `json:"delta_kg,omitempty"`

	// Classifications has one result per indicator present on the current record.
	Classifications []classify.Result `json:"classifications"`
	Goals           GoalGaps          `json:"goals"`
}

// Summarize builds the summary for person.
// The current record is the latest dated one, or the last inserted when none is dated.
func Summarize(records []*models.Measurement, person string) (*Summary, error) {
	mine := ForPerson(records, person)
	if len(mine) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, person)
	}

	current := Latest(records, person)
	if current == nil {
		current = mine[len(mine)-1]
	}

	s := &Summary{
		Person:          person,
		Sex:             sexOf(mine, current),
		Records:         len(mine),
		First:           First(records, person),
		Current:         current,
		CurrentWeightKg: current.WeightKg,
		DeltaKg:         Delta(records, person),
	}
	if s.First != nil {
		s.FirstWeightKg = s.First.WeightKg
	}

	indicators := []struct {
		kind  classify.Kind
		value *float64
	}{
		{classify.KindBMI, current.BMI},
		{classify.KindWHR, current.WHR},
		{classify.KindBodyFat, current.BodyFatPct},
		{classify.KindLeanMass, current.LeanMassPct},
		{classify.KindVisceralFat, current.VisceralFat},
	}
	for _, ind := range indicators {
		if ind.value == nil {
			continue
		}
		s.Classifications = append(s.Classifications, classify.Classify(ind.kind, ind.value, s.Sex))
	}

	history := History(records, person, 0)
	if !current.HasDate() {
		history = append([]*models.Measurement{current}, history...)
	}
	s.Goals = GoalGaps{
		WeightKg:   gap(current.WeightKg, latestGoal(history, func(m *models.Measurement) *float64 { return m.GoalWeightKg })),
		WaistCm:    gap(current.WaistCm, latestGoal(history, func(m *models.Measurement) *float64 { return m.GoalWaistCm })),
		BodyFatPct: gap(current.BodyFatPct, latestGoal(history, func(m *models.Measurement) *float64 { return m.GoalBodyFatPct })),
	}

	return s, nil
}

// Classification returns the summary's result for kind, if present.
func (s *Summary) Classification(kind classify.Kind) (classify.Result, bool) {
	for _, r := range s.Classifications {
		if r.Kind == kind {
			return r, true
		}
	}
	return classify.Result{}, false
}

func sexOf(mine []*models.Measurement, current *models.Measurement) models.Sex {
	if current.Sex.Valid() {
		return current.Sex
	}
	for i := len(mine) - 1; i >= 0; i-- {
		if mine[i].Sex.Valid() {
			return mine[i].Sex
		}
	}
	return models.SexUnknown
}

// latestGoal returns the newest goal value set in history (newest first).
func latestGoal(history []*models.Measurement, goal func(*models.Measurement) *float64) *float64 {
	for _, m := range history {
		if v := goal(m); v != nil {
			return v
		}
	}
	return nil
}

func gap(current, goal *float64) *float64 {
	if current == nil || goal == nil {
		return nil
	}
	g := calc.Round2(*current - *goal)
	return &g
}
