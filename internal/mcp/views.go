// ABOUTME: JSON views of measurements and summaries returned by tools and resources.
// ABOUTME: Dates are rendered as YYYY-MM-DD strings.
package mcp

import (
	"github.com/harperreed/bodylog/internal/classify"
	"github.com/harperreed/bodylog/internal/models"
	"github.com/harperreed/bodylog/internal/query"
	"github.com/harperreed/bodylog/internal/storage"
)

type measurementView struct {
	PersonName     string   `json:"person_name"`
	Sex            string   `json:"sex,omitempty"`
	Date           string   `json:"date,omitempty"`
	HeightM        *float64 `json:"height_m,omitempty"`
	WeightKg       *float64 `json:"weight_kg,omitempty"`
	WaistCm        *float64 `json:"waist_cm,omitempty"`
	HipCm          *float64 `json:"hip_cm,omitempty"`
	BodyFatPct     *float64 `json:"body_fat_pct,omitempty"`
	LeanMassPct    *float64 `json:"lean_mass_pct,omitempty"`
	VisceralFat    *float64 `json:"visceral_fat,omitempty"`
	GoalWeightKg   *float64 `json:"goal_weight_kg,omitempty"`
	GoalWaistCm    *float64 `json:"goal_waist_cm,omitempty"`
	GoalBodyFatPct *float64 `json:"goal_body_fat_pct,omitempty"`
	BMI            *float64 `json:"bmi,omitempty"`
	BMIBand        string   `json:"bmi_band,omitempty"`
	WHR            *float64 `json:"whr,omitempty"`
	WHRBand        string   `json:"whr_band,omitempty"`
}

func viewOf(m *models.Measurement) measurementView {
	v := measurementView{
		PersonName:     m.PersonName,
		Sex:            string(m.Sex),
		HeightM:        m.HeightM,
		WeightKg:       m.WeightKg,
		WaistCm:        m.WaistCm,
		HipCm:          m.HipCm,
		BodyFatPct:     m.BodyFatPct,
		LeanMassPct:    m.LeanMassPct,
		VisceralFat:    m.VisceralFat,
		GoalWeightKg:   m.GoalWeightKg,
		GoalWaistCm:    m.GoalWaistCm,
		GoalBodyFatPct: m.GoalBodyFatPct,
		BMI:            m.BMI,
		WHR:            m.WHR,
	}
	if m.HasDate() {
		v.Date = storage.FormatDate(m.MeasuredAt)
	}
	if m.BMI != nil {
		v.BMIBand = classify.Classify(classify.KindBMI, m.BMI, m.Sex).Label
	}
	if m.WHR != nil {
		v.WHRBand = classify.Classify(classify.KindWHR, m.WHR, m.Sex).Label
	}
	return v
}

func viewsOf(records []*models.Measurement) []measurementView {
	out := make([]measurementView, 0, len(records))
	for _, m := range records {
		out = append(out, viewOf(m))
	}
	return out
}

type summaryView struct {
	Person          string            `json:"person"`
	Sex             string            `json:"sex,omitempty"`
	Records         int               `json:"records"`
	FirstDate       string            `json:"first_date,omitempty"`
	Current         measurementView   `json:"current"`
	FirstWeightKg   *float64          `json:"first_weight_kg,omitempty"`
	CurrentWeightKg *float64          `json:"current_weight_kg,omitempty"`
	DeltaKg         *float64          `json:"delta_kg,omitempty"`
	Classifications []classify.Result `json:"classifications"`
	Goals           query.GoalGaps    `json:"goals"`
	// WeightSeries is empty until the person has two dated weigh-ins.
	WeightSeries []pointView `json:"weight_series"`
}

type pointView struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
}

func pointsOf(points []query.Point) []pointView {
	out := make([]pointView, 0, len(points))
	for _, p := range points {
		out = append(out, pointView{Date: storage.FormatDate(p.Date), WeightKg: p.Value})
	}
	return out
}

func summaryViewOf(s *query.Summary) summaryView {
	v := summaryView{
		Person:          s.Person,
		Sex:             string(s.Sex),
		Records:         s.Records,
		Current:         viewOf(s.Current),
		FirstWeightKg:   s.FirstWeightKg,
		CurrentWeightKg: s.CurrentWeightKg,
		DeltaKg:         s.DeltaKg,
		Classifications: s.Classifications,
		Goals:           s.Goals,
		WeightSeries:    []pointView{},
	}
	if v.Classifications == nil {
		v.Classifications = []classify.Result{}
	}
	if s.First != nil {
		v.FirstDate = storage.FormatDate(s.First.MeasuredAt)
	}
	return v
}
