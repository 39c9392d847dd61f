// ABOUTME: Read-side views over loaded measurements.
// ABOUTME: Latest, first, weight delta, date ranges, per-person history and chart series.
package query

import (
	"errors"
	"sort"
	"time"

	"github.com/harperreed/bodylog/internal/calc"
	"github.com/harperreed/bodylog/internal/models"
)

// ErrInsufficientData is returned when a view needs more dated points than exist.
var ErrInsufficientData = errors.New("not enough dated measurements")

// ErrPersonNotFound is returned when no record carries the requested name.
var ErrPersonNotFound = errors.New("person not found")

// ForPerson returns the person's records ascending by date.
// Records with an unknown date keep their insertion order and go last.
func ForPerson(records []*models.Measurement, person string) []*models.Measurement {
	var out []*models.Measurement
	for _, m := range records {
		if m.PersonName == person {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		return a.MeasuredAt.Before(b.MeasuredAt)
	})
	return out
}

// History returns the person's dated records newest first, at most limit of them (limit <= 0 means all).
// Records measured on the same day are listed most recently inserted first.
func History(records []*models.Measurement, person string, limit int) []*models.Measurement {
	asc := ForPerson(records, person)
	out := make([]*models.Measurement, 0, len(asc))
	for i := len(asc) - 1; i >= 0; i-- {
		if asc[i].HasDate() {
			out = append(out, asc[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// People returns the distinct person names in first-seen order.
func People(records []*models.Measurement) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range records {
		if m.PersonName == "" || seen[m.PersonName] {
			continue
		}
		seen[m.PersonName] = true
		names = append(names, m.PersonName)
	}
	return names
}

// Latest returns the person's record with the greatest date, or nil.
// On equal dates the last inserted record wins.
func Latest(records []*models.Measurement, person string) *models.Measurement {
	var best *models.Measurement
	for _, m := range records {
		if m.PersonName != person || !m.HasDate() {
			continue
		}
		if best == nil || !m.MeasuredAt.Before(best.MeasuredAt) {
			best = m
		}
	}
	return best
}

// First returns the person's record with the smallest date, or nil.
// On equal dates the first inserted record wins.
func First(records []*models.Measurement, person string) *models.Measurement {
	var best *models.Measurement
	for _, m := range records {
		if m.PersonName != person || !m.HasDate() {
			continue
		}
		if best == nil || m.MeasuredAt.Before(best.MeasuredAt) {
			best = m
		}
	}
	return best
}

// Delta returns latest weight minus first weight, rounded to two decimals.
// It is nil when the person has fewer than two dated records or either end lacks a weight.
func Delta(records []*models.Measurement, person string) *float64 {
	dated := 0
	for _, m := range records {
		if m.PersonName == person && m.HasDate() {
			dated++
		}
	}
	if dated < 2 {
		return nil
	}
	first, latest := First(records, person), Latest(records, person)
	if first.WeightKg == nil || latest.WeightKg == nil {
		return nil
	}
	d := calc.Round2(*latest.WeightKg - *first.WeightKg)
	return &d
}

// FilterByDateRange keeps records dated within [start, end], preserving order.
// A zero bound is open. Undated records are dropped whenever a bound is set.
func FilterByDateRange(records []*models.Measurement, start, end time.Time) []*models.Measurement {
	start, end = models.DateOf(start), models.DateOf(end)
	out := make([]*models.Measurement, 0, len(records))
	for _, m := range records {
		if !start.IsZero() || !end.IsZero() {
			if !m.HasDate() {
				continue
			}
			if !start.IsZero() && m.MeasuredAt.Before(start) {
				continue
			}
			if !end.IsZero() && m.MeasuredAt.After(end) {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// Point is one value on a dated series.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// WeightSeries returns the person's weight over time, ascending.
// Records without a date or weight are skipped.
func WeightSeries(records []*models.Measurement, person string) ([]Point, error) {
	var points []Point
	for _, m := range ForPerson(records, person) {
		if !m.HasDate() || m.WeightKg == nil {
			continue
		}
		points = append(points, Point{Date: m.MeasuredAt, Value: *m.WeightKg})
	}
	if len(points) < 2 {
		return points, ErrInsufficientData
	}
	return points, nil
}
