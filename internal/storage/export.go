// ABOUTME: Export and import functionality for measurement data.
// ABOUTME: Supports CSV, JSON, YAML, Markdown and XLSX export formats.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/bodylog/internal/classify"
	"github.com/harperreed/bodylog/internal/models"
)

// ExportData represents the full JSON export format.
type ExportData struct {
	Version        string                `json:"version" yaml:"version"`
	ExportedAt     time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool           string                `json:"tool" yaml:"tool"`
	SchemaRevision int                   `json:"schema_revision" yaml:"schema_revision"`
	Measurements   []*models.Measurement `json:"measurements" yaml:"measurements"`
}

// NewExportData wraps records in the export envelope.
func NewExportData(records []*models.Measurement) *ExportData {
	if records == nil {
		records = []*models.Measurement{}
	}
	return &ExportData{
		Version:        "1.0",
		ExportedAt:     time.Now(),
		Tool:           "bodylog",
		SchemaRevision: CurrentRevision,
		Measurements:   records,
	}
}

// ExportCSV renders records as a measurements table.
func ExportCSV(records []*models.Measurement) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTable(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON renders records in the JSON envelope.
func ExportJSON(records []*models.Measurement) ([]byte, error) {
	return json.MarshalIndent(NewExportData(records), "", "  ")
}

// ExportYAML renders records grouped by person.
func ExportYAML(records []*models.Measurement) ([]byte, error) {
	data := NewExportData(records)

	yamlData := struct {
		Version        string                       `yaml:"version"`
		ExportedAt     string                       `yaml:"exported_at"`
		Tool           string                       `yaml:"tool"`
		SchemaRevision int                          `yaml:"schema_revision"`
		People         map[string][]yamlMeasurement `yaml:"people"`
	}{
		Version:        data.Version,
		ExportedAt:     data.ExportedAt.Format(time.RFC3339),
		Tool:           data.Tool,
		SchemaRevision: data.SchemaRevision,
		People:         make(map[string][]yamlMeasurement),
	}

	for _, m := range data.Measurements {
		ym := yamlMeasurement{
			Sex:         string(m.Sex),
			HeightM:     m.HeightM,
			WeightKg:    m.WeightKg,
			WaistCm:     m.WaistCm,
			HipCm:       m.HipCm,
			BodyFatPct:  m.BodyFatPct,
			LeanMassPct: m.LeanMassPct,
			VisceralFat: m.VisceralFat,
			BMI:         m.BMI,
			WHR:         m.WHR,
		}
		if m.HasDate() {
			ym.Date = FormatDate(m.MeasuredAt)
		}
		yamlData.People[m.PersonName] = append(yamlData.People[m.PersonName], ym)
	}

	return yaml.Marshal(yamlData)
}

type yamlMeasurement struct {
	Date        string   `yaml:"date,omitempty"`
	Sex         string   `yaml:"sex,omitempty"`
	HeightM     *float64 `yaml:"height_m,omitempty"`
	WeightKg    *float64 `yaml:"weight_kg,omitempty"`
	WaistCm     *float64 `yaml:"waist_cm,omitempty"`
	HipCm       *float64 `yaml:"hip_cm,omitempty"`
	BodyFatPct  *float64 `yaml:"body_fat_pct,omitempty"`
	LeanMassPct *float64 `yaml:"lean_mass_pct,omitempty"`
	VisceralFat *float64 `yaml:"visceral_fat,omitempty"`
	BMI         *float64 `yaml:"bmi,omitempty"`
	WHR         *float64 `yaml:"whr,omitempty"`
}

// ExportMarkdown renders one table per person with BMI and WHR bands.
func ExportMarkdown(records []*models.Measurement) string {
	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Body Measurements Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	grouped := make(map[string][]*models.Measurement)
	for _, m := range records {
		grouped[m.PersonName] = append(grouped[m.PersonName], m)
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sb.WriteString(fmt.Sprintf("## %s\n\n", name))
		sb.WriteString("| Date | Weight | Height | Waist | Hip | BMI | WHR |\n")
		sb.WriteString("|------|--------|--------|-------|-----|-----|-----|\n")
		for _, m := range grouped[name] {
			date := ""
			if m.HasDate() {
				date = FormatDate(m.MeasuredAt)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
				date,
				withUnit(m.WeightKg, "kg"),
				withUnit(m.HeightM, "m"),
				withUnit(m.WaistCm, "cm"),
				withUnit(m.HipCm, "cm"),
				banded(m.BMI, classify.Classify(classify.KindBMI, m.BMI, m.Sex)),
				banded(m.WHR, classify.Classify(classify.KindWHR, m.WHR, m.Sex)),
			))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// DecodeJSON reads records from a JSON export and recomputes their derived values.
func DecodeJSON(data []byte) ([]*models.Measurement, error) {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	for _, m := range exportData.Measurements {
		m.MeasuredAt = models.DateOf(m.MeasuredAt)
		m.Derive()
	}
	return exportData.Measurements, nil
}

func withUnit(v *float64, unit string) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f %s", *v, unit)
}

func banded(v *float64, r classify.Result) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f (%s)", *v, r.Label)
}
