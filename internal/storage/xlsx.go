// ABOUTME: Spreadsheet export of measurements via excelize.
// ABOUTME: Writes one sheet with the current header plus BMI/WHR band labels.
package storage

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/harperreed/bodylog/internal/classify"
	"github.com/harperreed/bodylog/internal/models"
)

// XLSXSheetName is the sheet measurements are written to.
const XLSXSheetName = "Measurements"

// ExportXLSX renders records as an Excel workbook.
func ExportXLSX(records []*models.Measurement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(XLSXSheetName); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(XLSXSheetName)
	if err != nil {
		return nil, fmt.Errorf("find sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	header := append(Header(), "bmi_band", "whr_band")
	if err := writeRow(f, 1, toCells(header)); err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, fmt.Errorf("convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(XLSXSheetName, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("set header style: %w", err)
	}

	for i, m := range records {
		if err := writeRow(f, i+2, xlsxRow(m)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// xlsxRow mirrors encodeRow but keeps numbers numeric so spreadsheets can chart them.
func xlsxRow(m *models.Measurement) []any {
	date := any("")
	if m.HasDate() {
		date = FormatDate(m.MeasuredAt)
	}
	row := []any{
		m.PersonName,
		string(m.Sex),
		date,
		cellNumber(m.HeightM),
		cellNumber(m.WeightKg),
		cellNumber(m.WaistCm),
		cellNumber(m.HipCm),
		cellNumber(m.BMI),
		cellNumber(m.WHR),
		cellNumber(m.BodyFatPct),
		cellNumber(m.LeanMassPct),
		cellNumber(m.VisceralFat),
		cellNumber(m.GoalWeightKg),
		cellNumber(m.GoalWaistCm),
		cellNumber(m.GoalBodyFatPct),
	}
	return append(row,
		bandLabel(m.BMI, classify.Classify(classify.KindBMI, m.BMI, m.Sex)),
		bandLabel(m.WHR, classify.Classify(classify.KindWHR, m.WHR, m.Sex)),
	)
}

func writeRow(f *excelize.File, rowNum int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("convert coordinates: %w", err)
	}
	if err := f.SetSheetRow(XLSXSheetName, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func cellNumber(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func bandLabel(v *float64, r classify.Result) string {
	if v == nil {
		return ""
	}
	return r.Label
}
