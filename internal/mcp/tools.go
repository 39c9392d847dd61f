// ABOUTME: MCP tool implementations for body measurements.
// ABOUTME: Provides add, list, delete-by-person, summary and classification tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"

	"github.com/harperreed/bodylog/internal/classify"
	"github.com/harperreed/bodylog/internal/models"
	"github.com/harperreed/bodylog/internal/query"
	"github.com/harperreed/bodylog/internal/storage"
)

func (s *Server) registerTools() {
	// add_measurement
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_measurement",
		Description: "Record a body measurement for a person; BMI and waist-hip ratio are computed",
	}, s.handleAddMeasurement)

	// list_measurements
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_measurements",
		Description: "List measurements newest first, optionally for one person and a date range",
	}, s.handleListMeasurements)

	// delete_person
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_person",
		Description: "Delete every measurement recorded for a person",
	}, s.handleDeletePerson)

	// get_summary
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_summary",
		Description: "Progress summary for a person: weight change, health bands and distance to goals",
	}, s.handleGetSummary)

	// classify
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "classify",
		Description: "Classify a BMI, waist-hip ratio, visceral fat, body fat or lean mass value into its health band",
	}, s.handleClassify)
}

// Tool input/output types

type addMeasurementInput struct {
	PersonName     string   `json:"person_name" jsonschema:"Name of the person measured"`
	Sex            string   `json:"sex" jsonschema:"Male or Female (M/F accepted)"`
	HeightM        float64  `json:"height_m" jsonschema:"Height in metres"`
	WeightKg       float64  `json:"weight_kg" jsonschema:"Weight in kilograms"`
	WaistCm        *float64 `json:"waist_cm,omitempty" jsonschema:"Waist circumference in centimetres"`
	HipCm          *float64 `json:"hip_cm,omitempty" jsonschema:"Hip circumference in centimetres"`
	BodyFatPct     *float64 `json:"body_fat_pct,omitempty" jsonschema:"Body fat percentage"`
	LeanMassPct    *float64 `json:"lean_mass_pct,omitempty" jsonschema:"Lean mass percentage"`
	VisceralFat    *float64 `json:"visceral_fat,omitempty" jsonschema:"Visceral fat level"`
	GoalWeightKg   *float64 `json:"goal_weight_kg,omitempty" jsonschema:"Target weight in kilograms"`
	GoalWaistCm    *float64 `json:"goal_waist_cm,omitempty" jsonschema:"Target waist in centimetres"`
	GoalBodyFatPct *float64 `json:"goal_body_fat_pct,omitempty" jsonschema:"Target body fat percentage"`
	Date           string   `json:"date,omitempty" jsonschema:"Measurement date (YYYY-MM-DD or DD/MM/YYYY), defaults to today"`
}

type addMeasurementOutput struct {
	Measurement     measurementView   `json:"measurement"`
	Classifications []classify.Result `json:"classifications"`
	Message         string            `json:"message"`
}

type listMeasurementsInput struct {
	PersonName string `json:"person_name,omitempty" jsonschema:"Only this person's measurements"`
	From       string `json:"from,omitempty" jsonschema:"Earliest date, inclusive"`
	To         string `json:"to,omitempty" jsonschema:"Latest date, inclusive"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listMeasurementsOutput struct {
	Count        int               `json:"count"`
	Measurements []measurementView `json:"measurements"`
	Message      string            `json:"message,omitempty"`
}

type personInput struct {
	PersonName string `json:"person_name" jsonschema:"Exact name of the person"`
}

type deletePersonOutput struct {
	Removed int    `json:"removed"`
	Message string `json:"message"`
}

type classifyInput struct {
	Kind  string  `json:"kind" jsonschema:"One of bmi, whr, visceral_fat, body_fat, lean_mass"`
	Value float64 `json:"value" jsonschema:"The value to classify"`
	Sex   string  `json:"sex,omitempty" jsonschema:"Male or Female; required for whr, body_fat and lean_mass"`
}

// Tool handlers

func (s *Server) handleAddMeasurement(ctx context.Context, req *mcp.CallToolRequest, input addMeasurementInput) (*mcp.CallToolResult, addMeasurementOutput, error) {
	measuredAt := models.DateOf(time.Now())
	if input.Date != "" {
		t, err := storage.ParseDate(input.Date)
		if err != nil {
			return nil, addMeasurementOutput{}, err
		}
		measuredAt = t
	}

	m := models.NewMeasurement(input.PersonName, models.ParseSex(input.Sex), measuredAt, input.HeightM, input.WeightKg)
	if input.WaistCm != nil && input.HipCm != nil {
		m.WithWaistHip(*input.WaistCm, *input.HipCm)
	} else {
		m.WaistCm, m.HipCm = input.WaistCm, input.HipCm
	}
	m.WithBodyComposition(input.BodyFatPct, input.LeanMassPct, input.VisceralFat)
	m.WithGoals(input.GoalWeightKg, input.GoalWaistCm, input.GoalBodyFatPct)

	if err := s.repo.Append(m); err != nil {
		return nil, addMeasurementOutput{}, fmt.Errorf("failed to add measurement: %w", err)
	}
	log.WithField("person", m.PersonName).Info("measurement added via mcp")

	out := addMeasurementOutput{
		Measurement:     viewOf(m),
		Classifications: []classify.Result{},
		Message:         fmt.Sprintf("Added measurement for %s on %s", m.PersonName, storage.FormatDate(m.MeasuredAt)),
	}
	for _, kv := range []struct {
		kind  classify.Kind
		value *float64
	}{
		{classify.KindBMI, m.BMI},
		{classify.KindWHR, m.WHR},
		{classify.KindBodyFat, m.BodyFatPct},
		{classify.KindLeanMass, m.LeanMassPct},
		{classify.KindVisceralFat, m.VisceralFat},
	} {
		if kv.value != nil {
			out.Classifications = append(out.Classifications, classify.Classify(kv.kind, kv.value, m.Sex))
		}
	}
	return nil, out, nil
}

func (s *Server) handleListMeasurements(ctx context.Context, req *mcp.CallToolRequest, input listMeasurementsInput) (*mcp.CallToolResult, listMeasurementsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var from, to time.Time
	var err error
	if input.From != "" {
		if from, err = storage.ParseDate(input.From); err != nil {
			return nil, listMeasurementsOutput{}, fmt.Errorf("invalid from date: %w", err)
		}
	}
	if input.To != "" {
		if to, err = storage.ParseDate(input.To); err != nil {
			return nil, listMeasurementsOutput{}, fmt.Errorf("invalid to date: %w", err)
		}
	}

	records, err := s.records()
	if err != nil {
		return nil, listMeasurementsOutput{}, fmt.Errorf("failed to list measurements: %w", err)
	}
	records = query.FilterByDateRange(records, from, to)

	var selected []*models.Measurement
	if input.PersonName != "" {
		selected = query.History(records, input.PersonName, input.Limit)
	} else {
		for _, name := range query.People(records) {
			selected = append(selected, query.History(records, name, 0)...)
		}
		sortNewestFirst(selected)
		if len(selected) > input.Limit {
			selected = selected[:input.Limit]
		}
	}

	out := listMeasurementsOutput{
		Count:        len(selected),
		Measurements: viewsOf(selected),
	}
	if len(selected) == 0 {
		out.Message = "No measurements found."
	}
	return nil, out, nil
}

func (s *Server) handleDeletePerson(ctx context.Context, req *mcp.CallToolRequest, input personInput) (*mcp.CallToolResult, deletePersonOutput, error) {
	if strings.TrimSpace(input.PersonName) == "" {
		return nil, deletePersonOutput{}, errors.New("person_name is required")
	}

	removed, err := s.repo.DeletePerson(input.PersonName)
	if err != nil {
		return nil, deletePersonOutput{}, fmt.Errorf("failed to delete person: %w", err)
	}

	msg := fmt.Sprintf("Deleted %d measurement(s) for %s", removed, input.PersonName)
	if removed == 0 {
		msg = fmt.Sprintf("No measurements found for %s", input.PersonName)
	}
	return nil, deletePersonOutput{Removed: removed, Message: msg}, nil
}

func (s *Server) handleGetSummary(ctx context.Context, req *mcp.CallToolRequest, input personInput) (*mcp.CallToolResult, summaryView, error) {
	records, err := s.records()
	if err != nil {
		return nil, summaryView{}, fmt.Errorf("failed to load measurements: %w", err)
	}

	summary, err := query.Summarize(records, input.PersonName)
	if err != nil {
		return nil, summaryView{}, err
	}
	out := summaryViewOf(summary)
	if series, err := query.WeightSeries(records, input.PersonName); err == nil {
		out.WeightSeries = pointsOf(series)
	}
	return nil, out, nil
}

func (s *Server) handleClassify(ctx context.Context, req *mcp.CallToolRequest, input classifyInput) (*mcp.CallToolResult, classify.Result, error) {
	kind, err := classify.ParseKind(input.Kind)
	if err != nil {
		return nil, classify.Result{}, err
	}
	return nil, classify.Classify(kind, &input.Value, models.ParseSex(input.Sex)), nil
}

// sortNewestFirst orders records across people by date, newest first, keeping ties stable.
func sortNewestFirst(records []*models.Measurement) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].MeasuredAt.After(records[j].MeasuredAt)
	})
}
