// ABOUTME: MCP resource implementations for body measurements.
// ABOUTME: Provides bodylog://people and bodylog://latest resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/bodylog/internal/query"
	"github.com/harperreed/bodylog/internal/storage"
)

const (
	peopleURI = "bodylog://people"
	latestURI = "bodylog://latest"
)

func (s *Server) registerResources() {
	// bodylog://people - everyone with measurements
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         peopleURI,
		Name:        "People",
		Description: "Everyone with recorded measurements, with record counts and date span",
		MIMEType:    "application/json",
	}, s.handlePeopleResource)

	// bodylog://latest - most recent measurement per person
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         latestURI,
		Name:        "Latest Measurements",
		Description: "Most recent measurement of each person with BMI and waist-hip bands",
		MIMEType:    "application/json",
	}, s.handleLatestResource)
}

type personEntry struct {
	Name      string   `json:"name"`
	Records   int      `json:"records"`
	FirstDate string   `json:"first_date,omitempty"`
	LastDate  string   `json:"last_date,omitempty"`
	DeltaKg   *float64 `json:"delta_kg,omitempty"`
}

// Resource handlers

func (s *Server) handlePeopleResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.records()
	if err != nil {
		return nil, fmt.Errorf("failed to load measurements: %w", err)
	}

	people := make([]personEntry, 0)
	for _, name := range query.People(records) {
		entry := personEntry{
			Name:    name,
			Records: len(query.ForPerson(records, name)),
			DeltaKg: query.Delta(records, name),
		}
		if first := query.First(records, name); first != nil {
			entry.FirstDate = storage.FormatDate(first.MeasuredAt)
		}
		if latest := query.Latest(records, name); latest != nil {
			entry.LastDate = storage.FormatDate(latest.MeasuredAt)
		}
		people = append(people, entry)
	}

	return jsonResource(peopleURI, map[string]interface{}{
		"people": people,
		"count":  len(people),
	})
}

func (s *Server) handleLatestResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.records()
	if err != nil {
		return nil, fmt.Errorf("failed to load measurements: %w", err)
	}

	latest := make([]measurementView, 0)
	for _, name := range query.People(records) {
		if m := query.Latest(records, name); m != nil {
			latest = append(latest, viewOf(m))
		}
	}

	return jsonResource(latestURI, map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"latest":       latest,
	})
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
