// ABOUTME: Shared helpers for CLI commands.
// ABOUTME: Loading for read views, band colouring, flag parsing and column formatting.
package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/harperreed/bodylog/internal/calc"
	"github.com/harperreed/bodylog/internal/classify"
	"github.com/harperreed/bodylog/internal/models"
	"github.com/harperreed/bodylog/internal/storage"
)

// loadTable loads the table for a read-only view. A corrupt store prints a
// diagnostic and reads as empty; write commands must call store.Load directly.
func loadTable(w io.Writer) (*storage.LoadResult, error) {
	result, err := store.Load()
	if err != nil {
		if errors.Is(err, storage.ErrStoreCorrupt) {
			color.New(color.FgRed).Fprintf(w, "! %v\n", err)
			fmt.Fprintln(w, "  Showing an empty table; fix or move the file to continue.")
			return &storage.LoadResult{Revision: storage.CurrentRevision}, nil
		}
		return nil, fmt.Errorf("failed to load measurements: %w", err)
	}
	if n := len(result.IssueList()); n > 0 {
		color.New(color.FgYellow).Fprintf(w, "! %d stored value(s) could not be read and are shown blank\n", n)
	}
	return result, nil
}

func loadRecords(w io.Writer) ([]*models.Measurement, error) {
	result, err := loadTable(w)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

func levelColor(level classify.Level) *color.Color {
	switch level {
	case classify.LevelSuccess:
		return color.New(color.FgGreen)
	case classify.LevelWarning:
		return color.New(color.FgYellow)
	case classify.LevelError:
		return color.New(color.FgRed)
	default:
		return color.New(color.Faint)
	}
}

// printResult writes one classification line, coloured by level.
func printResult(w io.Writer, title string, value *float64, r classify.Result) {
	levelColor(r.Level).Fprintf(w, "  %s %s  %s", padRight(title, 14), padRight(formatValue(value), 7), r.Label)
	if r.Message != "" {
		fmt.Fprint(w, color.New(color.Faint).Sprintf(" - %s", r.Message))
	}
	fmt.Fprintln(w)
}

// parseDateFlag parses an optional date flag; empty means unset.
func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := storage.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return t, nil
}

// parseNumberFlag parses an optional numeric flag, accepting a decimal comma.
func parseNumberFlag(name, value string) (*float64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	v := calc.ParseNumber(value)
	if v == nil {
		return nil, fmt.Errorf("invalid --%s: %q is not a number", name, value)
	}
	return v, nil
}

func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatDate(m *models.Measurement) string {
	if !m.HasDate() {
		return "????-??-??"
	}
	return storage.FormatDate(m.MeasuredAt)
}

func padRight(s string, length int) string {
	if len([]rune(s)) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len([]rune(s)))
}
