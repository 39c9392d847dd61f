// ABOUTME: CLI command showing a person's progress summary.
// ABOUTME: Prints weight change, current health bands and distance to goals.
package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/bodylog/internal/classify"
	"github.com/harperreed/bodylog/internal/query"
)

var summaryCmd = &cobra.Command{
	Use:     "summary <name>",
	Aliases: []string{"sum"},
	Short:   "Show a person's progress",
	Long: `Show a progress summary for one person: first and current weight and
the change between them, the health band of every indicator on the latest
measurement, and how far each goal still is. With two or more dated
weigh-ins a trend line follows.

Goal distance is current minus goal: positive means above the goal.

EXAMPLES:

  bodylog summary Carol`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		table, err := loadTable(out)
		if err != nil {
			return err
		}

		s, err := query.Summarize(table.Records, args[0])
		if errors.Is(err, query.ErrPersonNotFound) {
			fmt.Fprintf(out, "No measurements found for %s.\n", args[0])
			return nil
		}
		if err != nil {
			return err
		}

		printSummary(out, s)
		if series, err := query.WeightSeries(table.Chartable(), args[0]); err == nil {
			fmt.Fprintf(out, "\n  Trend     %s  %s\n", sparkline(series), color.New(color.Faint).Sprintf("%d weigh-ins", len(series)))
		}
		return nil
	},
}

var summaryTitles = map[classify.Kind]string{
	classify.KindBMI:         "BMI",
	classify.KindWHR:         "Waist-hip",
	classify.KindBodyFat:     "Body fat %",
	classify.KindLeanMass:    "Lean mass %",
	classify.KindVisceralFat: "Visceral fat",
}

func printSummary(w io.Writer, s *query.Summary) {
	faint := color.New(color.Faint)

	color.New(color.Bold).Fprintf(w, "%s", s.Person)
	if s.Sex != "" {
		faint.Fprintf(w, " (%s)", s.Sex)
	}
	fmt.Fprintf(w, "  %d record(s)\n\n", s.Records)

	if s.First != nil {
		fmt.Fprintf(w, "  First     %s kg  %s\n", formatValue(s.FirstWeightKg), faint.Sprint(formatDate(s.First)))
	}
	fmt.Fprintf(w, "  Current   %s kg  %s\n", formatValue(s.CurrentWeightKg), faint.Sprint(formatDate(s.Current)))
	if s.DeltaKg != nil {
		c := color.New(color.FgGreen)
		if *s.DeltaKg > 0 {
			c = color.New(color.FgYellow)
		}
		c.Fprintf(w, "  Change    %+.2f kg\n", *s.DeltaKg)
	}

	if len(s.Classifications) > 0 {
		fmt.Fprintln(w)
		for _, r := range s.Classifications {
			printResult(w, summaryTitles[r.Kind], valueFor(s, r.Kind), r)
		}
	}

	goals := []struct {
		title string
		gap   *float64
		unit  string
	}{
		{"Weight", s.Goals.WeightKg, "kg"},
		{"Waist", s.Goals.WaistCm, "cm"},
		{"Body fat", s.Goals.BodyFatPct, "%"},
	}
	printedHeader := false
	for _, g := range goals {
		if g.gap == nil {
			continue
		}
		if !printedHeader {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "  Goals")
			printedHeader = true
		}
		if *g.gap <= 0 {
			color.New(color.FgGreen).Fprintf(w, "    %s reached (%+.2f %s)\n", padRight(g.title, 9), *g.gap, g.unit)
			continue
		}
		fmt.Fprintf(w, "    %s %.2f %s to go\n", padRight(g.title, 9), *g.gap, g.unit)
	}
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders the series scaled between its own min and max.
func sparkline(points []query.Point) string {
	lo, hi := points[0].Value, points[0].Value
	for _, p := range points {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	out := make([]rune, len(points))
	for i, p := range points {
		idx := 0
		if hi > lo {
			idx = int((p.Value - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}

func valueFor(s *query.Summary, kind classify.Kind) *float64 {
	m := s.Current
	switch kind {
	case classify.KindBMI:
		return m.BMI
	case classify.KindWHR:
		return m.WHR
	case classify.KindBodyFat:
		return m.BodyFatPct
	case classify.KindLeanMass:
		return m.LeanMassPct
	case classify.KindVisceralFat:
		return m.VisceralFat
	}
	return nil
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
