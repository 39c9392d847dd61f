// ABOUTME: CLI commands for listing measurements and people.
// ABOUTME: Supports a person filter, an inclusive date range and a result limit.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/bodylog/internal/classify"
	"github.com/harperreed/bodylog/internal/models"
	"github.com/harperreed/bodylog/internal/query"
)

var (
	listFrom  string
	listTo    string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list [name]",
	Aliases: []string{"ls", "l"},
	Short:   "List measurements",
	Long: `List measurements newest first, grouped by person.

OUTPUT FORMAT:

  Each line shows: DATE  WEIGHT  HEIGHT  BMI (band)  WAIST-HIP (band)

  Rows whose stored date could not be read are not listed.

FILTERING:

  Give a name to show one person only (exact match).
  --from and --to bound the dates, both inclusive.

EXAMPLES:

  bodylog list                          # Everyone, last 20 each
  bodylog list Carol                    # Carol's history
  bodylog list Carol --from 2024-01-01  # Since January
  bodylog list -n 5                     # Last 5 per person`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		from, err := parseDateFlag("from", listFrom)
		if err != nil {
			return err
		}
		to, err := parseDateFlag("to", listTo)
		if err != nil {
			return err
		}

		records, err := loadRecords(out)
		if err != nil {
			return err
		}
		records = query.FilterByDateRange(records, from, to)

		people := query.People(records)
		if len(args) == 1 {
			people = []string{args[0]}
		}

		shown := 0
		for _, name := range people {
			history := query.History(records, name, listLimit)
			if len(history) == 0 {
				continue
			}
			if shown > 0 {
				fmt.Fprintln(out)
			}
			printHistory(out, name, history)
			shown++
		}

		if shown == 0 {
			fmt.Fprintln(out, "No measurements found.")
		}
		return nil
	},
}

func printHistory(w io.Writer, name string, history []*models.Measurement) {
	faint := color.New(color.Faint)
	color.New(color.Bold).Fprintf(w, "%s\n", name)
	for _, m := range history {
		bmi := classify.Classify(classify.KindBMI, m.BMI, m.Sex)
		fmt.Fprintf(w, "  %s %s kg  %s m  BMI %s",
			faint.Sprint(formatDate(m)),
			padRight(formatValue(m.WeightKg), 6),
			formatValue(m.HeightM),
			levelColor(bmi.Level).Sprintf("%s (%s)", formatValue(m.BMI), bmi.Label))
		if m.WHR != nil {
			whr := classify.Classify(classify.KindWHR, m.WHR, m.Sex)
			fmt.Fprintf(w, "  WHR %s", levelColor(whr.Level).Sprintf("%s (%s)", formatValue(m.WHR), whr.Label))
		}
		fmt.Fprintln(w)
	}
}

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "List everyone with measurements",
	Long: `List everyone with recorded measurements, in the order they were first added,
with their record count, latest date, weight change from first to latest
measurement and current BMI band.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		records, err := loadRecords(out)
		if err != nil {
			return err
		}

		people := query.People(records)
		if len(people) == 0 {
			fmt.Fprintln(out, "No people found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, name := range people {
			s, err := query.Summarize(records, name)
			if err != nil {
				return err
			}
			delta := ""
			if s.DeltaKg != nil {
				delta = fmt.Sprintf("%+.2f kg", *s.DeltaKg)
			}
			band := ""
			if r, ok := s.Classification(classify.KindBMI); ok {
				band = levelColor(r.Level).Sprint(r.Label)
			}
			fmt.Fprintf(out, "%s %s %s %s %s\n",
				padRight(name, 20),
				faint.Sprintf("%3d record(s)", s.Records),
				faint.Sprint(padRight(formatDate(s.Current), 10)),
				padRight(delta, 10),
				band)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "earliest date, inclusive")
	listCmd.Flags().StringVar(&listTo, "to", "", "latest date, inclusive")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max results per person (0 for all)")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(peopleCmd)
}
