// ABOUTME: CLI command for adding a body measurement.
// ABOUTME: Validates input, appends to the store and prints the computed bands.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/bodylog/internal/classify"
	"github.com/harperreed/bodylog/internal/models"
	"github.com/harperreed/bodylog/internal/storage"
)

var (
	addSex         string
	addHeight      string
	addWeight      string
	addWaist       string
	addHip         string
	addBodyFat     string
	addLeanMass    string
	addVisceral    string
	addGoalWeight  string
	addGoalWaist   string
	addGoalBodyFat string
	addDate        string
)

var addCmd = &cobra.Command{
	Use:     "add <name>",
	Aliases: []string{"a"},
	Short:   "Add a body measurement",
	Long: `Add a body measurement for a person. Sex, height and weight are required.

Numbers accept a decimal point or comma (1.70 or 1,70). Height is in metres,
weight in kilograms, circumferences in centimetres.

Examples:
  bodylog add Carol --sex F --height 1.65 --weight 70
  bodylog add Bob --sex M --height 1.80 --weight 95 --waist 102 --hip 100
  bodylog add Carol --sex F --height 1.65 --weight 65 --body-fat 27 --goal-weight 60
  bodylog add Carol --sex F --height 1.65 --weight 66 --date 15/02/2024`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		m, err := buildMeasurement(args[0])
		if err != nil {
			return err
		}

		if err := store.Append(m); err != nil {
			return fmt.Errorf("failed to add measurement: %w", err)
		}

		color.New(color.FgGreen).Fprintf(out, "✓ Added measurement for %s\n", m.PersonName)
		fmt.Fprintf(out, "  %s %.2f kg %.2f m\n",
			color.New(color.Faint).Sprint(storage.FormatDate(m.MeasuredAt)),
			*m.WeightKg, *m.HeightM)
		printResult(out, "BMI", m.BMI, classify.Classify(classify.KindBMI, m.BMI, m.Sex))
		if m.WHR != nil {
			printResult(out, "Waist-hip", m.WHR, classify.Classify(classify.KindWHR, m.WHR, m.Sex))
		}
		if m.BodyFatPct != nil {
			printResult(out, "Body fat %", m.BodyFatPct, classify.Classify(classify.KindBodyFat, m.BodyFatPct, m.Sex))
		}
		if m.LeanMassPct != nil {
			printResult(out, "Lean mass %", m.LeanMassPct, classify.Classify(classify.KindLeanMass, m.LeanMassPct, m.Sex))
		}
		if m.VisceralFat != nil {
			printResult(out, "Visceral fat", m.VisceralFat, classify.Classify(classify.KindVisceralFat, m.VisceralFat, m.Sex))
		}
		return nil
	},
}

// buildMeasurement turns the add flags into a measurement. Validation happens on append.
func buildMeasurement(name string) (*models.Measurement, error) {
	m := &models.Measurement{
		PersonName: strings.TrimSpace(name),
		Sex:        models.ParseSex(addSex),
		MeasuredAt: models.DateOf(time.Now()),
	}
	if addSex != "" && m.Sex == models.SexUnknown {
		return nil, fmt.Errorf("invalid --sex: %q (use M or F)", addSex)
	}

	date, err := parseDateFlag("date", addDate)
	if err != nil {
		return nil, err
	}
	if !date.IsZero() {
		m.MeasuredAt = date
	}

	numbers := []struct {
		flag  string
		value string
		dst   **float64
	}{
		{"height", addHeight, &m.HeightM},
		{"weight", addWeight, &m.WeightKg},
		{"waist", addWaist, &m.WaistCm},
		{"hip", addHip, &m.HipCm},
		{"body-fat", addBodyFat, &m.BodyFatPct},
		{"lean-mass", addLeanMass, &m.LeanMassPct},
		{"visceral", addVisceral, &m.VisceralFat},
		{"goal-weight", addGoalWeight, &m.GoalWeightKg},
		{"goal-waist", addGoalWaist, &m.GoalWaistCm},
		{"goal-body-fat", addGoalBodyFat, &m.GoalBodyFatPct},
	}
	for _, n := range numbers {
		v, err := parseNumberFlag(n.flag, n.value)
		if err != nil {
			return nil, err
		}
		*n.dst = v
	}

	m.Derive()
	return m, nil
}

func init() {
	addCmd.Flags().StringVarP(&addSex, "sex", "s", "", "sex: M or F (required)")
	addCmd.Flags().StringVar(&addHeight, "height", "", "height in metres (required)")
	addCmd.Flags().StringVarP(&addWeight, "weight", "w", "", "weight in kg (required)")
	addCmd.Flags().StringVar(&addWaist, "waist", "", "waist circumference in cm")
	addCmd.Flags().StringVar(&addHip, "hip", "", "hip circumference in cm")
	addCmd.Flags().StringVar(&addBodyFat, "body-fat", "", "body fat %")
	addCmd.Flags().StringVar(&addLeanMass, "lean-mass", "", "lean mass %")
	addCmd.Flags().StringVar(&addVisceral, "visceral", "", "visceral fat level")
	addCmd.Flags().StringVar(&addGoalWeight, "goal-weight", "", "target weight in kg")
	addCmd.Flags().StringVar(&addGoalWaist, "goal-waist", "", "target waist in cm")
	addCmd.Flags().StringVar(&addGoalBodyFat, "goal-body-fat", "", "target body fat %")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "measurement date (YYYY-MM-DD or DD/MM/YYYY), default today")
	rootCmd.AddCommand(addCmd)
}
