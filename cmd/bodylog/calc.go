// ABOUTME: CLI command computing BMI and waist-hip ratio without storing anything.
// ABOUTME: Takes raw values as typed, decimal comma included.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/bodylog/internal/calc"
	"github.com/harperreed/bodylog/internal/classify"
	"github.com/harperreed/bodylog/internal/models"
)

var (
	calcSex   string
	calcWaist string
	calcHip   string
)

var calcCmd = &cobra.Command{
	Use:   "calc <weight-kg> <height-m>",
	Short: "Compute BMI and waist-hip ratio",
	Long: `Compute BMI, and the waist-hip ratio when --waist and --hip are given,
then classify them. Nothing is stored.

EXAMPLES:

  bodylog calc 70 1.75
  bodylog calc 65,5 1,65 --waist 78 --hip 100 --sex F`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		sex := models.ParseSex(calcSex)
		if calcSex != "" && sex == models.SexUnknown {
			return fmt.Errorf("invalid --sex: %q (use M or F)", calcSex)
		}

		bmi := calc.BMIString(args[0], args[1])
		if bmi == nil {
			return fmt.Errorf("cannot compute BMI from weight %q and height %q", args[0], args[1])
		}
		printResult(out, "BMI", bmi, classify.Classify(classify.KindBMI, bmi, sex))

		if calcWaist == "" && calcHip == "" {
			return nil
		}
		whr := calc.WHRString(calcWaist, calcHip)
		if whr == nil {
			return fmt.Errorf("cannot compute waist-hip ratio from waist %q and hip %q", calcWaist, calcHip)
		}
		printResult(out, "Waist-hip", whr, classify.Classify(classify.KindWHR, whr, sex))
		if sex == models.SexUnknown {
			fmt.Fprintln(out, "  (the waist-hip band needs --sex)")
		}
		return nil
	},
}

func init() {
	calcCmd.Flags().StringVarP(&calcSex, "sex", "s", "", "sex: M or F")
	calcCmd.Flags().StringVar(&calcWaist, "waist", "", "waist circumference in cm")
	calcCmd.Flags().StringVar(&calcHip, "hip", "", "hip circumference in cm")
	rootCmd.AddCommand(calcCmd)
}
