// ABOUTME: CLI command for classifying a single value into its health band.
// ABOUTME: Works without a store; useful for quick lookups.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/bodylog/internal/classify"
	"github.com/harperreed/bodylog/internal/models"
)

var classifySex string

var classifyCmd = &cobra.Command{
	Use:   "classify <kind> <value>",
	Short: "Classify a value into its health band",
	Long: `Classify a single value into its health band.

KINDS:

  bmi            body mass index (sex not needed)
  whr            waist-hip ratio (needs --sex)
  visceral_fat   visceral fat level (sex not needed)
  body_fat       body fat % (needs --sex)
  lean_mass      lean mass % (needs --sex)

Values outside the plausible range are reported as invalid.

EXAMPLES:

  bodylog classify bmi 27.3
  bodylog classify whr 0,92 --sex F
  bodylog classify body_fat 19 --sex M`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		kind, err := classify.ParseKind(args[0])
		if err != nil {
			names := make([]string, 0, len(classify.Kinds()))
			for _, k := range classify.Kinds() {
				names = append(names, string(k))
			}
			return fmt.Errorf("%w\nValid kinds: %s", err, strings.Join(names, ", "))
		}

		sex := models.ParseSex(classifySex)
		if classifySex != "" && sex == models.SexUnknown {
			return fmt.Errorf("invalid --sex: %q (use M or F)", classifySex)
		}

		r := classify.ClassifyText(kind, args[1], sex)
		v, _ := parseNumberFlag("value", args[1])
		printResult(out, string(kind), v, r)
		if !r.Valid() && sex == models.SexUnknown && kind != classify.KindBMI && kind != classify.KindVisceralFat {
			fmt.Fprintln(out, "  (this kind needs --sex)")
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&classifySex, "sex", "s", "", "sex: M or F")
	rootCmd.AddCommand(classifyCmd)
}
