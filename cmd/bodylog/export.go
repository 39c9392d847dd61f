// ABOUTME: CLI commands for exporting and importing measurement data.
// ABOUTME: Supports CSV, JSON, YAML, Markdown and XLSX export; CSV and JSON import.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/harperreed/bodylog/internal/models"
	"github.com/harperreed/bodylog/internal/query"
	"github.com/harperreed/bodylog/internal/storage"
)

var (
	exportOutput string
	exportPerson string
	exportFrom   string
	exportTo     string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export measurement data",
	Long: `Export measurement data in various formats.

FORMATS:

  csv        The store's own table layout (suitable for backup/restore)
  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export grouped by person (human-readable)
  markdown   Markdown tables per person with BMI and waist-hip bands
  xlsx       Excel workbook (requires --output)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --person, -p   Only this person's measurements
  --from, --to   Only measurements within these dates (inclusive)

EXAMPLES:

  bodylog export json -o backup.json
  bodylog export markdown --person Carol
  bodylog export xlsx -o progress.xlsx --from 2024-01-01`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"csv", "json", "yaml", "markdown", "xlsx"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		from, err := parseDateFlag("from", exportFrom)
		if err != nil {
			return err
		}
		to, err := parseDateFlag("to", exportTo)
		if err != nil {
			return err
		}

		// A corrupt store fails the export rather than reading as empty.
		result, err := store.Load()
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if n := len(result.IssueList()); n > 0 {
			color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "! %d stored value(s) could not be read and are exported blank\n", n)
		}
		records := filterExport(result.Records, from, to)

		var data []byte
		switch format {
		case "csv":
			data, err = storage.ExportCSV(records)
		case "json":
			data, err = storage.ExportJSON(records)
		case "yaml":
			data, err = storage.ExportYAML(records)
		case "markdown", "md":
			data = []byte(storage.ExportMarkdown(records))
		case "xlsx":
			if exportOutput == "" {
				return fmt.Errorf("xlsx export needs --output")
			}
			data, err = storage.ExportXLSX(records)
		default:
			return fmt.Errorf("unknown format: %s (use csv, json, yaml, markdown, or xlsx)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported %d measurement(s) to %s\n", len(records), exportOutput)
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), string(data))
		if !bytes.HasSuffix(data, []byte("\n")) {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	},
}

func filterExport(records []*models.Measurement, from, to time.Time) []*models.Measurement {
	records = query.FilterByDateRange(records, from, to)
	if exportPerson == "" {
		return records
	}
	return query.ForPerson(records, exportPerson)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import measurements from CSV or JSON",
	Long: `Import measurements from a CSV table or a JSON export.

CSV files may use the current header or a legacy one (Nome, Sexo, Data,
Altura, Peso, ...); dates may be day-first. Records that fail validation,
for example rows without a readable date, are skipped and reported.

EXAMPLES:

  bodylog import backup.json
  bodylog import old_measurements.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var records []*models.Measurement
		if strings.EqualFold(filepath.Ext(filename), ".json") {
			records, err = storage.DecodeJSON(data)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
		} else {
			result, err := storage.DecodeTable(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			for _, issue := range result.IssueList() {
				color.New(color.FgYellow).Fprintf(out, "! %v\n", issue)
			}
			records = result.Records
		}

		summary, err := storage.Import(store, records)
		if err != nil {
			return fmt.Errorf("import failed after %d record(s): %w", summary.Imported, err)
		}

		color.New(color.FgGreen).Fprintf(out, "✓ Imported %d measurement(s) from %s\n", summary.Imported, filename)
		if summary.Skipped > 0 {
			color.New(color.FgYellow).Fprintf(out, "  Skipped %d invalid record(s):\n", summary.Skipped)
			for _, e := range multierr.Errors(summary.Rejected) {
				fmt.Fprintf(out, "    %v\n", e)
			}
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportPerson, "person", "p", "", "only this person's measurements")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "earliest date, inclusive")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "latest date, inclusive")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
