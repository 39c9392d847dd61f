// ABOUTME: CLI command for upgrading a store written by an older version.
// ABOUTME: Rewrites the table with the current header; legacy columns map onto new names.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/bodylog/internal/storage"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Upgrade the store to the current table layout",
	Long: `Upgrade the measurement store to the current table layout.

Older versions wrote fewer columns, or Portuguese headers (Nome, Sexo,
Data, Altura, Peso, Cintura, Quadril, IMC, C/Q). Those files are read
as-is, but new columns such as body composition and goals only exist
after an upgrade. The upgrade rewrites the file atomically; values that
could not be read are kept verbatim.

USAGE:

  bodylog migrate --dry-run   # Preview what would change
  bodylog migrate             # Rewrite the store`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if migrateDryRun {
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			fmt.Fprintln(out)
		}

		summary, err := storage.Upgrade(store, migrateDryRun)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		fmt.Fprintf(out, "Store:     %s\n", store.Path())
		fmt.Fprintf(out, "Revision:  %d -> %d\n", summary.FromRevision, summary.ToRevision)
		fmt.Fprintf(out, "Records:   %d\n", summary.Records)
		if len(summary.AddedColumns) > 0 {
			fmt.Fprintf(out, "New columns: %s\n", strings.Join(summary.AddedColumns, ", "))
		}
		fmt.Fprintln(out)

		switch {
		case summary.FromRevision >= summary.ToRevision:
			color.New(color.FgGreen).Fprintln(out, "✓ Store is already up to date")
		case summary.Rewritten:
			color.New(color.FgGreen).Fprintln(out, "✓ Store upgraded")
		default:
			fmt.Fprintln(out, "Run without --dry-run to upgrade.")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
