// ABOUTME: CLI command for deleting a person's measurements.
// ABOUTME: Removes every record with an exactly matching name after confirmation.
package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete all measurements of a person",
	Long: `Delete every measurement recorded for a person.

The name must match exactly, including case. Deleting a person with no
records does nothing.

EXAMPLES:

  bodylog delete Carol         # Asks for confirmation
  bodylog rm Carol --yes       # No prompt

CAUTION:

  This permanently deletes the records. There is no undo; export first
  if you may want them back.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		name := args[0]

		if !deleteYes {
			fmt.Fprintf(out, "Delete all measurements for %q? [y/N] ", name)
			response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && response == "" {
				return fmt.Errorf("failed to read response: %w", err)
			}
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Deletion canceled.")
				return nil
			}
		}

		removed, err := store.DeletePerson(name)
		if err != nil {
			return fmt.Errorf("failed to delete person: %w", err)
		}

		if removed == 0 {
			fmt.Fprintf(out, "No measurements found for %s.\n", name)
			return nil
		}
		color.New(color.FgYellow).Fprintf(out, "✗ Deleted %d measurement(s) for %s\n", removed, name)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
