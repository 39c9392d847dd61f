// ABOUTME: Entry point for bodylog CLI.
// ABOUTME: Invokes the root Cobra command.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
