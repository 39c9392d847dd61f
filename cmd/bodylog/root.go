// ABOUTME: Root Cobra command for bodylog CLI.
// ABOUTME: Loads config, sets up logging and opens the store via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harperreed/bodylog/internal/config"
	"github.com/harperreed/bodylog/internal/logging"
	"github.com/harperreed/bodylog/internal/storage"
)

var (
	store     *storage.CSVStore
	logCloser io.Closer

	storeFlag    string
	logLevelFlag string
)

// storeless lists commands that never touch the measurement table.
var storeless = map[string]bool{
	"help":          true,
	"version":       true,
	"completion":    true,
	"classify":      true,
	"calc":          true,
	"install-skill": true,
}

var rootCmd = &cobra.Command{
	Use:   "bodylog",
	Short: "Body measurement tracker",
	Long: `Bodylog records body measurements for one or more people and tracks
their progress over time.

WHAT IT TRACKS:

  Required       height (m), weight (kg)
  Circumference  waist and hip (cm) for the waist-hip ratio
  Composition    body fat %, lean mass %, visceral fat level
  Goals          target weight, waist and body fat

  BMI and waist-hip ratio are computed for every record and classified
  into health bands.

QUICK START:

  $ bodylog add Carol --sex F --height 1.65 --weight 70
  $ bodylog add Carol --sex F --height 1.65 --weight 65 --waist 78 --hip 100
  $ bodylog list Carol              # History, newest first
  $ bodylog summary Carol           # Weight change, bands and goals
  $ bodylog classify bmi 27.3       # Look up a band

MCP INTEGRATION:

  Run 'bodylog mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "bodylog": { "command": "bodylog", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Measurements live in a single CSV file, by default
  ~/.local/share/bodylog/measurements.csv. Set data_dir or store_path in
  ~/.config/bodylog/config.json, or pass --store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if storeFlag != "" {
			cfg.StorePath = storeFlag
		}
		if logLevelFlag != "" {
			cfg.LogLevel = logLevelFlag
		}

		logCloser = logging.Setup(cfg.LoggingParams())

		if storeless[cmd.Name()] {
			return nil
		}

		store, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		log.WithField("store", store.Path()).Debug("store opened")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			if err := store.Close(); err != nil {
				return err
			}
			store = nil
		}
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "path to the measurements CSV (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: trace, debug, info, warn, error")
}
