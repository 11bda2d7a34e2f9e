package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/csv2gpx/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "csv2gpx [flags] [files...]",
	Short: "Geocode CSV address records into a GPX waypoint file",
	Long: "Reads addresses from CSV files, resolves their coordinates with the\n" +
		"Photon geocoder, and writes them as GPX waypoints.\n\n" +
		"Note: all indices (columns, lines) start at 1.",
	Example:      "  csv2gpx -n 6 -a 3,7 -d 11 -o places.gpx input.csv",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if flagVerbose {
			cfg.Log.Level = "debug"
		}
		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return cfg.Validate()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: runConvert,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
