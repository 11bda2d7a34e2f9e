package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/csv2gpx/internal/pipeline"
	"github.com/sells-group/csv2gpx/pkg/geocode"
)

var (
	flagOutfile     string
	flagAddressCols []int
	flagNameCols    []int
	flagDescCols    []int
	flagSkipLines   int
	flagDryRun      bool
	flagVerbose     bool
)

// runConvert wires the CLI flags into a pipeline run. Per-place geocoding
// misses are diagnostics, not errors, so the process still exits 0.
func runConvert(cmd *cobra.Command, args []string) error {
	lookup := geocode.NewClient(
		geocode.WithBaseURL(cfg.Geocoder.BaseURL),
		geocode.WithUserAgent(cfg.Geocoder.UserAgent),
		geocode.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Geocoder.TimeoutSecs) * time.Second,
		}),
	)

	p := pipeline.New(pipeline.Options{
		Files:          args,
		Outfile:        flagOutfile,
		AddressCols:    flagAddressCols,
		NameCols:       flagNameCols,
		DescCols:       flagDescCols,
		SkipFirstLines: flagSkipLines,
		DryRun:         flagDryRun,
		Verbose:        flagVerbose,
	}, lookup)
	p.SetOutput(cmd.OutOrStdout())

	return p.Run(cmd.Context())
}

func init() {
	rootCmd.Flags().StringVarP(&flagOutfile, "outfile", "o", "", "GPX output file (required)")
	rootCmd.Flags().IntSliceVarP(&flagAddressCols, "address", "a", nil, "columns to read address from (required)")
	rootCmd.Flags().IntSliceVarP(&flagNameCols, "name", "n", nil, "columns to use as name (required)")
	rootCmd.Flags().IntSliceVarP(&flagDescCols, "desc", "d", nil, "columns to use as description")
	rootCmd.Flags().IntVarP(&flagSkipLines, "skip-first-lines", "s", 0, "skip the first NUM lines")
	rootCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "g", false, "skip geocoding, just print parsed places")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "print debugging information")
	_ = rootCmd.MarkFlagRequired("outfile")
	_ = rootCmd.MarkFlagRequired("address")
	_ = rootCmd.MarkFlagRequired("name")
}
