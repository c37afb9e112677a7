package cmd

import (
	"github.com/rentlens/rentlens/core"
	"github.com/rentlens/rentlens/internal/contract"
	"github.com/spf13/cobra"
)

// chartCmd produces the labeled observation table for the chart renderer.
var chartCmd = &cobra.Command{
	Use:   "chart [data-dir]",
	Short: "Label every decomposed observation with its listing's cluster",
	Long: `Run the full pipeline for a chosen k and emit every retained price
observation with its decomposition parts and cluster label.

This is the dataset behind the faceted time-series chart: one facet per
cluster, trend lines overlaid on raw prices. Observations of listings
that were excluded from clustering are dropped, never defaulted.

Requires --month (the clustering window) and --k (your choice from the
kscan metric table).

Examples:
  # Two pricing segments for April 2024
  rentlens chart ./data --month 2024-04 --k 2

  # Full table for an external plotting tool
  rentlens chart ./data --month 2024-04 --k 2 --output csv --output-file chart.csv

  # Columnar export for notebooks
  rentlens chart ./data --month 2024-04 --k 2 --output parquet --output-file chart.parquet`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetupWrapper(cmd, args); err != nil {
			return err
		}
		if err := cfg.RequireMonth(); err != nil {
			return err
		}
		return cfg.RequireChosenK()
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChart(cfg, runStore); err != nil {
			contract.LogFatal("Cannot run chart labeling", err)
		}
	},
}
