package cmd

import (
	"github.com/rentlens/rentlens/core"
	"github.com/rentlens/rentlens/internal/contract"
	"github.com/spf13/cobra"
)

// decomposeCmd runs the trend and weekly-pattern decomposition.
var decomposeCmd = &cobra.Command{
	Use:   "decompose [data-dir]",
	Short: "Decompose nightly price series into trend, weekly pattern and remainder",
	Long: `Fit a smooth trend through every listing's nightly price series and
split each observation into three additive parts:

  price = trend + weekly pattern + remainder

The trend is a locally weighted regression over the listing's own history;
the weekly pattern is the average residual per weekday; the remainder is
what neither explains. Listings with too few observations are excluded
and counted.

Examples:
  # Decompose every listing under ./data
  rentlens decompose ./data

  # Wider smoothing window, CSV output
  rentlens decompose ./data --span 0.4 --output csv --output-file decomposed.csv

  # Custom extract locations
  rentlens decompose --prices-dir /srv/extracts/prices --listings-dir /srv/extracts/listings`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDecompose(cfg, runStore); err != nil {
			contract.LogFatal("Cannot run decomposition", err)
		}
	},
}
