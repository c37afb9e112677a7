package cmd

import (
	"github.com/rentlens/rentlens/core"
	"github.com/rentlens/rentlens/internal/contract"
	"github.com/spf13/cobra"
)

// kscanCmd scans candidate cluster counts and prints the quality metrics.
var kscanCmd = &cobra.Command{
	Use:   "kscan [data-dir]",
	Short: "Score candidate cluster counts for one month of price remainders",
	Long: `Cluster one calendar month of price remainders for every candidate k
and report the within-cluster sum of squares for each.

The command never picks a k for you. Read the metric table, find where
the curve flattens, and pass your choice to 'rentlens chart' or
'rentlens map' with --k.

Only listings with a complete daily window in the chosen month take part;
the rest are excluded and counted.

Examples:
  # Scan k = 1..10 for April 2024
  rentlens kscan ./data --month 2024-04

  # Narrower scan with more restarts
  rentlens kscan ./data --month 2024-04 --k-min 2 --k-max 6 --restarts 25

  # Machine-readable metric table
  rentlens kscan ./data --month 2024-04 --output json`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetupWrapper(cmd, args); err != nil {
			return err
		}
		return cfg.RequireMonth()
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteKScan(cfg, runStore); err != nil {
			contract.LogFatal("Cannot run cluster scan", err)
		}
	},
}
