// Package cmd defines the command-line interface for rentlens.
package cmd

import (
	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(decomposeCmd)
	rootCmd.AddCommand(kscanCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("prices-dir", "", "Directory of price extract CSV files (default: <data-dir>/prices)")
	rootCmd.PersistentFlags().String("listings-dir", "", "Directory of listing metadata CSV files (default: <data-dir>/listings)")
	rootCmd.PersistentFlags().Float64("span", contract.DefaultSpan, "Smoothing span as a fraction of each listing's observations")
	rootCmd.PersistentFlags().Int("min-obs", contract.DefaultMinObs, "Minimum observations per listing for trend fitting")
	rootCmd.PersistentFlags().StringP("month", "m", "", "Calendar month for clustering (e.g. 2024-04)")
	rootCmd.PersistentFlags().IntP("k", "k", 0, "Cluster count chosen from the kscan metric table")
	rootCmd.PersistentFlags().Int("restarts", contract.DefaultRestarts, "Independent k-means restarts per candidate k")
	rootCmd.PersistentFlags().Int64("seed", contract.DefaultSeed, "Random seed for reproducible clustering")
	rootCmd.PersistentFlags().IntP("workers", "w", contract.DefaultWorkers, "Number of concurrent per-listing fits")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("runs-backend", "", "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for mysql/postgresql run tracking")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in log output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored cluster labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of kscanCmd to Viper
	kscanCmd.Flags().Int("k-min", contract.DefaultKMin, "Smallest candidate cluster count")
	kscanCmd.Flags().Int("k-max", contract.DefaultKMax, "Largest candidate cluster count")
	if err := viper.BindPFlags(kscanCmd.Flags()); err != nil {
		contract.LogFatal("Error binding kscan flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
