package cmd

import (
	"fmt"
	"strings"

	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/internal/runstore"
	"github.com/rentlens/rentlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// runStore is the global run tracking store instance.
var runStore contract.RunStore

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "rentlens",
	Short:              "Analyze short-term rental prices to find pricing segments.",
	Long:               `Rentlens decomposes nightly price series into trend, weekly pattern and remainder, then clusters listings by how their remainders move together.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".rentlens") // Name of config file (without extension)
		viper.SetConfigType("yaml")      // We'll use YAML format
		viper.AddConfigPath(".")         // Look in the current directory
		viper.AddConfigPath("$HOME")     // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("RENTLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("span", contract.DefaultSpan)
	viper.SetDefault("min-obs", contract.DefaultMinObs)
	viper.SetDefault("k-min", contract.DefaultKMin)
	viper.SetDefault("k-max", contract.DefaultKMax)
	viper.SetDefault("restarts", contract.DefaultRestarts)
	viper.SetDefault("seed", contract.DefaultSeed)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("runs-backend", "")
	viper.SetDefault("runs-db-connect", "")
	viper.SetDefault("emoji", "yes")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation. When geo is true the
// GeoJSON output mode is accepted (map command only).
func sharedSetup(args []string, geo bool) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.DataDirStr = args[0]
	} else {
		input.DataDirStr = "."
	}

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input, geo); err != nil {
		return err
	}

	// 5. Initialize run tracking with validated config
	store, err := runstore.NewRunStore(cfg.RunsBackend, cfg.RunsDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize run tracking: %w", err)
	}
	runStore = store

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide PreRunE for tabular commands.
func sharedSetupWrapper(_ *cobra.Command, args []string) error {
	return sharedSetup(args, false)
}

// geoSetupWrapper wraps sharedSetup for the map command, which also
// accepts GeoJSON output.
func geoSetupWrapper(_ *cobra.Command, args []string) error {
	return sharedSetup(args, true)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".rentlens")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
