package cmd

import (
	"github.com/rentlens/rentlens/core"
	"github.com/rentlens/rentlens/internal/contract"
	"github.com/spf13/cobra"
)

// mapCmd produces the labeled listing table for the map renderer.
var mapCmd = &cobra.Command{
	Use:   "map [data-dir]",
	Short: "Label listing locations with their pricing cluster",
	Long: `Run the full pipeline for a chosen k and join the cluster labels onto
the listing metadata: coordinates, name and review rating.

This is the dataset behind the cluster map. The join is by listing
identifier on both sides; metadata rows without a cluster label are
dropped and counted.

This command additionally supports GeoJSON output, which drops straight
into kepler.gl, QGIS or Leaflet.

Requires --month (the clustering window) and --k (your choice from the
kscan metric table).

Examples:
  # Inspect labeled listings in the terminal
  rentlens map ./data --month 2024-04 --k 2

  # GeoJSON for a web map
  rentlens map ./data --month 2024-04 --k 2 --output geojson --output-file clusters.geojson`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := geoSetupWrapper(cmd, args); err != nil {
			return err
		}
		if err := cfg.RequireMonth(); err != nil {
			return err
		}
		return cfg.RequireChosenK()
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMap(cfg, runStore); err != nil {
			contract.LogFatal("Cannot run map labeling", err)
		}
	},
}
