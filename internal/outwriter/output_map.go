package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/internal/parquet"
	"github.com/rentlens/rentlens/schema"
)

// PrintMapResults outputs the labeled listing table for the map renderer,
// dispatching based on the output format configured. This is the only
// surface that supports GeoJSON.
func PrintMapResults(rows []schema.LabeledListing, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForMap(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForMap(rows, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForMap(rows, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	case schema.GeoJSONOut:
		if err := printGeoJSONResultsForMap(rows, cfg); err != nil {
			return fmt.Errorf("error writing GeoJSON output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printMapTable(rows, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing map table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForMap handles opening the file and calling the JSON writer.
func printJSONResultsForMap(rows []schema.LabeledListing, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForMap(w, rows)
	}, "Wrote JSON map results")
}

// printCSVResultsForMap handles opening the file and calling the CSV writer.
func printCSVResultsForMap(rows []schema.LabeledListing, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForMap(csvWriter, rows, fmtFloat)
	}, "Wrote CSV map results")
}

// printGeoJSONResultsForMap handles opening the file and calling the GeoJSON writer.
func printGeoJSONResultsForMap(rows []schema.LabeledListing, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeGeoJSONResultsForMap(w, rows)
	}, "Wrote GeoJSON map results")
}

// printParquetResultsForMap writes the labeled listing table as a parquet file.
func printParquetResultsForMap(rows []schema.LabeledListing, cfg *contract.Config) error {
	if err := requireOutputFile(cfg.OutputFile); err != nil {
		return err
	}
	data := make([]parquet.MapRow, len(rows))
	for i, r := range rows {
		data[i] = parquet.MapRow{
			ListingID: r.ListingID,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Name:      r.Name,
			Rating:    r.Rating,
			Cluster:   int32(r.Cluster),
		}
	}
	if err := parquet.WriteParquet(data, cfg.OutputFile); err != nil {
		return err
	}
	logParquetWritten("Wrote Parquet map results", cfg.OutputFile)
	return nil
}

// printMapTable prints the labeled listings in a five-column table.
func printMapTable(rows []schema.LabeledListing, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Listing", "Name", "Lat", "Lon", "Rating", "Cluster"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	shown := len(rows)
	if shown > tableRowLimit {
		shown = tableRowLimit
	}

	var data [][]string
	for _, r := range rows[:shown] {
		row := []string{
			contract.TruncateID(r.ListingID, GetMaxTableIDWidth(cfg)),
			contract.TruncateID(r.Name, GetMaxTableIDWidth(cfg)),
			fmt.Sprintf("%.5f", r.Latitude),
			fmt.Sprintf("%.5f", r.Longitude),
			fmtFloat(r.Rating),
			contract.ClusterLabel(r.Cluster, cfg.UseColors),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if shown < len(rows) {
		fmt.Printf("Showing %d of %d listings; use csv, json, parquet or geojson output for the full set.\n", shown, len(rows))
	}
	fmt.Printf("Map labeling completed in %v with %d workers (k=%d).\n", duration, cfg.Workers, cfg.K)
	return nil
}
