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

// PrintChartResults outputs the labeled observation table for the chart
// renderer, dispatching based on the output format configured.
func PrintChartResults(rows []schema.LabeledObservation, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForChart(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForChart(rows, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForChart(rows, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printChartTable(rows, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing chart table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForChart handles opening the file and calling the JSON writer.
func printJSONResultsForChart(rows []schema.LabeledObservation, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForChart(w, rows)
	}, "Wrote JSON chart results")
}

// printCSVResultsForChart handles opening the file and calling the CSV writer.
func printCSVResultsForChart(rows []schema.LabeledObservation, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForChart(csvWriter, rows, fmtFloat)
	}, "Wrote CSV chart results")
}

// printParquetResultsForChart writes the labeled observation table as a
// parquet file.
func printParquetResultsForChart(rows []schema.LabeledObservation, cfg *contract.Config) error {
	if err := requireOutputFile(cfg.OutputFile); err != nil {
		return err
	}
	data := make([]parquet.ChartRow, len(rows))
	for i, r := range rows {
		data[i] = parquet.ChartRow{
			ListingID: r.ListingID,
			Date:      r.Date,
			PricePer:  r.PricePer,
			Trend:     r.Trend,
			Periodic:  r.Periodic,
			Remainder: r.Remainder,
			Cluster:   int32(r.Cluster),
		}
	}
	if err := parquet.WriteParquet(data, cfg.OutputFile); err != nil {
		return err
	}
	logParquetWritten("Wrote Parquet chart results", cfg.OutputFile)
	return nil
}

// printChartTable prints a preview of the labeled observations.
func printChartTable(rows []schema.LabeledObservation, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Listing", "Date", "Price", "Trend", "Remainder", "Cluster"}
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
			r.Date.Format(schema.DateFormat),
			fmtFloat(r.PricePer),
			fmtFloat(r.Trend),
			fmtFloat(r.Remainder),
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
		fmt.Printf("Showing %d of %d observations; use csv, json or parquet output for the full table.\n", shown, len(rows))
	}
	fmt.Printf("Chart labeling completed in %v with %d workers (k=%d).\n", duration, cfg.Workers, cfg.K)
	return nil
}
