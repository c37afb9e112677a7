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

// PrintDecomposedResults outputs the decomposed price table, dispatching
// based on the output format configured.
func PrintDecomposedResults(rows []schema.FullyDecomposedObservation, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForDecomposed(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForDecomposed(rows, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForDecomposed(rows, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printDecomposedTable(rows, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing decomposition table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForDecomposed handles opening the file and calling the JSON writer.
func printJSONResultsForDecomposed(rows []schema.FullyDecomposedObservation, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForDecomposed(w, rows)
	}, "Wrote JSON decomposition results")
}

// printCSVResultsForDecomposed handles opening the file and calling the CSV writer.
func printCSVResultsForDecomposed(rows []schema.FullyDecomposedObservation, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForDecomposed(csvWriter, rows, fmtFloat)
	}, "Wrote CSV decomposition results")
}

// printParquetResultsForDecomposed converts the rows to their export form
// and writes a parquet file. Parquet never streams to stdout.
func printParquetResultsForDecomposed(rows []schema.FullyDecomposedObservation, cfg *contract.Config) error {
	if err := requireOutputFile(cfg.OutputFile); err != nil {
		return err
	}
	data := make([]parquet.DecomposedRow, len(rows))
	for i, r := range rows {
		data[i] = parquet.DecomposedRow{
			ListingID: r.ListingID,
			Date:      r.Date,
			PricePer:  r.PricePer,
			Trend:     r.Trend,
			StdErr:    r.StdErr,
			Periodic:  r.Periodic,
			Remainder: r.Remainder,
		}
	}
	if err := parquet.WriteParquet(data, cfg.OutputFile); err != nil {
		return err
	}
	logParquetWritten("Wrote Parquet decomposition results", cfg.OutputFile)
	return nil
}

// printDecomposedTable prints a preview of the decomposition in a
// six-column table.
func printDecomposedTable(rows []schema.FullyDecomposedObservation, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Listing", "Date", "Price", "Trend", "Periodic", "Remainder"}
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
			fmtFloat(r.Periodic),
			fmtFloat(r.Remainder),
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
	fmt.Printf("Decomposition completed in %v with %d workers.\n", duration, cfg.Workers)
	return nil
}
