package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/internal/parquet"
	"github.com/rentlens/rentlens/schema"
)

// PrintKMetrics outputs the per-k cluster quality table, dispatching based
// on the output format configured. The table intentionally carries no
// recommendation; choosing k is the analyst's call.
func PrintKMetrics(metrics []schema.KMetric, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForKMetrics(metrics, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForKMetrics(metrics, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForKMetrics(metrics, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printKMetricsTable(metrics, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing k metrics table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForKMetrics handles opening the file and calling the JSON writer.
func printJSONResultsForKMetrics(metrics []schema.KMetric, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForKMetrics(w, metrics)
	}, "Wrote JSON k metrics")
}

// printCSVResultsForKMetrics handles opening the file and calling the CSV writer.
func printCSVResultsForKMetrics(metrics []schema.KMetric, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForKMetrics(csvWriter, metrics, fmtFloat)
	}, "Wrote CSV k metrics")
}

// printParquetResultsForKMetrics writes the metric table as a parquet file.
func printParquetResultsForKMetrics(metrics []schema.KMetric, cfg *contract.Config) error {
	if err := requireOutputFile(cfg.OutputFile); err != nil {
		return err
	}
	data := make([]parquet.KMetricRow, len(metrics))
	for i, m := range metrics {
		data[i] = parquet.KMetricRow{
			K:        int32(m.K),
			MeanWSS:  m.MeanWSS,
			BestWSS:  m.BestWSS,
			Restarts: int32(m.Restarts),
		}
	}
	if err := parquet.WriteParquet(data, cfg.OutputFile); err != nil {
		return err
	}
	logParquetWritten("Wrote Parquet k metrics", cfg.OutputFile)
	return nil
}

// printKMetricsTable prints the per-k metrics in a four-column table.
func printKMetricsTable(metrics []schema.KMetric, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"K", "Mean WSS", "Best WSS", "Restarts"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, m := range metrics {
		row := []string{
			strconv.Itoa(m.K),
			fmtFloat(m.MeanWSS),
			fmtFloat(m.BestWSS),
			strconv.Itoa(m.Restarts),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Cluster scan completed in %v with %d workers. Pick k where the WSS curve flattens.\n", duration, cfg.Workers)
	return nil
}
