package runstore

import (
	"errors"
	"fmt"

	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/internal/parquet"
	"github.com/rentlens/rentlens/schema"
)

// ExecuteRunsExport performs the actual export of run history to Parquet files.
func ExecuteRunsExport(store contract.RunStore, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total k metric rows: %d\n", status.TableSizes[kMetricsTable])

	// Retrieve all runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve all k metrics
	metrics, err := store.GetAllKMetrics()
	if err != nil {
		return fmt.Errorf("failed to retrieve k metrics: %w", err)
	}

	// Convert to Parquet format
	runRows := convertRunRecords(runs)
	metricRows := convertKMetricRecords(metrics)

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteParquet(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runRows), runsFile)

	// Write k metrics to Parquet
	metricsFile := outputFile + ".k_metrics.parquet"
	if err := parquet.WriteParquet(metricRows, metricsFile); err != nil {
		return fmt.Errorf("failed to write k metrics: %w", err)
	}
	fmt.Printf("Exported %d k metric rows to: %s\n", len(metricRows), metricsFile)

	return nil
}

// convertRunRecords maps store records onto their parquet export form.
func convertRunRecords(records []schema.RunRecord) []parquet.RunRow {
	rows := make([]parquet.RunRow, len(records))
	for i, r := range records {
		rows[i] = parquet.RunRow{
			RunID:            r.RunID,
			StartTime:        r.StartTime,
			EndTime:          r.EndTime,
			RunDurationMs:    r.RunDurationMs,
			ListingsAnalyzed: r.ListingsAnalyzed,
			ListingsExcluded: r.ListingsExcluded,
			ConfigParams:     r.ConfigParams,
		}
	}
	return rows
}

// convertKMetricRecords maps store records onto their parquet export form.
func convertKMetricRecords(records []schema.KMetricRecord) []parquet.RunKMetricRow {
	rows := make([]parquet.RunKMetricRow, len(records))
	for i, r := range records {
		rows[i] = parquet.RunKMetricRow{
			RunID:      r.RunID,
			K:          r.K,
			MeanWSS:    r.MeanWSS,
			BestWSS:    r.BestWSS,
			Restarts:   r.Restarts,
			RecordedAt: r.RecordedAt,
		}
	}
	return rows
}
