// Package parquet provides data structures and functions for exporting
// rentlens pipeline output and run-tracking data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	parquetgo "github.com/parquet-go/parquet-go"
)

// DecomposedRow is one fully decomposed price observation for export.
type DecomposedRow struct {
	ListingID string    `parquet:"listing_id,snappy"`
	Date      time.Time `parquet:"date,snappy"`
	PricePer  float64   `parquet:"price_per,snappy"`
	Trend     float64   `parquet:"trend,snappy"`
	StdErr    float64   `parquet:"standard_error,snappy"`
	Periodic  float64   `parquet:"periodic,snappy"`
	Remainder float64   `parquet:"remainder,snappy"`
}

// ChartRow is one labeled price observation for the chart renderer.
type ChartRow struct {
	ListingID string    `parquet:"listing_id,snappy"`
	Date      time.Time `parquet:"date,snappy"`
	PricePer  float64   `parquet:"price_per,snappy"`
	Trend     float64   `parquet:"trend,snappy"`
	Periodic  float64   `parquet:"periodic,snappy"`
	Remainder float64   `parquet:"remainder,snappy"`
	Cluster   int32     `parquet:"cluster,snappy"`
}

// MapRow is one labeled listing for the map renderer.
type MapRow struct {
	ListingID string  `parquet:"listing_id,snappy"`
	Latitude  float64 `parquet:"latitude,snappy"`
	Longitude float64 `parquet:"longitude,snappy"`
	Name      string  `parquet:"name,snappy"`
	Rating    float64 `parquet:"review_scores_rating,snappy"`
	Cluster   int32   `parquet:"cluster,snappy"`
}

// KMetricRow is one per-k clustering metric for export.
type KMetricRow struct {
	K        int32   `parquet:"k,snappy"`
	MeanWSS  float64 `parquet:"mean_wss,snappy"`
	BestWSS  float64 `parquet:"best_wss,snappy"`
	Restarts int32   `parquet:"restarts,snappy"`
}

// RunRow represents a single tracked pipeline run for export.
type RunRow struct {
	RunID            int64      `parquet:"run_id,snappy"`
	StartTime        time.Time  `parquet:"start_time,snappy"`
	EndTime          *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs    *int32     `parquet:"run_duration_ms,optional,snappy"`
	ListingsAnalyzed int32      `parquet:"listings_analyzed,snappy"`
	ListingsExcluded int32      `parquet:"listings_excluded,snappy"`
	ConfigParams     *string    `parquet:"config_params,optional,snappy"`
}

// RunKMetricRow is one per-k metric of a tracked run for export.
type RunKMetricRow struct {
	RunID      int64     `parquet:"run_id,snappy"`
	K          int32     `parquet:"k,snappy"`
	MeanWSS    float64   `parquet:"mean_wss,snappy"`
	BestWSS    float64   `parquet:"best_wss,snappy"`
	Restarts   int32     `parquet:"restarts,snappy"`
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// WriteParquet writes any of the export row types to a Parquet file,
// inferring the schema from the struct tags.
func WriteParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquetgo.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
