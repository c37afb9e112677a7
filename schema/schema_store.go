package schema

import "time"

// RunRecord represents a single pipeline run retrieved from the run store.
type RunRecord struct {
	RunID            int64      `json:"run_id"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	RunDurationMs    *int32     `json:"run_duration_ms"`
	ListingsAnalyzed int32      `json:"listings_analyzed"`
	ListingsExcluded int32      `json:"listings_excluded"`
	ConfigParams     *string    `json:"config_params"`
}

// KMetricRecord represents one per-k clustering metric row retrieved from
// the run store.
type KMetricRecord struct {
	RunID      int64     `json:"run_id"`
	K          int32     `json:"k"`
	MeanWSS    float64   `json:"mean_wss"`
	BestWSS    float64   `json:"best_wss"`
	Restarts   int32     `json:"restarts"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RunStatus holds status information about the run store.
type RunStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int64            `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
