// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/rentlens/rentlens/schema"
)

// RunStore defines the interface for tracking pipeline runs and the
// per-k clustering metrics they produce. Run tracking is an optional
// convenience with no contractual effect on pipeline output.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, listingsAnalyzed, listingsExcluded int) error

	// RecordKMetrics stores the per-k clustering metrics for a run.
	RecordKMetrics(runID int64, metrics []schema.KMetric) error

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns retrieves every recorded run.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllKMetrics retrieves every recorded per-k metric row.
	GetAllKMetrics() ([]schema.KMetricRecord, error)

	// Close closes the underlying connection.
	Close() error
}
