// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDecomposed prints decomposed price observations using the configured output format.
func (ow *OutWriter) WriteDecomposed(rows []schema.FullyDecomposedObservation, cfg *contract.Config, duration time.Duration) error {
	return PrintDecomposedResults(rows, cfg, duration)
}

// WriteKMetrics prints the per-k cluster quality table using the configured output format.
func (ow *OutWriter) WriteKMetrics(metrics []schema.KMetric, cfg *contract.Config, duration time.Duration) error {
	return PrintKMetrics(metrics, cfg, duration)
}

// WriteChart prints labeled price observations using the configured output format.
func (ow *OutWriter) WriteChart(rows []schema.LabeledObservation, cfg *contract.Config, duration time.Duration) error {
	return PrintChartResults(rows, cfg, duration)
}

// WriteMap prints labeled listing metadata using the configured output format.
func (ow *OutWriter) WriteMap(rows []schema.LabeledListing, cfg *contract.Config, duration time.Duration) error {
	return PrintMapResults(rows, cfg, duration)
}

// tableRowLimit caps the human-readable table preview. Machine formats
// always carry the full result set.
const tableRowLimit = 40

// GetMaxTableIDWidth calculates the maximum width for listing IDs in table
// output based on terminal width and table configuration.
func GetMaxTableIDWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the date, numeric and cluster columns with
	// borders and padding.
	baseWidth := 60

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable ID width
		return 12
	}
	if available > 40 {
		// Maximum ID width to keep tables compact
		return 40
	}
	return available
}
