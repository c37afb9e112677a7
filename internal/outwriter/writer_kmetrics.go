package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rentlens/rentlens/schema"
)

// writeJSONResultsForKMetrics marshals the metric table to JSON and writes it.
func writeJSONResultsForKMetrics(w io.Writer, metrics []schema.KMetric) error {
	return writeJSON(w, metrics)
}

// writeCSVResultsForKMetrics writes the metric table to a CSV writer.
func writeCSVResultsForKMetrics(w *csv.Writer, metrics []schema.KMetric, fmtFloat func(float64) string) error {
	header := []string{
		"k",
		"mean_wss",
		"best_wss",
		"restarts",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, m := range metrics {
		row := []string{
			strconv.Itoa(m.K),
			fmtFloat(m.MeanWSS),
			fmtFloat(m.BestWSS),
			strconv.Itoa(m.Restarts),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
