package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rentlens/rentlens/schema"
)

// writeJSONResultsForChart marshals the labeled observations to JSON and writes them.
func writeJSONResultsForChart(w io.Writer, rows []schema.LabeledObservation) error {
	return writeJSON(w, rows)
}

// writeCSVResultsForChart writes the labeled observations to a CSV writer.
func writeCSVResultsForChart(w *csv.Writer, rows []schema.LabeledObservation, fmtFloat func(float64) string) error {
	header := []string{
		"listing_id",
		"date",
		"price_per",
		"trend",
		"periodic",
		"remainder",
		"cluster",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			r.ListingID,
			r.Date.Format(schema.DateFormat),
			fmtFloat(r.PricePer),
			fmtFloat(r.Trend),
			fmtFloat(r.Periodic),
			fmtFloat(r.Remainder),
			strconv.Itoa(r.Cluster),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
