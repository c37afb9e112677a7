package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rentlens/rentlens/schema"
)

// writeJSONResultsForDecomposed marshals the decomposed rows to JSON and writes them.
func writeJSONResultsForDecomposed(w io.Writer, rows []schema.FullyDecomposedObservation) error {
	return writeJSON(w, rows)
}

// writeCSVResultsForDecomposed writes the decomposed rows to a CSV writer.
func writeCSVResultsForDecomposed(w *csv.Writer, rows []schema.FullyDecomposedObservation, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"listing_id",
		"date",
		"weekday",
		"price_per",
		"trend",
		"standard_error",
		"periodic",
		"remainder",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, r := range rows {
		row := []string{
			r.ListingID,
			r.Date.Format(schema.DateFormat),
			strconv.Itoa(int(r.Weekday)),
			fmtFloat(r.PricePer),
			fmtFloat(r.Trend),
			fmtFloat(r.StdErr),
			fmtFloat(r.Periodic),
			fmtFloat(r.Remainder),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
