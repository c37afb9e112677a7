package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rentlens/rentlens/schema"
)

// writeJSONResultsForMap marshals the labeled listings to JSON and writes them.
func writeJSONResultsForMap(w io.Writer, rows []schema.LabeledListing) error {
	return writeJSON(w, rows)
}

// writeCSVResultsForMap writes the labeled listings to a CSV writer.
func writeCSVResultsForMap(w *csv.Writer, rows []schema.LabeledListing, fmtFloat func(float64) string) error {
	header := []string{
		"listing_id",
		"latitude",
		"longitude",
		"name",
		"review_scores_rating",
		"cluster",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			r.ListingID,
			strconv.FormatFloat(r.Latitude, 'f', -1, 64),
			strconv.FormatFloat(r.Longitude, 'f', -1, 64),
			r.Name,
			fmtFloat(r.Rating),
			strconv.Itoa(r.Cluster),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeGeoJSONResultsForMap writes the labeled listings as a GeoJSON
// FeatureCollection of points. GeoJSON positions are lon/lat order.
func writeGeoJSONResultsForMap(w io.Writer, rows []schema.LabeledListing) error {
	fc := geojson.NewFeatureCollection()
	for _, r := range rows {
		f := geojson.NewFeature(orb.Point{r.Longitude, r.Latitude})
		f.ID = r.ListingID
		f.Properties["listing_id"] = r.ListingID
		f.Properties["name"] = r.Name
		f.Properties["review_scores_rating"] = r.Rating
		f.Properties["cluster"] = r.Cluster
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
