package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentlens/rentlens/schema"
)

func sampleDecomposed() []schema.FullyDecomposedObservation {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return []schema.FullyDecomposedObservation{
		{
			DecomposedObservation: schema.DecomposedObservation{
				PriceObservation: schema.PriceObservation{ListingID: "12345", Date: date, PricePer: 80.5},
				Trend:            78.25,
				Residual:         2.25,
				StdErr:           1.5,
			},
			Weekday:   date.Weekday(),
			Periodic:  1.75,
			Remainder: 0.5,
		},
	}
}

func TestWriteCSVResultsForDecomposed(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	fmtFloat, _ := createFormatters(2)

	require.NoError(t, writeCSVResultsForDecomposed(w, sampleDecomposed(), fmtFloat))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"listing_id", "date", "weekday", "price_per", "trend", "standard_error", "periodic", "remainder"}, records[0])
	assert.Equal(t, []string{"12345", "2025-06-02", "1", "80.50", "78.25", "1.50", "1.75", "0.50"}, records[1])
}

func TestWriteJSONResultsForDecomposed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONResultsForDecomposed(&buf, sampleDecomposed()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "12345", decoded[0]["listing_id"])
	assert.InDelta(t, 0.5, decoded[0]["remainder"].(float64), 1e-9)
}

func TestWriteCSVResultsForKMetrics(t *testing.T) {
	metrics := []schema.KMetric{
		{K: 1, MeanWSS: 100.125, BestWSS: 100.125, Restarts: 10},
		{K: 2, MeanWSS: 40.5, BestWSS: 38.25, Restarts: 10},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	fmtFloat, _ := createFormatters(2)

	require.NoError(t, writeCSVResultsForKMetrics(w, metrics, fmtFloat))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"k", "mean_wss", "best_wss", "restarts"}, records[0])
	assert.Equal(t, []string{"2", "40.50", "38.25", "10"}, records[2])
}

func TestWriteCSVResultsForChart(t *testing.T) {
	rows := []schema.LabeledObservation{
		{FullyDecomposedObservation: sampleDecomposed()[0], Cluster: 1},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	fmtFloat, _ := createFormatters(2)

	require.NoError(t, writeCSVResultsForChart(w, rows, fmtFloat))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "cluster", records[0][6])
	assert.Equal(t, "1", records[1][6])
}

func TestWriteCSVResultsForMap(t *testing.T) {
	rows := []schema.LabeledListing{
		{
			ListingMetadata: schema.ListingMetadata{
				ListingID: "987",
				Latitude:  47.6097,
				Longitude: -122.3331,
				Name:      "Cozy loft",
				Rating:    4.85,
			},
			Cluster: 0,
		},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	fmtFloat, _ := createFormatters(2)

	require.NoError(t, writeCSVResultsForMap(w, rows, fmtFloat))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"listing_id", "latitude", "longitude", "name", "review_scores_rating", "cluster"}, records[0])
	assert.Equal(t, "987", records[1][0])
	assert.Equal(t, "Cozy loft", records[1][3])
}

func TestWriteGeoJSONResultsForMap(t *testing.T) {
	rows := []schema.LabeledListing{
		{
			ListingMetadata: schema.ListingMetadata{
				ListingID: "987",
				Latitude:  47.6097,
				Longitude: -122.3331,
				Name:      "Cozy loft",
				Rating:    4.85,
			},
			Cluster: 1,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeGeoJSONResultsForMap(&buf, rows))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)

	feat := fc.Features[0]
	assert.Equal(t, "Point", feat.Geometry.Type)
	// GeoJSON positions are lon/lat order.
	require.Len(t, feat.Geometry.Coordinates, 2)
	assert.InDelta(t, -122.3331, feat.Geometry.Coordinates[0], 1e-9)
	assert.InDelta(t, 47.6097, feat.Geometry.Coordinates[1], 1e-9)
	assert.Equal(t, "987", feat.Properties["listing_id"])
	assert.InDelta(t, 1, feat.Properties["cluster"].(float64), 1e-9)
}
