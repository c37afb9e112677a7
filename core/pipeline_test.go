package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/schema"
)

// writePriceFixture writes one price extract CSV covering the given number
// of days from start, for several listings at once.
func writePriceFixture(t *testing.T, dir, name string, start time.Time, days int, prices map[string]func(day time.Time) float64) {
	t.Helper()
	var b strings.Builder
	b.WriteString("listing_id,date,price_per\n")
	for listingID, price := range prices {
		for i := range days {
			date := start.AddDate(0, 0, i)
			fmt.Fprintf(&b, "%s,%s,%.2f\n", listingID, date.Format(schema.DateFormat), price(date))
		}
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644))
}

// pipelineConfig is the shared fixture config: full June 2025 coverage with
// a few days of padding on either side.
func pipelineConfig(t *testing.T) *contract.Config {
	t.Helper()
	dir := t.TempDir()
	start := time.Date(2025, 5, 29, 0, 0, 0, 0, time.UTC)

	spike := func(date time.Time) float64 {
		base := 100.0
		if date.Month() == time.June && date.Day() >= 14 && date.Day() <= 16 {
			return base + 80
		}
		return base
	}
	flat := func(date time.Time) float64 { return 60 }

	writePriceFixture(t, dir, "extract.csv", start, 38, map[string]func(time.Time) float64{
		"spiky-1": spike,
		"spiky-2": spike,
		"flat":    flat,
	})

	// A listing far too short to fit.
	writePriceFixture(t, dir, "tiny.csv", start, 3, map[string]func(time.Time) float64{
		"tiny": flat,
	})

	return &contract.Config{
		PricesDir: dir,
		Span:      0.5,
		MinObs:    10,
		Month:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		K:         2,
		KMin:      1,
		KMax:      3,
		Restarts:  10,
		Seed:      42,
		Workers:   4,
	}
}

func TestDecomposeEndToEnd(t *testing.T) {
	cfg := pipelineConfig(t)

	full, exclusions, err := Decompose(cfg)
	require.NoError(t, err)

	// Three listings survive, the tiny one is counted out.
	listings := make(map[string]int)
	for _, r := range full {
		listings[r.ListingID]++
	}
	assert.Len(t, listings, 3)
	assert.NotContains(t, listings, "tiny")
	assert.Equal(t, 1, exclusions.ShortSeries)

	// Output is sorted by listing then date, and stays additive.
	for i, r := range full {
		assert.InDelta(t, r.PricePer, r.Trend+r.Periodic+r.Remainder, 1e-9)
		if i > 0 && full[i-1].ListingID == r.ListingID {
			assert.True(t, full[i-1].Date.Before(r.Date))
		}
	}
}

func TestDecomposeIsDeterministic(t *testing.T) {
	cfg := pipelineConfig(t)

	first, _, err := Decompose(cfg)
	require.NoError(t, err)
	second, _, err := Decompose(cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClusterWindowEndToEnd(t *testing.T) {
	cfg := pipelineConfig(t)

	full, exclusions, err := Decompose(cfg)
	require.NoError(t, err)

	vectors, err := ClusterWindow(cfg, full, exclusions)
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	for _, v := range vectors {
		assert.Len(t, v.Values, 30)
	}
}

func TestFitChosenKSeparatesSpikedListings(t *testing.T) {
	cfg := pipelineConfig(t)

	full, exclusions, err := Decompose(cfg)
	require.NoError(t, err)
	vectors, err := ClusterWindow(cfg, full, exclusions)
	require.NoError(t, err)

	assigns, err := FitChosenK(cfg, vectors)
	require.NoError(t, err)
	require.Len(t, assigns, 3)

	byID := make(map[string]int, len(assigns))
	for _, a := range assigns {
		byID[a.ListingID] = a.Cluster
	}
	// The two listings with the mid-month event move together; the flat
	// listing lands on its own.
	assert.Equal(t, byID["spiky-1"], byID["spiky-2"])
	assert.NotEqual(t, byID["spiky-1"], byID["flat"])
}

func TestScanKThroughPipeline(t *testing.T) {
	cfg := pipelineConfig(t)

	full, exclusions, err := Decompose(cfg)
	require.NoError(t, err)
	vectors, err := ClusterWindow(cfg, full, exclusions)
	require.NoError(t, err)

	metrics, err := ScanK(vectors, cfg.KMin, cfg.KMax, cfg.Restarts, cfg.Seed)
	require.NoError(t, err)
	require.Len(t, metrics, 3)
	assert.Equal(t, 1, metrics[0].K)
	assert.Equal(t, 3, metrics[2].K)
}

func TestDecomposeMissingDirectory(t *testing.T) {
	cfg := &contract.Config{
		PricesDir: filepath.Join(t.TempDir(), "does-not-exist"),
		Span:      0.25,
		MinObs:    10,
		Workers:   2,
	}
	_, _, err := Decompose(cfg)
	assert.Error(t, err)
}
