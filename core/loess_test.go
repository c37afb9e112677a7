package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/schema"
)

// makeSeries builds n daily observations for one listing, pricing each day
// with the supplied function of the day index.
func makeSeries(listingID string, start time.Time, n int, price func(i int) float64) []schema.PriceObservation {
	obs := make([]schema.PriceObservation, n)
	for i := range obs {
		obs[i] = schema.PriceObservation{
			ListingID: listingID,
			Date:      start.AddDate(0, 0, i),
			PricePer:  price(i),
		}
	}
	return obs
}

func TestFitListingRejectsShortSeries(t *testing.T) {
	model := TrendModel{Span: 0.25, MinObs: 10}
	obs := makeSeries("A", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 5, func(i int) float64 { return 100 })

	_, err := model.FitListing(obs)
	var incomplete *contract.IncompleteGroupError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "A", incomplete.ListingID)
	assert.Equal(t, 5, incomplete.Got)
	assert.Equal(t, 10, incomplete.Want)
}

func TestFitListingRejectsDuplicateDates(t *testing.T) {
	model := TrendModel{Span: 0.5, MinObs: 4}
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	obs := makeSeries("B", start, 10, func(i int) float64 { return 100 })
	obs = append(obs, schema.PriceObservation{ListingID: "B", Date: start.AddDate(0, 0, 3), PricePer: 80})

	_, err := model.FitListing(obs)
	var dup *contract.DuplicateDateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "B", dup.ListingID)
}

func TestFitListingTrendPlusResidualIsPrice(t *testing.T) {
	model := TrendModel{Span: 0.3, MinObs: 10}
	obs := makeSeries("C", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 40, func(i int) float64 {
		return 90 + 10*float64(i%7)
	})

	rows, err := model.FitListing(obs)
	require.NoError(t, err)
	require.Len(t, rows, 40)
	for _, r := range rows {
		assert.InDelta(t, r.PricePer, r.Trend+r.Residual, 1e-9)
	}
}

func TestFitListingRecoversLinearTrend(t *testing.T) {
	model := TrendModel{Span: 0.4, MinObs: 10}
	obs := makeSeries("D", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 30, func(i int) float64 {
		return 50 + 2*float64(i)
	})

	rows, err := model.FitListing(obs)
	require.NoError(t, err)
	// A local linear fit reproduces an exactly linear series.
	for _, r := range rows {
		assert.InDelta(t, r.PricePer, r.Trend, 1e-6)
		assert.InDelta(t, 0, r.Residual, 1e-6)
	}
}

func TestFitListingConstantSeries(t *testing.T) {
	model := TrendModel{Span: 0.25, MinObs: 10}
	obs := makeSeries("E", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 20, func(i int) float64 { return 75 })

	rows, err := model.FitListing(obs)
	require.NoError(t, err)
	for _, r := range rows {
		assert.InDelta(t, 75, r.Trend, 1e-9)
		assert.InDelta(t, 0, r.StdErr, 1e-9)
	}
}

func TestFitListingOrderIndependent(t *testing.T) {
	model := TrendModel{Span: 0.3, MinObs: 10}
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	obs := makeSeries("F", start, 25, func(i int) float64 { return 60 + float64(i*i)/10 })

	forward, err := model.FitListing(obs)
	require.NoError(t, err)

	// Reverse the input; the fit sorts by date internally.
	reversed := make([]schema.PriceObservation, len(obs))
	for i, o := range obs {
		reversed[len(obs)-1-i] = o
	}
	backward, err := model.FitListing(reversed)
	require.NoError(t, err)

	assert.Equal(t, forward, backward)
}

func TestFitListingErrorsAreTyped(t *testing.T) {
	model := TrendModel{Span: 0.25, MinObs: 10}
	_, err := model.FitListing(nil)
	require.Error(t, err)

	var incomplete *contract.IncompleteGroupError
	assert.True(t, errors.As(err, &incomplete))
}

func TestNeighborhoodSize(t *testing.T) {
	tests := []struct {
		name     string
		span     float64
		n        int
		expected int
	}{
		{"quarter of forty", 0.25, 40, 10},
		{"rounds up", 0.25, 10, 3},
		{"floors at two", 0.01, 20, 2},
		{"caps at n", 1.0, 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, neighborhoodSize(tt.span, tt.n))
		})
	}
}
