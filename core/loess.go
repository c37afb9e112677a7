package core

import (
	"math"
	"sort"

	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/schema"
	"gonum.org/v1/gonum/stat"
)

// TrendModel fits a local weighted linear regression (LOESS-style) of
// price-per-person against a numeric date ordinate, one listing at a time.
// Span is the fraction of the listing's points used in each local
// neighborhood; MinObs is the minimum series length worth fitting at all.
type TrendModel struct {
	Span   float64
	MinObs int
}

// FitListing decomposes one listing's price series into trend and residual.
// The input must all belong to one listing; cross-listing leakage is
// impossible by construction because the fit never sees other listings.
//
// Listings shorter than MinObs return an IncompleteGroupError so the caller
// can count the exclusion. Two observations on the same date are a
// data-quality error and abort the run.
func (m TrendModel) FitListing(obs []schema.PriceObservation) ([]schema.DecomposedObservation, error) {
	n := len(obs)
	if n < m.MinObs {
		id := ""
		if n > 0 {
			id = obs[0].ListingID
		}
		return nil, &contract.IncompleteGroupError{
			Stage:     schema.DecomposeStage,
			ListingID: id,
			Got:       n,
			Want:      m.MinObs,
		}
	}

	// Sort a copy by date; the caller's slice stays untouched.
	sorted := make([]schema.PriceObservation, n)
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, o := range sorted {
		if i > 0 && o.Date.Equal(sorted[i-1].Date) {
			return nil, &contract.DuplicateDateError{
				ListingID: o.ListingID,
				Date:      o.Date.Format(schema.DateFormat),
			}
		}
		xs[i] = schema.DateOrdinate(o.Date)
		ys[i] = o.PricePer
	}

	window := neighborhoodSize(m.Span, n)

	out := make([]schema.DecomposedObservation, n)
	for i := range sorted {
		fit, se := fitLocal(xs, ys, i, window)
		out[i] = schema.DecomposedObservation{
			PriceObservation: sorted[i],
			Trend:            fit,
			Residual:         ys[i] - fit,
			StdErr:           se,
		}
	}
	return out, nil
}

// neighborhoodSize converts the span fraction into a point count,
// clamped so a degree-one fit is always determined.
func neighborhoodSize(span float64, n int) int {
	q := int(math.Ceil(span * float64(n)))
	if q < 2 {
		q = 2
	}
	if q > n {
		q = n
	}
	return q
}

// fitLocal evaluates the local weighted linear fit at index i using the
// window nearest points by date distance, weighted by the tricube kernel.
// It returns the fitted value and the local standard error (weighted RMSE
// of the neighborhood around the local line).
func fitLocal(xs, ys []float64, i, window int) (float64, float64) {
	n := len(xs)
	x0 := xs[i]

	// Nearest window points by |x - x0|. The series is short (daily data),
	// so sorting an index slice per point is plenty fast.
	idx := make([]int, n)
	for j := range idx {
		idx[j] = j
	}
	sort.Slice(idx, func(a, b int) bool {
		da := math.Abs(xs[idx[a]] - x0)
		db := math.Abs(xs[idx[b]] - x0)
		if da == db {
			return idx[a] < idx[b]
		}
		return da < db
	})
	neighbors := idx[:window]

	maxDist := 0.0
	for _, j := range neighbors {
		if d := math.Abs(xs[j] - x0); d > maxDist {
			maxDist = d
		}
	}
	if maxDist == 0 {
		// Degenerate window: all neighbors share the query date. Distinct
		// dates per listing make this unreachable in practice; fall back to
		// the plain mean to stay total.
		nys := gather(ys, neighbors)
		return stat.Mean(nys, nil), 0
	}

	nxs := gather(xs, neighbors)
	nys := gather(ys, neighbors)
	ws := make([]float64, window)
	for k, j := range neighbors {
		u := math.Abs(xs[j]-x0) / maxDist
		w := 1 - u*u*u
		ws[k] = w * w * w
	}

	alpha, beta := stat.LinearRegression(nxs, nys, ws, false)
	fit := alpha + beta*x0
	if math.IsNaN(fit) || math.IsInf(fit, 0) {
		// Collinear degenerate neighborhood; use the weighted mean instead.
		fit = stat.Mean(nys, ws)
	}

	// Local standard error: weighted RMS of the neighborhood residuals
	// around the fitted line.
	var wsum, rss float64
	for k := range neighbors {
		pred := alpha + beta*nxs[k]
		if math.IsNaN(pred) || math.IsInf(pred, 0) {
			pred = fit
		}
		r := nys[k] - pred
		rss += ws[k] * r * r
		wsum += ws[k]
	}
	se := 0.0
	if wsum > 0 {
		se = math.Sqrt(rss / wsum)
	}
	return fit, se
}

// gather copies the values at the given indices.
func gather(values []float64, indices []int) []float64 {
	out := make([]float64, len(indices))
	for k, j := range indices {
		out[k] = values[j]
	}
	return out
}
