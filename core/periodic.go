package core

import (
	"time"

	"github.com/rentlens/rentlens/schema"
	"gonum.org/v1/gonum/stat"
)

// periodicKey groups residuals for the weekly component.
type periodicKey struct {
	listingID string
	weekday   time.Weekday
}

// ExtractPeriodic computes the per (listing, weekday) mean residual and
// broadcasts it back onto every observation sharing that key, then derives
// the remainder. The decomposition stays additive:
// price_per == trend + periodic + remainder for every row.
//
// A listing that never rents on, say, Tuesdays simply has no Tuesday rows;
// no placeholder is invented for the absent weekday. Sparse listings get a
// statistically weaker periodic estimate, which is a documented limitation
// of the method, not something this stage corrects.
func ExtractPeriodic(decomposed []schema.DecomposedObservation) []schema.FullyDecomposedObservation {
	groups := make(map[periodicKey][]float64)
	for _, d := range decomposed {
		key := periodicKey{d.ListingID, d.Date.Weekday()}
		groups[key] = append(groups[key], d.Residual)
	}

	means := make(map[periodicKey]float64, len(groups))
	for key, residuals := range groups {
		means[key] = stat.Mean(residuals, nil)
	}

	out := make([]schema.FullyDecomposedObservation, len(decomposed))
	for i, d := range decomposed {
		weekday := d.Date.Weekday()
		periodic := means[periodicKey{d.ListingID, weekday}]
		out[i] = schema.FullyDecomposedObservation{
			DecomposedObservation: d,
			Weekday:               weekday,
			Periodic:              periodic,
			Remainder:             d.PricePer - d.Trend - periodic,
		}
	}
	return out
}
