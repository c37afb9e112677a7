package core

import (
	"math"
	"sort"
	"time"

	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/schema"
)

// BuildMonthMatrix reshapes one calendar month's remainder values into a
// dense listing-by-day matrix. Rows are ListingVector values: the listing
// identifier travels with its remainders, so cluster labels are always
// zipped back by key, never by array position.
//
// The window filter is a hard equality: a listing must have exactly one
// remainder for every calendar day of the month. Listings with missing or
// extra days (duplicate-date artifacts included) are excluded entirely and
// counted in exclusions. A non-finite remainder where a matrix cell is
// required fails the run.
func BuildMonthMatrix(rows []schema.FullyDecomposedObservation, month time.Time, exclusions *contract.ExclusionLog) ([]schema.ListingVector, error) {
	days := schema.DaysInMonth(month)

	type window struct {
		byDay map[int][]float64
		total int
	}
	windows := make(map[string]*window)
	for _, r := range rows {
		if !schema.SameMonth(r.Date, month) {
			continue
		}
		w := windows[r.ListingID]
		if w == nil {
			w = &window{byDay: make(map[int][]float64, days)}
			windows[r.ListingID] = w
		}
		day := r.Date.Day()
		w.byDay[day] = append(w.byDay[day], r.Remainder)
		w.total++
	}

	var vectors []schema.ListingVector
	for listingID, w := range windows {
		if w.total != days || len(w.byDay) != days {
			exclusions.IncompleteWindow++
			continue
		}
		values := make([]float64, days)
		ok := true
		for day := 1; day <= days; day++ {
			cells := w.byDay[day]
			if len(cells) != 1 {
				ok = false
				break
			}
			if math.IsNaN(cells[0]) || math.IsInf(cells[0], 0) {
				return nil, &contract.NonFiniteValueError{ListingID: listingID, Day: day}
			}
			values[day-1] = cells[0]
		}
		if !ok {
			exclusions.IncompleteWindow++
			continue
		}
		vectors = append(vectors, schema.ListingVector{ListingID: listingID, Values: values})
	}

	// Deterministic row order for reproducible clustering across runs.
	sort.Slice(vectors, func(i, j int) bool { return vectors[i].ListingID < vectors[j].ListingID })
	return vectors, nil
}
