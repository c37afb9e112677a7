package core

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/schema"
)

// monthRows builds fully decomposed rows for a listing covering the given
// days of June 2025, with the remainder equal to the day number.
func monthRows(listingID string, days []int) []schema.FullyDecomposedObservation {
	rows := make([]schema.FullyDecomposedObservation, 0, len(days))
	for _, day := range days {
		date := time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
		rows = append(rows, schema.FullyDecomposedObservation{
			DecomposedObservation: schema.DecomposedObservation{
				PriceObservation: schema.PriceObservation{ListingID: listingID, Date: date, PricePer: 100},
			},
			Weekday:   date.Weekday(),
			Remainder: float64(day),
		})
	}
	return rows
}

func allJuneDays() []int {
	days := make([]int, 30)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

func TestBuildMonthMatrixCompleteWindowOnly(t *testing.T) {
	month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	var rows []schema.FullyDecomposedObservation
	rows = append(rows, monthRows("complete", allJuneDays())...)
	rows = append(rows, monthRows("missing-a-day", allJuneDays()[:29])...)

	exclusions := &contract.ExclusionLog{}
	vectors, err := BuildMonthMatrix(rows, month, exclusions)
	require.NoError(t, err)

	require.Len(t, vectors, 1)
	assert.Equal(t, "complete", vectors[0].ListingID)
	assert.Len(t, vectors[0].Values, 30)
	assert.Equal(t, 1, exclusions.IncompleteWindow)

	// Cell order follows the calendar day.
	assert.InDelta(t, 1, vectors[0].Values[0], 1e-9)
	assert.InDelta(t, 30, vectors[0].Values[29], 1e-9)
}

func TestBuildMonthMatrixIgnoresOtherMonths(t *testing.T) {
	month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := monthRows("complete", allJuneDays())
	// Neighboring-month rows must not break the June window.
	may := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	july := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	rows = append(rows,
		schema.FullyDecomposedObservation{
			DecomposedObservation: schema.DecomposedObservation{
				PriceObservation: schema.PriceObservation{ListingID: "complete", Date: may, PricePer: 100},
			},
			Remainder: 999,
		},
		schema.FullyDecomposedObservation{
			DecomposedObservation: schema.DecomposedObservation{
				PriceObservation: schema.PriceObservation{ListingID: "complete", Date: july, PricePer: 100},
			},
			Remainder: 999,
		},
	)

	exclusions := &contract.ExclusionLog{}
	vectors, err := BuildMonthMatrix(rows, month, exclusions)
	require.NoError(t, err)
	require.Len(t, vectors, 1)
	assert.Zero(t, exclusions.IncompleteWindow)
}

func TestBuildMonthMatrixDuplicateDayExcluded(t *testing.T) {
	month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// 30 rows, but day 5 appears twice and day 6 never does.
	days := allJuneDays()
	days[5] = 5 // replaces day 6 with a second day 5
	rows := monthRows("doubled", days)

	exclusions := &contract.ExclusionLog{}
	vectors, err := BuildMonthMatrix(rows, month, exclusions)
	require.NoError(t, err)
	assert.Empty(t, vectors)
	assert.Equal(t, 1, exclusions.IncompleteWindow)
}

func TestBuildMonthMatrixNonFiniteCell(t *testing.T) {
	month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := monthRows("broken", allJuneDays())
	rows[10].Remainder = math.NaN()

	exclusions := &contract.ExclusionLog{}
	_, err := BuildMonthMatrix(rows, month, exclusions)

	var nonFinite *contract.NonFiniteValueError
	require.ErrorAs(t, err, &nonFinite)
	assert.Equal(t, "broken", nonFinite.ListingID)
	assert.Equal(t, 11, nonFinite.Day)
}

func TestBuildMonthMatrixSortedByListing(t *testing.T) {
	month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	var rows []schema.FullyDecomposedObservation
	rows = append(rows, monthRows("zebra", allJuneDays())...)
	rows = append(rows, monthRows("alpha", allJuneDays())...)

	exclusions := &contract.ExclusionLog{}
	vectors, err := BuildMonthMatrix(rows, month, exclusions)
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, "alpha", vectors[0].ListingID)
	assert.Equal(t, "zebra", vectors[1].ListingID)
}
