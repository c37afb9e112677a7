package core

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentlens/rentlens/schema"
)

// twoBlobs builds an easily separable matrix: half the listings hover
// around zero, the other half around a distant offset.
func twoBlobs(perBlob, width int) []schema.ListingVector {
	vectors := make([]schema.ListingVector, 0, 2*perBlob)
	for i := range perBlob {
		low := make([]float64, width)
		high := make([]float64, width)
		for j := range width {
			jitter := float64((i+j)%3) * 0.1
			low[j] = jitter
			high[j] = 100 + jitter
		}
		vectors = append(vectors, schema.ListingVector{ListingID: fmt.Sprintf("low-%d", i), Values: low})
		vectors = append(vectors, schema.ListingVector{ListingID: fmt.Sprintf("high-%d", i), Values: high})
	}
	return vectors
}

func TestKMeansSeparatesObviousClusters(t *testing.T) {
	vectors := twoBlobs(4, 5)

	result, err := KMeans(vectors, 2, 10, 42)
	require.NoError(t, err)
	require.Len(t, result.Labels, len(vectors))

	assigns := Assignments(vectors, result)
	byID := make(map[string]int, len(assigns))
	for _, a := range assigns {
		byID[a.ListingID] = a.Cluster
	}

	// All low listings share one label, all high listings the other.
	lowLabel := byID["low-0"]
	highLabel := byID["high-0"]
	assert.NotEqual(t, lowLabel, highLabel)
	for id, cluster := range byID {
		if id[0] == 'l' {
			assert.Equal(t, lowLabel, cluster, "listing %s", id)
		} else {
			assert.Equal(t, highLabel, cluster, "listing %s", id)
		}
	}
}

func TestKMeansIsReproducible(t *testing.T) {
	vectors := twoBlobs(5, 7)

	first, err := KMeans(vectors, 3, 10, 1234)
	require.NoError(t, err)
	second, err := KMeans(vectors, 3, 10, 1234)
	require.NoError(t, err)

	assert.Equal(t, first.Labels, second.Labels)
	assert.Equal(t, first.Centroids, second.Centroids)
	assert.InDelta(t, first.WSS, second.WSS, 1e-12)
}

func TestKMeansDifferentSeedsMayDiffer(t *testing.T) {
	// Not asserting inequality (both seeds can find the same optimum),
	// only that each run is internally consistent.
	vectors := twoBlobs(4, 4)
	for _, seed := range []int64{1, 99} {
		result, err := KMeans(vectors, 2, 5, seed)
		require.NoError(t, err)
		assert.False(t, math.IsNaN(result.WSS))
		assert.GreaterOrEqual(t, result.WSS, 0.0)
	}
}

func TestKMeansValidation(t *testing.T) {
	vectors := twoBlobs(2, 3)

	_, err := KMeans(vectors, 0, 5, 42)
	assert.ErrorContains(t, err, "k must be at least 1")

	_, err = KMeans(vectors[:2], 3, 5, 42)
	assert.ErrorContains(t, err, "cannot fit 3 clusters")

	ragged := twoBlobs(2, 3)
	ragged[1].Values = ragged[1].Values[:2]
	_, err = KMeans(ragged, 2, 5, 42)
	assert.ErrorContains(t, err, "ragged matrix")

	nan := twoBlobs(2, 3)
	nan[0].Values[1] = math.NaN()
	_, err = KMeans(nan, 2, 5, 42)
	assert.ErrorContains(t, err, "non-finite cell")
}

func TestScanKReportsEveryCandidate(t *testing.T) {
	vectors := twoBlobs(5, 4) // 10 listings

	metrics, err := ScanK(vectors, 1, 4, 10, 42)
	require.NoError(t, err)
	require.Len(t, metrics, 4)

	for i, m := range metrics {
		assert.Equal(t, i+1, m.K)
		assert.Equal(t, 10, m.Restarts)
		assert.LessOrEqual(t, m.BestWSS, m.MeanWSS+1e-9)
	}

	// More clusters never fit an obvious two-blob matrix worse than one.
	assert.Less(t, metrics[1].BestWSS, metrics[0].BestWSS)
}

func TestScanKCapsAtListingCount(t *testing.T) {
	vectors := twoBlobs(2, 3) // 4 listings

	metrics, err := ScanK(vectors, 1, 10, 5, 42)
	require.NoError(t, err)
	require.Len(t, metrics, 4)
	assert.Equal(t, 4, metrics[len(metrics)-1].K)

	// One centroid per listing leaves nothing unexplained.
	assert.InDelta(t, 0, metrics[len(metrics)-1].BestWSS, 1e-9)
}

func TestAssignmentsCarryListingIDs(t *testing.T) {
	vectors := twoBlobs(3, 2)
	result, err := KMeans(vectors, 2, 5, 42)
	require.NoError(t, err)

	assigns := Assignments(vectors, result)
	require.Len(t, assigns, len(vectors))
	for i, a := range assigns {
		assert.Equal(t, vectors[i].ListingID, a.ListingID)
		assert.Equal(t, result.Labels[i], a.Cluster)
	}
}

func TestSubSeedIsDistinctPerRestart(t *testing.T) {
	seen := make(map[int64]struct{})
	for k := 1; k <= 5; k++ {
		for restart := range 10 {
			seen[subSeed(42, k, restart)] = struct{}{}
		}
	}
	assert.Len(t, seen, 50)
}
