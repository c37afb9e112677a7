package core

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/rentlens/rentlens/schema"
	"gonum.org/v1/gonum/floats"
)

// Lloyd's algorithm constraints.
const (
	maxKMeansIterations = 100
	centroidTolerance   = 1e-9
)

// KMeansResult is the outcome of one best-of-restarts clustering fit.
// Labels[i] belongs to vectors[i] of the input; callers should use
// Assignments to pair labels with listing IDs instead of relying on
// positions themselves.
type KMeansResult struct {
	Labels    []int
	Centroids [][]float64
	WSS       float64
}

// KMeans partitions the listing vectors into k clusters by minimizing the
// total within-cluster sum of squared distances, keeping the best of
// restarts independent runs. Initialization is seeded: the same seed, the
// same input matrix and the same k reproduce the same partition.
func KMeans(vectors []schema.ListingVector, k, restarts int, seed int64) (KMeansResult, error) {
	if err := validateMatrix(vectors, k); err != nil {
		return KMeansResult{}, err
	}

	best := KMeansResult{WSS: math.Inf(1)}
	for restart := range restarts {
		rng := rand.New(rand.NewSource(subSeed(seed, k, restart)))
		result := lloyd(vectors, k, rng)
		if result.WSS < best.WSS {
			best = result
		}
	}
	return best, nil
}

// ScanK runs the clustering for every candidate k in [kMin, kMax] and
// reports the per-k quality metrics. It deliberately does not pick a k:
// the analyst inspects the metric table and chooses, because automating
// the elbow judgement would change the intent of the analysis.
func ScanK(vectors []schema.ListingVector, kMin, kMax, restarts int, seed int64) ([]schema.KMetric, error) {
	if err := validateMatrix(vectors, kMin); err != nil {
		return nil, err
	}
	if kMax > len(vectors) {
		kMax = len(vectors)
	}

	metrics := make([]schema.KMetric, 0, kMax-kMin+1)
	for k := kMin; k <= kMax; k++ {
		var sum float64
		best := math.Inf(1)
		for restart := range restarts {
			rng := rand.New(rand.NewSource(subSeed(seed, k, restart)))
			result := lloyd(vectors, k, rng)
			sum += result.WSS
			if result.WSS < best {
				best = result.WSS
			}
		}
		metrics = append(metrics, schema.KMetric{
			K:        k,
			MeanWSS:  sum / float64(restarts),
			BestWSS:  best,
			Restarts: restarts,
		})
	}
	return metrics, nil
}

// Assignments zips cluster labels back onto listing IDs using the IDs
// carried in the matrix rows. This is the only sanctioned way to read a
// KMeansResult; positional bookkeeping outside this function is a bug.
func Assignments(vectors []schema.ListingVector, result KMeansResult) []schema.ClusterAssignment {
	assigns := make([]schema.ClusterAssignment, len(vectors))
	for i, v := range vectors {
		assigns[i] = schema.ClusterAssignment{ListingID: v.ListingID, Cluster: result.Labels[i]}
	}
	return assigns
}

// subSeed derives a deterministic per-(k, restart) seed so restarts are
// independent but reproducible.
func subSeed(seed int64, k, restart int) int64 {
	return seed + int64(k)*1_000_003 + int64(restart)
}

// validateMatrix checks cluster-ability of the input.
func validateMatrix(vectors []schema.ListingVector, k int) error {
	if k < 1 {
		return fmt.Errorf("k must be at least 1, got %d", k)
	}
	if len(vectors) < k {
		return fmt.Errorf("cannot fit %d clusters with only %d listings", k, len(vectors))
	}
	width := len(vectors[0].Values)
	for _, v := range vectors {
		if len(v.Values) != width {
			return fmt.Errorf("ragged matrix: listing %s has %d cells, expected %d", v.ListingID, len(v.Values), width)
		}
		for day, cell := range v.Values {
			if math.IsNaN(cell) || math.IsInf(cell, 0) {
				return fmt.Errorf("non-finite cell for listing %s at column %d", v.ListingID, day)
			}
		}
	}
	return nil
}

// lloyd runs one pass of Lloyd's algorithm with Forgy initialization:
// k distinct input rows drawn from rng become the initial centroids.
func lloyd(vectors []schema.ListingVector, k int, rng *rand.Rand) KMeansResult {
	n := len(vectors)
	width := len(vectors[0].Values)

	centroids := make([][]float64, k)
	for i, j := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), vectors[j].Values...)
	}

	labels := make([]int, n)
	for range maxKMeansIterations {
		// Assignment step.
		for i, v := range vectors {
			labels[i] = nearestCentroid(v.Values, centroids)
		}

		// Update step.
		next := make([][]float64, k)
		counts := make([]int, k)
		for i := range next {
			next[i] = make([]float64, width)
		}
		for i, v := range vectors {
			c := labels[i]
			floats.Add(next[c], v.Values)
			counts[c]++
		}
		for c := range next {
			if counts[c] == 0 {
				// Empty cluster: reseat its centroid on the point farthest
				// from its current centroid. Deterministic, so seeded runs
				// stay reproducible.
				next[c] = append([]float64(nil), vectors[farthestPoint(vectors, centroids, labels)].Values...)
				continue
			}
			floats.Scale(1/float64(counts[c]), next[c])
		}

		// Convergence check on centroid movement.
		moved := 0.0
		for c := range centroids {
			if d := floats.Distance(centroids[c], next[c], 2); d > moved {
				moved = d
			}
		}
		centroids = next
		if moved < centroidTolerance {
			break
		}
	}

	// Final assignment and score against the converged centroids.
	var wss float64
	for i, v := range vectors {
		labels[i] = nearestCentroid(v.Values, centroids)
		d := floats.Distance(v.Values, centroids[labels[i]], 2)
		wss += d * d
	}
	return KMeansResult{Labels: labels, Centroids: centroids, WSS: wss}
}

// nearestCentroid returns the index of the closest centroid.
func nearestCentroid(point []float64, centroids [][]float64) int {
	bestDist := math.Inf(1)
	best := 0
	for c, centroid := range centroids {
		if d := floats.Distance(point, centroid, 2); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// farthestPoint returns the index of the point with the greatest distance
// to its assigned centroid.
func farthestPoint(vectors []schema.ListingVector, centroids [][]float64, labels []int) int {
	worstDist := -1.0
	worst := 0
	for i, v := range vectors {
		if d := floats.Distance(v.Values, centroids[labels[i]], 2); d > worstDist {
			worstDist = d
			worst = i
		}
	}
	return worst
}
