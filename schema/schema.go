// Package schema has configs, models and shared types for all parts of rentlens.
package schema

import "time"

// PriceObservation is one listing-day price record as produced by the loader.
// There is at most one observation per (ListingID, Date) pair; duplicates are
// a data-quality error caught by the trend decomposer.
type PriceObservation struct {
	ListingID string    `json:"listing_id"`
	Date      time.Time `json:"date"`
	PricePer  float64   `json:"price_per"` // Nightly price divided by guest capacity
}

// ListingMetadata is one row of listing metadata, loaded once and joined
// late in the pipeline via ListingID.
type ListingMetadata struct {
	ListingID string  `json:"listing_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Rating    float64 `json:"review_scores_rating"`
}

// DecomposedObservation extends a price observation with the fitted local
// regression trend, its residual and the local standard error of the fit.
// Trend + Residual reconstructs PricePer exactly.
type DecomposedObservation struct {
	PriceObservation
	Trend    float64 `json:"trend"`
	Residual float64 `json:"residual"`
	StdErr   float64 `json:"standard_error"`
}

// FullyDecomposedObservation adds the weekly periodic component and the
// remainder. The decomposition is additive:
// PricePer == Trend + Periodic + Remainder (within float tolerance).
type FullyDecomposedObservation struct {
	DecomposedObservation
	Weekday   time.Weekday `json:"weekday"`
	Periodic  float64      `json:"periodic"`
	Remainder float64      `json:"remainder"`
}

// ListingVector is one row of the clustering matrix. The listing identifier
// travels with the values so cluster labels can never be zipped back onto
// the wrong listing by positional accident.
type ListingVector struct {
	ListingID string    `json:"listing_id"`
	Values    []float64 `json:"values"` // One remainder per calendar day of the window
}

// ClusterAssignment maps a listing to its cluster label for a chosen k.
// Only listings with a complete clustering window receive an assignment.
type ClusterAssignment struct {
	ListingID string `json:"listing_id"`
	Cluster   int    `json:"cluster"`
}

// LabeledObservation is a fully decomposed observation with its cluster
// label attached, ready for the chart renderer.
type LabeledObservation struct {
	FullyDecomposedObservation
	Cluster int `json:"cluster"`
}

// LabeledListing is listing metadata with its cluster label attached,
// ready for the map renderer. Inner-join semantics: listings without a
// label never appear here.
type LabeledListing struct {
	ListingMetadata
	Cluster int `json:"cluster"`
}

// KMetric summarizes the clustering quality for one candidate k.
// MeanWSS is the mean total-within-cluster-sum-of-squares across restarts;
// BestWSS is the minimum across restarts. Selecting k from this table is a
// deliberate human decision, not something the pipeline automates.
type KMetric struct {
	K        int     `json:"k"`
	MeanWSS  float64 `json:"mean_wss"`
	BestWSS  float64 `json:"best_wss"`
	Restarts int     `json:"restarts"`
}
