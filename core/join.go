package core

import (
	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/schema"
)

// LabelObservations joins cluster assignments onto the fully decomposed
// price table by listing ID. Inner-join semantics: observations of listings
// without a cluster label are dropped, never defaulted.
func LabelObservations(rows []schema.FullyDecomposedObservation, assigns []schema.ClusterAssignment) []schema.LabeledObservation {
	byID := assignmentIndex(assigns)

	var out []schema.LabeledObservation
	for _, r := range rows {
		cluster, ok := byID[r.ListingID]
		if !ok {
			continue
		}
		out = append(out, schema.LabeledObservation{
			FullyDecomposedObservation: r,
			Cluster:                    cluster,
		})
	}
	return out
}

// LabelListings joins cluster assignments onto the listing metadata table.
// The metadata side was keyed by its own "id" column at load time; by the
// time it reaches this join the loader has already mapped it onto
// ListingID, so both sides join on the same explicit key. Metadata rows
// without a label are dropped and counted.
func LabelListings(meta []schema.ListingMetadata, assigns []schema.ClusterAssignment, exclusions *contract.ExclusionLog) []schema.LabeledListing {
	byID := assignmentIndex(assigns)

	var out []schema.LabeledListing
	for _, m := range meta {
		cluster, ok := byID[m.ListingID]
		if !ok {
			exclusions.Unlabeled++
			continue
		}
		out = append(out, schema.LabeledListing{
			ListingMetadata: m,
			Cluster:         cluster,
		})
	}
	return out
}

// assignmentIndex builds the listing -> cluster lookup.
func assignmentIndex(assigns []schema.ClusterAssignment) map[string]int {
	byID := make(map[string]int, len(assigns))
	for _, a := range assigns {
		byID[a.ListingID] = a.Cluster
	}
	return byID
}
