package core

import (
	"errors"
	"sort"
	"sync"

	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/internal/loader"
	"github.com/rentlens/rentlens/schema"
)

// Decompose runs the front half of the pipeline: load the price extracts,
// fit the per-listing trend models, and extract the weekly periodic
// component. It returns the fully decomposed table plus the exclusion log.
//
// Per-listing fits run on a bounded worker pool. This is safe because
// listing groups are disjoint and results are keyed by listing ID; no
// ordering across listings is ever assumed.
func Decompose(cfg *contract.Config) ([]schema.FullyDecomposedObservation, *contract.ExclusionLog, error) {
	prices, err := loader.LoadPrices(cfg.PricesDir)
	if err != nil {
		return nil, nil, err
	}

	groups := groupByListing(prices)
	exclusions := &contract.ExclusionLog{}

	decomposed, err := fitAllListings(cfg, groups, exclusions)
	if err != nil {
		return nil, nil, err
	}
	if len(decomposed) == 0 {
		return nil, nil, errors.New("no listings survived trend decomposition")
	}

	full := ExtractPeriodic(decomposed)
	return full, exclusions, nil
}

// groupByListing splits the observation table into per-listing groups.
func groupByListing(prices []schema.PriceObservation) map[string][]schema.PriceObservation {
	groups := make(map[string][]schema.PriceObservation)
	for _, p := range prices {
		groups[p.ListingID] = append(groups[p.ListingID], p)
	}
	return groups
}

// fitAllListings fans the per-listing trend fits out over cfg.Workers
// goroutines and collects the results. Short series are excluded and
// counted; any other fit error fails the run, reporting the listing.
func fitAllListings(cfg *contract.Config, groups map[string][]schema.PriceObservation, exclusions *contract.ExclusionLog) ([]schema.DecomposedObservation, error) {
	model := TrendModel{Span: cfg.Span, MinObs: cfg.MinObs}

	type fitResult struct {
		rows []schema.DecomposedObservation
		err  error
	}

	listingCh := make(chan []schema.PriceObservation, len(groups))
	resultCh := make(chan fitResult, len(groups))

	var wg sync.WaitGroup
	for range cfg.Workers {
		wg.Go(func() {
			for obs := range listingCh {
				rows, err := model.FitListing(obs)
				resultCh <- fitResult{rows: rows, err: err}
			}
		})
	}

	for _, obs := range groups {
		listingCh <- obs
	}
	close(listingCh)
	wg.Wait()
	close(resultCh)

	var decomposed []schema.DecomposedObservation
	for r := range resultCh {
		if r.err != nil {
			var incomplete *contract.IncompleteGroupError
			if errors.As(r.err, &incomplete) {
				exclusions.ShortSeries++
				continue
			}
			return nil, r.err
		}
		decomposed = append(decomposed, r.rows...)
	}

	// Stable output order: by listing then date. Downstream correctness
	// never depends on it, but deterministic output is kinder to diffs.
	sort.Slice(decomposed, func(i, j int) bool {
		if decomposed[i].ListingID != decomposed[j].ListingID {
			return decomposed[i].ListingID < decomposed[j].ListingID
		}
		return decomposed[i].Date.Before(decomposed[j].Date)
	})
	return decomposed, nil
}

// ClusterWindow runs the middle of the pipeline: reshape one month of
// remainders into the clustering matrix.
func ClusterWindow(cfg *contract.Config, full []schema.FullyDecomposedObservation, exclusions *contract.ExclusionLog) ([]schema.ListingVector, error) {
	vectors, err := BuildMonthMatrix(full, cfg.Month, exclusions)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, errors.New("no listings cover the clustering month completely")
	}
	return vectors, nil
}

// FitChosenK fits the final clustering for the analyst's chosen k and
// returns the per-listing assignments.
func FitChosenK(cfg *contract.Config, vectors []schema.ListingVector) ([]schema.ClusterAssignment, error) {
	result, err := KMeans(vectors, cfg.K, cfg.Restarts, cfg.Seed)
	if err != nil {
		return nil, err
	}
	return Assignments(vectors, result), nil
}
