// Package core has core logic for loading, decomposition, clustering and labeling.
package core

import (
	"fmt"
	"os"
	"time"

	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/internal/loader"
	"github.com/rentlens/rentlens/internal/outwriter"
	"github.com/rentlens/rentlens/schema"
)

// ExecuteDecompose runs the loader, trend decomposer and periodic extractor
// and prints the fully decomposed observation table. It serves as the main
// entry point for the 'decompose' command.
func ExecuteDecompose(cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	logHeader(cfg, "Decomposing price series")

	runID := beginRun(cfg, store, start)

	full, exclusions, err := Decompose(cfg)
	if err != nil {
		return err
	}
	reportExclusions(cfg, exclusions)
	endRun(store, runID, full, exclusions)

	return outwriter.PrintDecomposedResults(full, cfg, time.Since(start))
}

// ExecuteKScan runs the full pipeline through the cluster selector and
// prints the per-k quality metric table. Selecting the final k from that
// table is the analyst's job; the pipeline only surfaces the metric.
func ExecuteKScan(cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	logHeader(cfg, "Scanning cluster counts")

	runID := beginRun(cfg, store, start)

	full, exclusions, err := Decompose(cfg)
	if err != nil {
		return err
	}
	vectors, err := ClusterWindow(cfg, full, exclusions)
	if err != nil {
		return err
	}
	metrics, err := ScanK(vectors, cfg.KMin, cfg.KMax, cfg.Restarts, cfg.Seed)
	if err != nil {
		return err
	}
	reportExclusions(cfg, exclusions)
	endRun(store, runID, full, exclusions)
	recordKMetrics(store, runID, metrics)

	return outwriter.PrintKMetrics(metrics, cfg, time.Since(start))
}

// ExecuteChart produces the labeled price observation table for the chart
// renderer: every retained observation with its decomposition components
// and the cluster label of its listing.
func ExecuteChart(cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	logHeader(cfg, "Labeling price series")

	runID := beginRun(cfg, store, start)

	full, exclusions, err := Decompose(cfg)
	if err != nil {
		return err
	}
	vectors, err := ClusterWindow(cfg, full, exclusions)
	if err != nil {
		return err
	}
	assigns, err := FitChosenK(cfg, vectors)
	if err != nil {
		return err
	}
	labeled := LabelObservations(full, assigns)
	reportExclusions(cfg, exclusions)
	endRun(store, runID, full, exclusions)

	return outwriter.PrintChartResults(labeled, cfg, time.Since(start))
}

// ExecuteMap produces the labeled listing metadata table for the map
// renderer: coordinates, name and rating joined with the cluster label.
func ExecuteMap(cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	logHeader(cfg, "Labeling listing metadata")

	runID := beginRun(cfg, store, start)

	full, exclusions, err := Decompose(cfg)
	if err != nil {
		return err
	}
	vectors, err := ClusterWindow(cfg, full, exclusions)
	if err != nil {
		return err
	}
	assigns, err := FitChosenK(cfg, vectors)
	if err != nil {
		return err
	}
	meta, err := loader.LoadListings(cfg.ListingsDir)
	if err != nil {
		return err
	}
	labeled := LabelListings(meta, assigns, exclusions)
	reportExclusions(cfg, exclusions)
	endRun(store, runID, full, exclusions)

	return outwriter.PrintMapResults(labeled, cfg, time.Since(start))
}

// logHeader prints the one-line analysis header.
func logHeader(cfg *contract.Config, action string) {
	if cfg.UseEmojis {
		fmt.Fprintf(os.Stderr, "🏠 rentlens: %s in %s\n", action, cfg.DataDir)
		return
	}
	fmt.Fprintf(os.Stderr, "rentlens: %s in %s\n", action, cfg.DataDir)
}

// reportExclusions surfaces every counted drop, so exclusion is always
// observable.
func reportExclusions(cfg *contract.Config, exclusions *contract.ExclusionLog) {
	exclusions.Report(func(msg string) { contract.LogWarn(msg, nil) })
}

// beginRun starts run tracking when a store is configured. Tracking
// failures degrade to warnings; they never abort an analysis.
func beginRun(cfg *contract.Config, store contract.RunStore, start time.Time) int64 {
	if store == nil {
		return 0
	}
	params := map[string]any{
		"span":     cfg.Span,
		"min_obs":  cfg.MinObs,
		"restarts": cfg.Restarts,
		"seed":     cfg.Seed,
		"workers":  cfg.Workers,
	}
	if !cfg.Month.IsZero() {
		params["month"] = cfg.Month.Format(schema.MonthFormat)
	}
	runID, err := store.BeginRun(start, params)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return 0
	}
	return runID
}

// endRun finalizes run tracking.
func endRun(store contract.RunStore, runID int64, full []schema.FullyDecomposedObservation, exclusions *contract.ExclusionLog) {
	if store == nil || runID == 0 {
		return
	}
	listings := make(map[string]struct{})
	for _, r := range full {
		listings[r.ListingID] = struct{}{}
	}
	if err := store.EndRun(runID, time.Now(), len(listings), exclusions.Total()); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}

// recordKMetrics stores the per-k metric table for later comparison.
func recordKMetrics(store contract.RunStore, runID int64, metrics []schema.KMetric) {
	if store == nil || runID == 0 {
		return
	}
	if err := store.RecordKMetrics(runID, metrics); err != nil {
		contract.LogWarn("Failed to record k metrics", err)
	}
}
