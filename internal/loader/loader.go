// Package loader reads fragmented tabular extracts from a directory and
// concatenates them into unified, typed tables.
//
// Loads are all-or-nothing per directory: one file that fails to parse
// against the fixed schema aborts the whole load with an error naming that
// file. Enumeration order is insignificant; downstream stages group and join
// by listing ID, never by row position.
package loader

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rentlens/rentlens/internal/contract"
	"github.com/rentlens/rentlens/schema"
)

// LoadPrices reads every file in dir as a price extract and concatenates
// the parsed rows into one observation table.
func LoadPrices(dir string) ([]schema.PriceObservation, error) {
	files, err := listDataFiles(dir)
	if err != nil {
		return nil, err
	}

	var all []schema.PriceObservation
	for _, path := range files {
		rows, err := readPriceFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}
	return all, nil
}

// LoadListings reads every file in dir as a listing metadata extract and
// concatenates the parsed rows into one metadata table.
//
// The metadata identifier column is named "id" in the extracts, not
// "listing_id". The mapping onto ListingID happens here, explicitly, so the
// rest of the pipeline only ever sees one key name.
func LoadListings(dir string) ([]schema.ListingMetadata, error) {
	files, err := listDataFiles(dir)
	if err != nil {
		return nil, err
	}

	var all []schema.ListingMetadata
	for _, path := range files {
		rows, err := readListingFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}
	return all, nil
}

// listDataFiles enumerates the regular files in dir. An empty directory is
// an error: a batch analysis with nothing to analyze should fail loudly,
// not produce an empty report.
func listDataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot enumerate data directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no data files found in %s", dir)
	}
	return files, nil
}

// readFrame parses one file into a dataframe with the given column types
// and validates it against the expected columns.
func readFrame(path string, want []string, types map[string]series.Type) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("cannot parse %s: %w", path, df.Err)
	}

	got := df.Names()
	have := make(map[string]bool, len(got))
	for _, name := range got {
		have[name] = true
	}
	var missing []string
	for _, name := range want {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return dataframe.DataFrame{}, &contract.SchemaError{File: path, Missing: missing, Got: got}
	}
	return df, nil
}

// readPriceFile parses one price extract into typed observations.
func readPriceFile(path string) ([]schema.PriceObservation, error) {
	df, err := readFrame(path, schema.PriceColumns, map[string]series.Type{
		"listing_id": series.String,
		"date":       series.String,
		"price_per":  series.Float,
	})
	if err != nil {
		return nil, err
	}

	ids := df.Col("listing_id").Records()
	dates := df.Col("date").Records()
	prices := df.Col("price_per").Float()

	rows := make([]schema.PriceObservation, 0, df.Nrow())
	for i := range df.Nrow() {
		date, err := time.Parse(schema.DateFormat, dates[i])
		if err != nil {
			return nil, fmt.Errorf("bad date %q in %s: %w", dates[i], path, err)
		}
		if math.IsNaN(prices[i]) {
			// A price that did not parse as a float is a schema violation,
			// not a missing value to be defaulted.
			return nil, &contract.SchemaError{File: path, Missing: []string{"price_per (numeric)"}, Got: df.Names()}
		}
		rows = append(rows, schema.PriceObservation{
			ListingID: ids[i],
			Date:      date,
			PricePer:  prices[i],
		})
	}
	return rows, nil
}

// readListingFile parses one listing metadata extract into typed rows.
func readListingFile(path string) ([]schema.ListingMetadata, error) {
	df, err := readFrame(path, schema.ListingColumns, map[string]series.Type{
		"id":                   series.String,
		"latitude":             series.Float,
		"longitude":            series.Float,
		"name":                 series.String,
		"review_scores_rating": series.Float,
	})
	if err != nil {
		return nil, err
	}

	ids := df.Col("id").Records()
	lats := df.Col("latitude").Float()
	lons := df.Col("longitude").Float()
	names := df.Col("name").Records()
	ratings := df.Col("review_scores_rating").Float()

	rows := make([]schema.ListingMetadata, 0, df.Nrow())
	for i := range df.Nrow() {
		if math.IsNaN(lats[i]) || math.IsNaN(lons[i]) {
			return nil, &contract.SchemaError{File: path, Missing: []string{"latitude/longitude (numeric)"}, Got: df.Names()}
		}
		rows = append(rows, schema.ListingMetadata{
			ListingID: ids[i],
			Latitude:  lats[i],
			Longitude: lons[i],
			Name:      names[i],
			Rating:    ratings[i],
		})
	}
	return rows, nil
}
