package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string

	// Stage identifies a pipeline stage for error reporting and
	// exclusion accounting.
	Stage string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	GeoJSONOut OutputMode = "geojson" // map command only
)

// All run-store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// Pipeline stages in dependency order.
const (
	LoadStage      Stage = "load"
	DecomposeStage Stage = "decompose"
	PeriodicStage  Stage = "periodic"
	ClusterStage   Stage = "cluster"
	LabelStage     Stage = "label"
)

// ValidOutputModes lists all valid output modes for tabular commands.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidMapOutputModes lists all valid output modes for the map command,
// which additionally supports GeoJSON.
var ValidMapOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
	GeoJSONOut: {},
}

// ValidRunBackends lists all valid run-store backends.
var ValidRunBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// PriceColumns is the fixed schema expected in every price extract file.
var PriceColumns = []string{"listing_id", "date", "price_per"}

// ListingColumns is the fixed schema expected in every listing metadata
// extract file. Note the identifier column is named "id" here, not
// "listing_id"; the loader performs the key mapping explicitly.
var ListingColumns = []string{"id", "latitude", "longitude", "name", "review_scores_rating"}
