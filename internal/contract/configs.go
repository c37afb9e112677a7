package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rentlens/rentlens/schema"
)

// Default values for configuration.
const (
	DefaultSpan      = 0.25 // Fraction of a listing's points in each local neighborhood
	DefaultMinObs    = 10   // Minimum observations per listing for trend fitting
	DefaultKMin      = 1
	DefaultKMax      = 10
	DefaultRestarts  = 10
	DefaultSeed      = 42
	DefaultPrecision = 2
)

// MinSmoothingObs is the hard floor for min-obs: a degree-one local fit
// needs at least this many points per neighborhood to be meaningful.
const MinSmoothingObs = 4

// DefaultWorkers is the default number of concurrent per-listing fits.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation in outputs.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir     string
	PricesDir   string
	ListingsDir string

	Span     float64
	MinObs   int
	Month    time.Time // Zero when the command does not cluster
	K        int       // Chosen cluster count; zero until the analyst picks one
	KMin     int
	KMax     int
	Restarts int
	Seed     int64
	Workers  int

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	UseEmojis bool
	UseColors bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataDirStr string

	PricesDir   string `mapstructure:"prices-dir"`
	ListingsDir string `mapstructure:"listings-dir"`

	Span     float64 `mapstructure:"span"`
	MinObs   int     `mapstructure:"min-obs"`
	Month    string  `mapstructure:"month"`
	K        int     `mapstructure:"k"`
	KMin     int     `mapstructure:"k-min"`
	KMax     int     `mapstructure:"k-max"`
	Restarts int     `mapstructure:"restarts"`
	Seed     int64   `mapstructure:"seed"`
	Workers  int     `mapstructure:"workers"`

	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`

	RunsBackend   string `mapstructure:"runs-backend"`
	RunsDBConnect string `mapstructure:"runs-db-connect"`

	Emoji string `mapstructure:"emoji"`
	Color string `mapstructure:"color"`
}

// ProcessAndValidate turns the raw input into a validated Config.
// When geo is true the GeoJSON output mode is accepted (map command).
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, geo bool) error {
	// --- Data directories ---
	dataDir := input.DataDirStr
	if dataDir == "" {
		dataDir = "."
	}
	cfg.DataDir = dataDir

	cfg.PricesDir = input.PricesDir
	if cfg.PricesDir == "" {
		cfg.PricesDir = filepath.Join(dataDir, "prices")
	}
	cfg.ListingsDir = input.ListingsDir
	if cfg.ListingsDir == "" {
		cfg.ListingsDir = filepath.Join(dataDir, "listings")
	}

	// --- Smoothing parameters ---
	if input.Span <= 0 || input.Span > 1 {
		return fmt.Errorf("span must be in (0, 1], got %g", input.Span)
	}
	cfg.Span = input.Span

	if input.MinObs < MinSmoothingObs {
		return fmt.Errorf("min-obs must be at least %d, got %d", MinSmoothingObs, input.MinObs)
	}
	cfg.MinObs = input.MinObs

	// --- Clustering parameters ---
	if input.Month != "" {
		month, err := time.Parse(schema.MonthFormat, input.Month)
		if err != nil {
			return fmt.Errorf("month must look like 2024-04: %w", err)
		}
		cfg.Month = month
	}

	if input.KMin < 1 {
		return fmt.Errorf("k-min must be at least 1, got %d", input.KMin)
	}
	if input.KMax < input.KMin {
		return fmt.Errorf("k-max (%d) must not be below k-min (%d)", input.KMax, input.KMin)
	}
	cfg.KMin = input.KMin
	cfg.KMax = input.KMax

	if input.K < 0 {
		return fmt.Errorf("k must be positive, got %d", input.K)
	}
	cfg.K = input.K

	if input.Restarts < 1 {
		return fmt.Errorf("restarts must be at least 1, got %d", input.Restarts)
	}
	cfg.Restarts = input.Restarts
	cfg.Seed = input.Seed

	if input.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- Output ---
	if input.Precision < 0 {
		return fmt.Errorf("precision must not be negative, got %d", input.Precision)
	}
	cfg.Precision = input.Precision

	output := schema.OutputMode(input.Output)
	validModes := schema.ValidOutputModes
	if geo {
		validModes = schema.ValidMapOutputModes
	}
	if _, ok := validModes[output]; !ok {
		return fmt.Errorf("unsupported output mode %q", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// --- Run tracking ---
	backend := schema.DatabaseBackend(input.RunsBackend)
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidRunBackends[backend]; !ok {
		return fmt.Errorf("unsupported runs backend %q", input.RunsBackend)
	}
	if err := ValidateDatabaseConnectionString(backend, input.RunsDBConnect); err != nil {
		return err
	}
	cfg.RunsBackend = backend
	cfg.RunsDBConnect = input.RunsDBConnect

	cfg.UseEmojis = ParseToggle(input.Emoji)
	cfg.UseColors = ParseToggle(input.Color)

	return nil
}

// RequireMonth checks that a clustering month was configured. Commands that
// build the clustering matrix call this in their setup.
func (c *Config) RequireMonth() error {
	if c.Month.IsZero() {
		return fmt.Errorf("--month is required (e.g. --month 2024-04)")
	}
	return nil
}

// RequireChosenK checks that the analyst has picked a cluster count.
// The per-k metric table from 'rentlens kscan' informs that choice; the
// pipeline never auto-selects.
func (c *Config) RequireChosenK() error {
	if c.K == 0 {
		return fmt.Errorf("--k is required; run 'rentlens kscan' and pick a cluster count from the metric table")
	}
	if c.K < 1 {
		return fmt.Errorf("k must be at least 1, got %d", c.K)
	}
	return nil
}

// ValidateDatabaseConnectionString performs basic validation of connection
// strings for database backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("%s backend requires --runs-db-connect", backend)
		}
	default:
		// SQLite uses a default file path; None needs nothing.
	}
	return nil
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// GetRunsDBFilePath returns the default SQLite database path for run
// tracking, under the user cache directory.
func GetRunsDBFilePath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	dir := filepath.Join(cacheDir, "rentlens")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "runs.db")
}
