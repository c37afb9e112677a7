// Package runstore persists pipeline run history and per-k clustering
// metrics to a SQL backend. Tracking is optional and advisory; it never
// changes what the pipeline computes.
package runstore

import (
	"database/sql"
	"fmt"
	"regexp"

	"github.com/rentlens/rentlens/schema"
)

// Table names for run tracking.
const (
	runsTable     = "rentlens_runs"
	kMetricsTable = "rentlens_k_metrics"
)

// validateTableName validates that the table name is a safe SQL identifier.
// It ensures the name consists only of alphanumeric characters and underscores,
// starting with a letter or underscore, to prevent SQL injection.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	matched, err := regexp.MatchString(`^[a-zA-Z_][a-zA-Z0-9_]*$`, name)
	if err != nil {
		return fmt.Errorf("error validating table name: %w", err)
	}
	if !matched {
		return fmt.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", name)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("\"%s\"", name)
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite
		return fmt.Sprintf("\"%s\"", name)
	}
}

// clearSQLTable drops all rows from the named table.
func clearSQLTable(driverName, connStr, tableName string) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	var backend schema.DatabaseBackend
	switch driverName {
	case "mysql":
		backend = schema.MySQLBackend
	case "pgx":
		backend = schema.PostgreSQLBackend
	default:
		backend = schema.SQLiteBackend
	}

	query := fmt.Sprintf("DELETE FROM %s", quoteTableName(tableName, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to clear table %s: %w", tableName, err)
	}
	return nil
}
