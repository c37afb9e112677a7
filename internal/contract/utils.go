package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Cluster palette for console output. The two-cluster case is the common
// one in this analysis, so the first two colors carry the categorical
// encoding; further clusters cycle through the rest.
var clusterColors = []*color.Color{
	color.New(color.FgCyan, color.Bold),
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen),
	color.New(color.FgMagenta),
	color.New(color.FgRed),
	color.New(color.FgBlue),
}

// ClusterLabel returns the display label for a cluster, colored when
// requested.
func ClusterLabel(cluster int, useColors bool) string {
	text := fmt.Sprintf("C%d", cluster)
	if !useColors {
		return text
	}
	c := clusterColors[cluster%len(clusterColors)]
	return c.Sprint(text)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s\n", msg)
}

// ParseToggle interprets yes/no style flag values. Unrecognized values
// count as enabled, matching the permissive default.
func ParseToggle(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "no", "false", "0", "off":
		return false
	default:
		return true
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateID shortens long listing identifiers for table display,
// keeping the tail since Airbnb-style IDs differ at the end.
func TruncateID(id string, maxWidth int) string {
	if maxWidth <= 3 || len(id) <= maxWidth {
		return id
	}
	return "..." + id[len(id)-(maxWidth-3):]
}
