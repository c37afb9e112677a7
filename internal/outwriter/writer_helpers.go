package outwriter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rentlens/rentlens/internal/contract"
)

// errParquetNeedsFile is returned when parquet output is requested without a
// destination path; parquet cannot stream to a terminal.
var errParquetNeedsFile = errors.New("parquet output requires --output-file")

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// requireOutputFile enforces a destination path for file-only formats.
func requireOutputFile(outputFile string) error {
	if outputFile == "" {
		return errParquetNeedsFile
	}
	return nil
}

// logParquetWritten reports a parquet export consistently with the other
// file writers.
func logParquetWritten(successMsg, outputFile string) {
	fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
}
