package contract

import (
	"fmt"
	"strings"

	"github.com/rentlens/rentlens/schema"
)

// SchemaError reports a file whose columns do not match the expected
// fixed schema. Loads are all-or-nothing per directory, so one bad file
// aborts the whole load.
type SchemaError struct {
	File    string
	Missing []string
	Got     []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema mismatch in %s: missing columns [%s], got [%s]",
		e.File, strings.Join(e.Missing, ", "), strings.Join(e.Got, ", "))
}

// MissingKeyError reports a join key absent from the right-hand table.
type MissingKeyError struct {
	Table string
	Key   string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("join key %q not present in table %s", e.Key, e.Table)
}

// IncompleteGroupError reports a listing that lacks the required number of
// observations for a stage. Callers decide whether this is fatal or the
// listing is excluded; exclusion is always counted, never silent.
type IncompleteGroupError struct {
	Stage     schema.Stage
	ListingID string
	Got       int
	Want      int
}

func (e *IncompleteGroupError) Error() string {
	return fmt.Sprintf("%s: listing %s has %d observations, requires %d",
		e.Stage, e.ListingID, e.Got, e.Want)
}

// DuplicateDateError reports two price observations for the same listing
// and date, which is a data-quality error rather than something to average.
type DuplicateDateError struct {
	ListingID string
	Date      string
}

func (e *DuplicateDateError) Error() string {
	return fmt.Sprintf("duplicate observation for listing %s on %s", e.ListingID, e.Date)
}

// NonFiniteValueError reports a NaN or infinite value where a clustering
// matrix cell is required.
type NonFiniteValueError struct {
	ListingID string
	Day       int
}

func (e *NonFiniteValueError) Error() string {
	return fmt.Sprintf("non-finite remainder for listing %s on day %d", e.ListingID, e.Day)
}

// ExclusionLog counts the listings dropped at each stage so that no
// exclusion ever happens silently. It is reported to stderr at the end of
// a run and recorded by the run store when tracking is enabled.
type ExclusionLog struct {
	ShortSeries      int // Dropped by the decomposer for having fewer than min-obs observations
	IncompleteWindow int // Dropped by the cluster selector for not covering the month exactly
	Unlabeled        int // Metadata rows dropped by the geo-join for lacking a cluster label
}

// Total returns the total number of exclusions across stages.
func (l *ExclusionLog) Total() int {
	return l.ShortSeries + l.IncompleteWindow + l.Unlabeled
}

// Report writes a human-readable exclusion summary, one line per
// non-zero counter.
func (l *ExclusionLog) Report(warn func(string)) {
	if l.ShortSeries > 0 {
		warn(fmt.Sprintf("%d listing(s) excluded: too few observations for trend fitting", l.ShortSeries))
	}
	if l.IncompleteWindow > 0 {
		warn(fmt.Sprintf("%d listing(s) excluded: incomplete clustering window", l.IncompleteWindow))
	}
	if l.Unlabeled > 0 {
		warn(fmt.Sprintf("%d listing(s) excluded: no cluster label after join", l.Unlabeled))
	}
}
