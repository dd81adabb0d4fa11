package analysis

import (
	"fmt"
	"strings"

	"github.com/banshee-data/pulse.report/signal"
)

// SchemaError reports a required column that is absent or ambiguous
// in an aggregation input. Pattern is the required column pattern,
// Label names the offending epoch (empty in single-record mode), and
// Matches lists the column names that matched — empty for a missing
// column, more than one for an ambiguous one.
type SchemaError struct {
	Pattern string
	Label   string
	Matches []string
}

func (e *SchemaError) Error() string {
	where := "table"
	if e.Label != "" {
		where = fmt.Sprintf("epoch %q", e.Label)
	}
	if len(e.Matches) == 0 {
		return fmt.Sprintf("%s has no column matching %q", where, e.Pattern)
	}
	return fmt.Sprintf("%s has %d columns matching %q (%s), want exactly one",
		where, len(e.Matches), e.Pattern, strings.Join(e.Matches, ", "))
}

// Column roles the aggregator requires. Roles are resolved once at
// aggregation entry; the reduction logic then works with the typed
// references instead of re-matching column names.
const (
	// DefaultRatePattern matches the continuous rate column.
	DefaultRatePattern = "_Rate"
	// DefaultEventsPattern matches the primary event-mask column.
	DefaultEventsPattern = "_R_Peaks"
)

// resolvedRoles carries the typed column references for one record.
type resolvedRoles struct {
	rateName string
	rate     []float64
	events   signal.EventSet
}

// resolveRoles matches the rate and events roles against a table's
// columns. Exactly one column must match each pattern; anything else
// is a SchemaError naming the pattern and the record's label.
func resolveRoles(tbl *signal.AlignedTable, ratePattern, eventsPattern, label string) (*resolvedRoles, error) {
	rateName, rate, err := matchOne(tbl, ratePattern, label)
	if err != nil {
		return nil, err
	}
	_, mask, err := matchOne(tbl, eventsPattern, label)
	if err != nil {
		return nil, err
	}
	return &resolvedRoles{
		rateName: rateName,
		rate:     rate,
		events:   signal.EventsFromMask(mask),
	}, nil
}

func matchOne(tbl *signal.AlignedTable, pattern, label string) (string, []float64, error) {
	var matches []string
	for _, name := range tbl.Columns() {
		if strings.Contains(name, pattern) {
			matches = append(matches, name)
		}
	}
	if len(matches) != 1 {
		return "", nil, &SchemaError{Pattern: pattern, Label: label, Matches: matches}
	}
	col, _ := tbl.Column(matches[0])
	return matches[0], col, nil
}
