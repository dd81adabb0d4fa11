// Package analysis reduces processed per-sample tables to
// interval-level summary rows: a mean-rate feature plus the delegated
// variability metrics, computed for one continuous recording or
// independently for each epoch of a labeled collection.
package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/pulse.report/hrv"
	"github.com/banshee-data/pulse.report/signal"
)

// SummaryRow maps feature names to scalar values for one analyzed
// record.
type SummaryRow map[string]float64

// VariabilityEngine computes named interval-variability metrics from
// a sparse event set.
type VariabilityEngine interface {
	Metrics(events signal.EventSet, samplingRate float64) (map[string]float64, error)
}

// Options configures an interval reduction. The zero value is not
// usable: SamplingRate is required.
type Options struct {
	SamplingRate float64

	// Engine computes the variability metrics. Nil selects the
	// default time-domain engine.
	Engine VariabilityEngine

	// RatePattern and EventsPattern select the role columns. Empty
	// values select the ECG defaults; other modalities (e.g. PPG
	// tables with a PPG_Peaks mask) override them.
	RatePattern   string
	EventsPattern string

	// Policy controls collection-mode error handling.
	Policy ErrorPolicy
}

func (o Options) withDefaults() Options {
	if o.Engine == nil {
		o.Engine = hrv.Engine{}
	}
	if o.RatePattern == "" {
		o.RatePattern = DefaultRatePattern
	}
	if o.EventsPattern == "" {
		o.EventsPattern = DefaultEventsPattern
	}
	return o
}

// IntervalRelated reduces one processed table to a single summary
// row: the arithmetic mean of the rate column (named after it, e.g.
// ECG_Rate_Mean) merged with the delegated variability metrics. On a
// feature-name collision the delegated metrics win, since they
// postdate the basic mean in computation order.
func IntervalRelated(tbl *signal.AlignedTable, opts Options) (SummaryRow, error) {
	opts = opts.withDefaults()
	if err := signal.ValidateSamplingRate(opts.SamplingRate); err != nil {
		return nil, err
	}
	return reduceOne(tbl, "", opts)
}

// reduceOne runs the single-record reduction, attributing any schema
// failure to the given epoch label. The output row is a fresh
// accumulator per call; nothing is shared between records.
func reduceOne(tbl *signal.AlignedTable, label string, opts Options) (SummaryRow, error) {
	roles, err := resolveRoles(tbl, opts.RatePattern, opts.EventsPattern, label)
	if err != nil {
		return nil, err
	}

	row := make(SummaryRow)
	row[roles.rateName+"_Mean"] = stat.Mean(roles.rate, nil)

	metrics, err := opts.Engine.Metrics(roles.events, opts.SamplingRate)
	if err != nil {
		return nil, err
	}
	// Delegated names take precedence over the basic features.
	for name, v := range metrics {
		row[name] = v
	}
	return row, nil
}
