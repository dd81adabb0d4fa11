package analysis

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/pulse.report/signal"
)

// Epoch is one labeled segment of a recording: a processed table plus
// the label copied verbatim into its summary row.
type Epoch struct {
	Label string
	Table *signal.AlignedTable
}

// EpochCollection is an ordered set of labeled epochs. Order matters:
// the output rows of IntervalRelatedEpochs follow it.
type EpochCollection []Epoch

// EpochSummary is one epoch's reduced row.
type EpochSummary struct {
	Label string
	Row   SummaryRow
}

// ErrorPolicy selects how collection-mode aggregation handles a
// failing epoch.
type ErrorPolicy int

const (
	// AbortOnFirstError fails the whole batch on the first epoch
	// error (the default).
	AbortOnFirstError ErrorPolicy = iota
	// CollectPartial reduces every epoch, returns the rows that
	// succeeded in input order, and joins the per-epoch errors.
	CollectPartial
)

// IntervalRelatedEpochs reduces every epoch of a collection
// independently and returns one summary row per label, in input
// order. Per-epoch reductions share no state, so they run on parallel
// workers; results are collected back into label order.
//
// Under AbortOnFirstError any epoch failure fails the whole batch
// with an error naming the offending label. Under CollectPartial the
// rows that succeeded are returned alongside the joined errors.
func IntervalRelatedEpochs(epochs EpochCollection, opts Options) ([]EpochSummary, error) {
	opts = opts.withDefaults()
	if err := signal.ValidateSamplingRate(opts.SamplingRate); err != nil {
		return nil, err
	}

	rows := make([]SummaryRow, len(epochs))
	errs := make([]error, len(epochs))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, ep := range epochs {
		i, ep := i, ep
		g.Go(func() error {
			row, err := reduceOne(ep.Table, ep.Label, opts)
			if err != nil {
				errs[i] = labelErr(ep.Label, err)
				return errs[i]
			}
			rows[i] = row
			return nil
		})
	}
	groupErr := g.Wait()

	if opts.Policy == AbortOnFirstError {
		// Report the earliest failing label, not whichever worker
		// lost the race inside the group.
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
		if groupErr != nil {
			return nil, groupErr
		}
	}

	out := make([]EpochSummary, 0, len(epochs))
	for i, ep := range epochs {
		if rows[i] == nil {
			continue
		}
		out = append(out, EpochSummary{Label: ep.Label, Row: rows[i]})
	}
	return out, errors.Join(errs...)
}

// labelErr attributes an epoch failure to its label unless the error
// already names it (SchemaError carries the label itself).
func labelErr(label string, err error) error {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return err
	}
	return fmt.Errorf("epoch %q: %w", label, err)
}
