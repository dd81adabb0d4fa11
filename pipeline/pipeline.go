// Package pipeline orchestrates the processing stages that turn a raw
// waveform into one aligned per-sample table plus a metadata record.
//
// This package is the composition root: it defines the contracts the
// detector stages implement and sequences them, but contains no
// signal-processing logic of its own. Reference stage implementations
// live in the ecg package; none of the stage packages import pipeline.
package pipeline

import (
	"fmt"

	"github.com/banshee-data/pulse.report/internal/monitoring"
	"github.com/banshee-data/pulse.report/signal"
)

// AlignmentError reports a stage that returned a series whose length
// does not match the expected row count. It is an internal-consistency
// failure of the offending collaborator and is always fatal.
type AlignmentError struct {
	Stage string
	Want  int
	Got   int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("%s stage returned %d samples, want %d", e.Stage, e.Got, e.Want)
}

// ---------------------------------------------------------------------------
// Stage interfaces — collaborator contracts for the processing pipeline.
// Each stage is a pure transformation: it never mutates its inputs and
// owns the numerical semantics of its output (including any boundary
// policy, e.g. the rate estimator's edge extrapolation).
// ---------------------------------------------------------------------------

// Cleaner filters a validated signal, preserving its length.
type Cleaner interface {
	// Clean returns the filtered signal, same length as raw.
	Clean(raw []float64, samplingRate float64) ([]float64, error)
}

// EventDetector locates the primary events (e.g. R peaks) in a
// cleaned signal.
type EventDetector interface {
	// DetectEvents returns dense mask columns aligned to the input
	// length plus the sparse event set. When correctArtifacts is set
	// the detector adjusts or drops implausible events before the set
	// is frozen.
	DetectEvents(cleaned []float64, samplingRate float64, correctArtifacts bool) (*signal.AlignedTable, signal.EventSet, error)
}

// RateEstimator produces a continuous per-sample rate series from
// sparse event positions. Producing a value for every sample,
// including before the first and after the last event, is the
// estimator's responsibility.
type RateEstimator interface {
	Rate(events signal.EventSet, samplingRate float64, desiredLength int) ([]float64, error)
}

// QualityScorer produces a continuous per-sample quality series from
// the cleaned signal and the detected events.
type QualityScorer interface {
	Score(cleaned []float64, events signal.EventSet, samplingRate float64) ([]float64, error)
}

// Delineator locates secondary waveform components (component peaks,
// onsets, offsets) relative to the primary events. It returns dense
// mask columns plus the boundary indices keyed by column name.
type Delineator interface {
	Delineate(cleaned []float64, events signal.EventSet, samplingRate float64) (*signal.AlignedTable, map[string][]int, error)
}

// PhaseAssigner derives phase and phase-completion columns from the
// primary events and the delineation boundaries.
type PhaseAssigner interface {
	Phase(cleaned []float64, events signal.EventSet, boundaries map[string][]int) (*signal.AlignedTable, error)
}

// Config holds the stages and parameters for one pipeline. Delineator
// and PhaseAssigner are optional; the remaining stages are required.
type Config struct {
	SamplingRate float64

	Cleaner   Cleaner
	Detector  EventDetector
	Estimator RateEstimator
	Scorer    QualityScorer
	Delineate Delineator
	Phase     PhaseAssigner

	// CorrectArtifacts asks the detector to adjust implausible events
	// before the primary event set is frozen.
	CorrectArtifacts bool

	// Column names for the primary table, e.g. "ECG_Raw". EventsKey
	// is also the InfoRecord key for the primary event indices.
	RawColumn     string
	CleanColumn   string
	RateColumn    string
	QualityColumn string
	EventsKey     string
}

// Validate checks that the configuration can run.
func (cfg *Config) Validate() error {
	if err := signal.ValidateSamplingRate(cfg.SamplingRate); err != nil {
		return err
	}
	switch {
	case cfg.Cleaner == nil:
		return fmt.Errorf("pipeline config: Cleaner is required")
	case cfg.Detector == nil:
		return fmt.Errorf("pipeline config: Detector is required")
	case cfg.Estimator == nil:
		return fmt.Errorf("pipeline config: Estimator is required")
	case cfg.Scorer == nil:
		return fmt.Errorf("pipeline config: Scorer is required")
	}
	for _, name := range []string{cfg.RawColumn, cfg.CleanColumn, cfg.RateColumn, cfg.QualityColumn, cfg.EventsKey} {
		if name == "" {
			return fmt.Errorf("pipeline config: all column names must be set")
		}
	}
	return nil
}

// Run executes the pipeline on a raw sample sequence and returns the
// aligned table and the run's metadata record.
//
// The stage order is fixed: sanitize, clean, detect, rate, quality,
// delineate, phase. Stage outputs are merged column-wise with
// last-write-wins precedence, so a later stage that emits an existing
// column name deterministically replaces the earlier values. Every
// merged column is length-checked against the sanitized input length;
// a mismatch surfaces as an AlignmentError naming the stage. Stage
// errors propagate unchanged — there is no partial output.
func (cfg *Config) Run(raw []float64) (*signal.AlignedTable, *signal.InfoRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	validated, err := signal.Sanitize(raw)
	if err != nil {
		return nil, nil, err
	}
	n := len(validated)

	cleaned, err := cfg.Cleaner.Clean(validated, cfg.SamplingRate)
	if err != nil {
		return nil, nil, err
	}
	if len(cleaned) != n {
		return nil, nil, &AlignmentError{Stage: "clean", Want: n, Got: len(cleaned)}
	}

	masks, events, err := cfg.Detector.DetectEvents(cleaned, cfg.SamplingRate, cfg.CorrectArtifacts)
	if err != nil {
		return nil, nil, err
	}
	monitoring.Logf("pipeline: detected %d events over %d samples", events.Len(), n)

	rate, err := cfg.Estimator.Rate(events, cfg.SamplingRate, n)
	if err != nil {
		return nil, nil, err
	}
	if len(rate) != n {
		return nil, nil, &AlignmentError{Stage: "rate", Want: n, Got: len(rate)}
	}

	quality, err := cfg.Scorer.Score(cleaned, events, cfg.SamplingRate)
	if err != nil {
		return nil, nil, err
	}
	if len(quality) != n {
		return nil, nil, &AlignmentError{Stage: "quality", Want: n, Got: len(quality)}
	}

	tbl := signal.NewTable(n)
	tbl.Set(cfg.RawColumn, validated)
	tbl.Set(cfg.CleanColumn, cleaned)
	tbl.Set(cfg.RateColumn, rate)
	tbl.Set(cfg.QualityColumn, quality)

	if err := mergeStage(tbl, masks, "detect"); err != nil {
		return nil, nil, err
	}

	info := signal.NewInfoRecord(cfg.SamplingRate)
	info.SetEvents(cfg.EventsKey, events)

	var boundaries map[string][]int
	if cfg.Delineate != nil {
		delineated, bounds, err := cfg.Delineate.Delineate(cleaned, events, cfg.SamplingRate)
		if err != nil {
			return nil, nil, err
		}
		if err := mergeStage(tbl, delineated, "delineate"); err != nil {
			return nil, nil, err
		}
		for key, idx := range bounds {
			info.Events[key] = idx
		}
		boundaries = bounds
	}

	if cfg.Phase != nil {
		phased, err := cfg.Phase.Phase(cleaned, events, boundaries)
		if err != nil {
			return nil, nil, err
		}
		if err := mergeStage(tbl, phased, "phase"); err != nil {
			return nil, nil, err
		}
	}

	return tbl, info, nil
}

// mergeStage merges a stage's columns into the primary table,
// converting any row-count violation into an AlignmentError that
// names the stage.
func mergeStage(dst *signal.AlignedTable, src *signal.AlignedTable, stage string) error {
	if src == nil {
		return nil
	}
	if src.Len() != dst.Len() {
		return &AlignmentError{Stage: stage, Want: dst.Len(), Got: src.Len()}
	}
	for _, name := range src.Columns() {
		col, _ := src.Column(name)
		if len(col) != dst.Len() {
			return &AlignmentError{Stage: stage, Want: dst.Len(), Got: len(col)}
		}
		if err := dst.Set(name, col); err != nil {
			return err
		}
	}
	return nil
}
