package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/banshee-data/pulse.report/signal"
)

// Synthetic stages with fully controlled output shapes.

type stubCleaner struct{ dropSamples int }

func (c stubCleaner) Clean(raw []float64, _ float64) ([]float64, error) {
	out := make([]float64, len(raw)-c.dropSamples)
	copy(out, raw)
	return out, nil
}

type stubDetector struct {
	indices []int
	extra   map[string][]float64
	// dropSamples shrinks the emitted mask table's row count.
	dropSamples int
	err         error
}

func (d stubDetector) DetectEvents(cleaned []float64, _ float64, _ bool) (*signal.AlignedTable, signal.EventSet, error) {
	if d.err != nil {
		return nil, signal.EventSet{}, d.err
	}
	events, err := signal.NewEventSet(d.indices, len(cleaned))
	if err != nil {
		return nil, signal.EventSet{}, err
	}
	n := len(cleaned) - d.dropSamples
	masks := signal.NewTable(n)
	masks.Set("Stub_Peaks", events.Mask(n))
	for name, col := range d.extra {
		masks.Set(name, col)
	}
	return masks, events, nil
}

type stubEstimator struct{ dropSamples int }

func (e stubEstimator) Rate(_ signal.EventSet, _ float64, desiredLength int) ([]float64, error) {
	out := make([]float64, desiredLength-e.dropSamples)
	for i := range out {
		out[i] = 60
	}
	return out, nil
}

type stubScorer struct{ dropSamples int }

func (s stubScorer) Score(cleaned []float64, _ signal.EventSet, _ float64) ([]float64, error) {
	out := make([]float64, len(cleaned)-s.dropSamples)
	for i := range out {
		out[i] = 1
	}
	return out, nil
}

type stubDelineator struct {
	cols        map[string][]float64
	dropSamples int
}

func (d stubDelineator) Delineate(cleaned []float64, _ signal.EventSet, _ float64) (*signal.AlignedTable, map[string][]int, error) {
	tbl := signal.NewTable(len(cleaned) - d.dropSamples)
	for name, col := range d.cols {
		tbl.Set(name, col)
	}
	return tbl, map[string][]int{"Stub_Offsets": {5}}, nil
}

func testConfig(n int) *Config {
	return &Config{
		SamplingRate: 100,
		Cleaner:      stubCleaner{},
		Detector:     stubDetector{indices: []int{2, 5, 8}},
		Estimator:    stubEstimator{},
		Scorer:       stubScorer{},

		RawColumn:     "Sig_Raw",
		CleanColumn:   "Sig_Clean",
		RateColumn:    "Sig_Rate",
		QualityColumn: "Sig_Quality",
		EventsKey:     "Stub_Peaks",
	}
}

func rawSignal(n int) []float64 {
	raw := make([]float64, n)
	for i := range raw {
		raw[i] = float64(i % 7)
	}
	return raw
}

// Every column of the output table must have exactly the validated
// input length, whatever the stages emit.
func TestRunLengthInvariance(t *testing.T) {
	const n = 64
	tbl, info, err := testConfig(n).Run(rawSignal(n))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tbl.Len() != n {
		t.Fatalf("table row count = %d, want %d", tbl.Len(), n)
	}
	for _, name := range tbl.Columns() {
		col, _ := tbl.Column(name)
		if len(col) != n {
			t.Errorf("column %q length = %d, want %d", name, len(col), n)
		}
	}
	if got := info.Events["Stub_Peaks"]; len(got) != 3 {
		t.Errorf("info events = %v, want 3 indices", got)
	}
	if info.SamplingRate != 100 {
		t.Errorf("info sampling rate = %v, want 100", info.SamplingRate)
	}
}

func TestRunFailsFastOnBadSamplingRate(t *testing.T) {
	cfg := testConfig(16)
	cfg.SamplingRate = 0
	cfg.Cleaner = nil // would panic if any stage ran
	_, _, err := cfg.Run(rawSignal(16))
	var invalid *signal.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError before any stage, got %v", err)
	}
}

// A collaborator returning N-1 samples against an N-sample input is a
// fatal internal-consistency failure naming the stage and both
// lengths.
func TestRunAlignmentErrorNamesStageAndLengths(t *testing.T) {
	const n = 32
	cases := []struct {
		stage string
		mut   func(*Config)
	}{
		{"clean", func(c *Config) { c.Cleaner = stubCleaner{dropSamples: 1} }},
		{"rate", func(c *Config) { c.Estimator = stubEstimator{dropSamples: 1} }},
		{"quality", func(c *Config) { c.Scorer = stubScorer{dropSamples: 1} }},
		{"detect", func(c *Config) {
			c.Detector = stubDetector{indices: []int{2}, dropSamples: 1}
			c.Estimator = constantRate{}
		}},
		{"delineate", func(c *Config) {
			c.Delineate = stubDelineator{dropSamples: 1}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.stage, func(t *testing.T) {
			cfg := testConfig(n)
			tc.mut(cfg)
			_, _, err := cfg.Run(rawSignal(n))

			var alignErr *AlignmentError
			if !errors.As(err, &alignErr) {
				t.Fatalf("expected AlignmentError, got %v", err)
			}
			if alignErr.Stage != tc.stage {
				t.Errorf("stage = %q, want %q", alignErr.Stage, tc.stage)
			}
			if alignErr.Want != n || alignErr.Got != n-1 {
				t.Errorf("lengths = %d/%d, want %d/%d", alignErr.Got, alignErr.Want, n-1, n)
			}
			if !strings.Contains(err.Error(), tc.stage) {
				t.Errorf("error %q does not name the stage", err)
			}
		})
	}
}

// constantRate tolerates any event count, unlike the real estimator.
type constantRate struct{}

func (constantRate) Rate(_ signal.EventSet, _ float64, desiredLength int) ([]float64, error) {
	return make([]float64, desiredLength), nil
}

// When two stages emit the same column name the later stage's values
// must win, deterministically.
func TestRunMergePrecedence(t *testing.T) {
	const n = 16
	fromDetector := make([]float64, n)
	fromDelineator := make([]float64, n)
	for i := range fromDelineator {
		fromDetector[i] = 1
		fromDelineator[i] = 2
	}

	cfg := testConfig(n)
	cfg.Detector = stubDetector{indices: []int{2, 5}, extra: map[string][]float64{"Shared": fromDetector}}
	cfg.Delineate = stubDelineator{cols: map[string][]float64{"Shared": fromDelineator}}

	tbl, _, err := cfg.Run(rawSignal(n))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	col, ok := tbl.Column("Shared")
	if !ok {
		t.Fatal("shared column missing")
	}
	for i, v := range col {
		if v != 2 {
			t.Fatalf("Shared[%d] = %v, want the later stage's value 2", i, v)
		}
	}
}

func TestRunPropagatesStageErrors(t *testing.T) {
	stageErr := errors.New("detector exploded")
	cfg := testConfig(16)
	cfg.Detector = stubDetector{err: stageErr}

	_, _, err := cfg.Run(rawSignal(16))
	if !errors.Is(err, stageErr) {
		t.Fatalf("stage error not propagated unchanged: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := testConfig(16)
	cfg.QualityColumn = ""
	if _, _, err := cfg.Run(rawSignal(16)); err == nil {
		t.Fatal("expected validation error for missing column name")
	}

	cfg = testConfig(16)
	cfg.Scorer = nil
	if _, _, err := cfg.Run(rawSignal(16)); err == nil {
		t.Fatal("expected validation error for missing stage")
	}
}
