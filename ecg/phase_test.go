package ecg

import (
	"testing"

	"github.com/banshee-data/pulse.report/signal"
)

func TestPhaseFromBoundaries(t *testing.T) {
	const n = 12
	cleaned := make([]float64, n)
	events, err := signal.NewEventSet([]int{2, 7}, n)
	if err != nil {
		t.Fatalf("NewEventSet failed: %v", err)
	}
	boundaries := map[string][]int{
		ColPOnsets:  {1, 6},
		ColTOffsets: {4, 9},
	}

	tbl, err := PhaseAssigner{}.Phase(cleaned, events, boundaries)
	if err != nil {
		t.Fatalf("Phase failed: %v", err)
	}

	ventricular, ok := tbl.Column(ColPhaseVentricular)
	if !ok {
		t.Fatalf("missing %s", ColPhaseVentricular)
	}
	// Systole from each R peak to the following T offset.
	wantVent := []float64{0, 0, 1, 1, 0, 0, 0, 1, 1, 0, 0, 0}
	for i := range wantVent {
		if ventricular[i] != wantVent[i] {
			t.Fatalf("ventricular = %v, want %v", ventricular, wantVent)
		}
	}

	atrial, ok := tbl.Column(ColPhaseAtrial)
	if !ok {
		t.Fatalf("missing %s", ColPhaseAtrial)
	}
	// Systole from each P onset to the following R peak.
	wantAtr := []float64{0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0}
	for i := range wantAtr {
		if atrial[i] != wantAtr[i] {
			t.Fatalf("atrial = %v, want %v", atrial, wantAtr)
		}
	}

	completion, ok := tbl.Column(ColVentricularCompletion)
	if !ok {
		t.Fatalf("missing %s", ColVentricularCompletion)
	}
	// The run at samples 2..3 ramps linearly from 0 to 1.
	if completion[2] != 0 || completion[3] != 1 {
		t.Errorf("completion over systole = %v, %v, want 0, 1", completion[2], completion[3])
	}
}

func TestPhaseFallbackWithoutBoundaries(t *testing.T) {
	const n = 20
	cleaned := make([]float64, n)
	events, err := signal.NewEventSet([]int{5, 15}, n)
	if err != nil {
		t.Fatalf("NewEventSet failed: %v", err)
	}

	tbl, err := PhaseAssigner{}.Phase(cleaned, events, nil)
	if err != nil {
		t.Fatalf("Phase failed: %v", err)
	}

	for _, name := range []string{ColPhaseAtrial, ColPhaseVentricular, ColAtrialCompletion, ColVentricularCompletion} {
		col, ok := tbl.Column(name)
		if !ok {
			t.Fatalf("missing %s", name)
		}
		if len(col) != n {
			t.Fatalf("%s length = %d, want %d", name, len(col), n)
		}
	}

	ventricular, _ := tbl.Column(ColPhaseVentricular)
	// Midpoint fallback: systole from R at 5 to the midpoint at 10.
	if ventricular[5] != 1 || ventricular[9] != 1 || ventricular[10] != 0 {
		t.Errorf("ventricular fallback = %v", ventricular)
	}
}
