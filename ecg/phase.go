package ecg

import (
	"github.com/banshee-data/pulse.report/signal"
)

// PhaseAssigner derives cardiac phase columns from the R peaks and
// the delineation boundaries: ventricular systole runs from each R
// peak to the following T offset, atrial systole from each P onset to
// the following R peak. Completion columns express the progress
// through the current phase as a fraction from 0 to 1.
//
// When delineation boundaries are unavailable the assigner falls back
// to switching phase at the midpoint between consecutive R peaks.
type PhaseAssigner struct{}

// Phase implements pipeline.PhaseAssigner.
func (PhaseAssigner) Phase(cleaned []float64, events signal.EventSet, boundaries map[string][]int) (*signal.AlignedTable, error) {
	n := len(cleaned)
	rPeaks := events.Indices()

	tOffsets := boundaries[ColTOffsets]
	pOnsets := boundaries[ColPOnsets]
	if len(tOffsets) == 0 {
		tOffsets = midpoints(rPeaks)
	}
	if len(pOnsets) == 0 {
		pOnsets = midpoints(rPeaks)
	}

	ventricular := phaseSeries(n, rPeaks, tOffsets)
	atrial := phaseSeries(n, pOnsets, rPeaks)

	tbl := signal.NewTable(n)
	tbl.Set(ColPhaseAtrial, atrial)
	tbl.Set(ColPhaseVentricular, ventricular)
	tbl.Set(ColAtrialCompletion, phaseCompletion(atrial))
	tbl.Set(ColVentricularCompletion, phaseCompletion(ventricular))
	return tbl, nil
}

// phaseSeries marks systole (1) from each onset until the next offset
// at or after it, and diastole (0) elsewhere. Onsets and offsets must
// be sorted.
func phaseSeries(n int, onsets, offsets []int) []float64 {
	out := make([]float64, n)
	oi := 0
	for _, on := range onsets {
		for oi < len(offsets) && offsets[oi] <= on {
			oi++
		}
		end := n
		if oi < len(offsets) {
			end = offsets[oi]
		}
		for i := on; i < end && i < n; i++ {
			out[i] = 1
		}
	}
	return out
}

// phaseCompletion maps each contiguous run of constant phase to a
// linear ramp from 0 to 1 across the run.
func phaseCompletion(phase []float64) []float64 {
	out := make([]float64, len(phase))
	start := 0
	for i := 1; i <= len(phase); i++ {
		if i < len(phase) && phase[i] == phase[start] {
			continue
		}
		runLen := i - start
		for j := 0; j < runLen; j++ {
			if runLen > 1 {
				out[start+j] = float64(j) / float64(runLen-1)
			}
		}
		start = i
	}
	return out
}

// midpoints returns the midpoint between each pair of consecutive
// indices, used as a fallback phase boundary.
func midpoints(idx []int) []int {
	if len(idx) < 2 {
		return nil
	}
	out := make([]int, 0, len(idx)-1)
	for i := 1; i < len(idx); i++ {
		out = append(out, (idx[i-1]+idx[i])/2)
	}
	return out
}
