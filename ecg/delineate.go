package ecg

import (
	"github.com/banshee-data/pulse.report/internal/units"
	"github.com/banshee-data/pulse.report/signal"
)

// Delineator locates the remaining waveform components around each R
// peak using window extrema: Q and S as the troughs immediately
// before and after the R peak, P and T as the crests in the atrial
// and repolarisation windows, plus the onset and offset troughs
// bounding the P wave, the QRS complex, and the T wave. Search
// windows are fixed fractions of a second scaled by the sampling
// rate. Adjacent windows overlap, so neighbouring boundaries (a P
// offset and the QRS onset, say) can elect the same trough.
type Delineator struct{}

// Search windows relative to the R peak, in seconds.
const (
	qrsHalfWidthSec = 0.05
	pWindowSec      = 0.25
	tWindowSec      = 0.40
	boundWindowSec  = 0.10
)

// Delineate implements pipeline.Delineator.
func (Delineator) Delineate(cleaned []float64, events signal.EventSet, samplingRate float64) (*signal.AlignedTable, map[string][]int, error) {
	if err := signal.ValidateSamplingRate(samplingRate); err != nil {
		return nil, nil, err
	}
	n := len(cleaned)

	qrsHalf := units.SecondsToSamples(qrsHalfWidthSec, samplingRate)
	pWin := units.SecondsToSamples(pWindowSec, samplingRate)
	tWin := units.SecondsToSamples(tWindowSec, samplingRate)
	boundWin := units.SecondsToSamples(boundWindowSec, samplingRate)

	var pPeaks, qPeaks, sPeaks, tPeaks []int
	var pOnsets, pOffsets, rOnsets, rOffsets, tOnsets, tOffsets []int
	for _, r := range events.Indices() {
		if q, ok := argMin(cleaned, r-qrsHalf, r); ok {
			qPeaks = append(qPeaks, q)
			if on, ok := argMin(cleaned, q-boundWin, q); ok {
				rOnsets = append(rOnsets, on)
			}
		}
		if s, ok := argMin(cleaned, r+1, r+qrsHalf+1); ok {
			sPeaks = append(sPeaks, s)
			if off, ok := argMin(cleaned, s+1, s+boundWin+1); ok {
				rOffsets = append(rOffsets, off)
			}
		}
		if p, ok := argMax(cleaned, r-pWin, r-qrsHalf); ok {
			pPeaks = append(pPeaks, p)
			if on, ok := argMin(cleaned, p-boundWin, p); ok {
				pOnsets = append(pOnsets, on)
			}
			if off, ok := argMin(cleaned, p+1, p+boundWin+1); ok {
				pOffsets = append(pOffsets, off)
			}
		}
		if t, ok := argMax(cleaned, r+qrsHalf+1, r+tWin+1); ok {
			tPeaks = append(tPeaks, t)
			if on, ok := argMin(cleaned, t-boundWin, t); ok {
				tOnsets = append(tOnsets, on)
			}
			if off, ok := argMin(cleaned, t+1, t+boundWin+1); ok {
				tOffsets = append(tOffsets, off)
			}
		}
	}

	boundaries := map[string][]int{
		ColPPeaks:   dedupSorted(pPeaks),
		ColQPeaks:   dedupSorted(qPeaks),
		ColSPeaks:   dedupSorted(sPeaks),
		ColTPeaks:   dedupSorted(tPeaks),
		ColPOnsets:  dedupSorted(pOnsets),
		ColPOffsets: dedupSorted(pOffsets),
		ColROnsets:  dedupSorted(rOnsets),
		ColROffsets: dedupSorted(rOffsets),
		ColTOnsets:  dedupSorted(tOnsets),
		ColTOffsets: dedupSorted(tOffsets),
	}

	masks := signal.NewTable(n)
	for _, name := range []string{
		ColPPeaks, ColQPeaks, ColSPeaks, ColTPeaks,
		ColPOnsets, ColPOffsets, ColROnsets, ColROffsets, ColTOnsets, ColTOffsets,
	} {
		set, err := signal.NewEventSet(boundaries[name], n)
		if err != nil {
			return nil, nil, err
		}
		masks.Set(name, set.Mask(n))
	}
	return masks, boundaries, nil
}

// argMin returns the index of the minimum sample in [lo, hi), clipped
// to the series bounds. ok is false when the clipped window is empty.
func argMin(x []float64, lo, hi int) (int, bool) {
	lo, hi = clipWindow(len(x), lo, hi)
	if lo >= hi {
		return 0, false
	}
	best := lo
	for i := lo + 1; i < hi; i++ {
		if x[i] < x[best] {
			best = i
		}
	}
	return best, true
}

// argMax returns the index of the maximum sample in [lo, hi), clipped
// to the series bounds. ok is false when the clipped window is empty.
func argMax(x []float64, lo, hi int) (int, bool) {
	lo, hi = clipWindow(len(x), lo, hi)
	if lo >= hi {
		return 0, false
	}
	best := lo
	for i := lo + 1; i < hi; i++ {
		if x[i] > x[best] {
			best = i
		}
	}
	return best, true
}

func clipWindow(n, lo, hi int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}

// dedupSorted drops duplicate and out-of-order indices. Per-beat
// windows advance monotonically, but overlapping windows can elect
// the same boundary sample twice or step backwards by one.
func dedupSorted(idx []int) []int {
	out := idx[:0]
	prev := -1
	for _, v := range idx {
		if v == prev {
			continue
		}
		if v < prev {
			// Overlapping beat windows can step backwards; keep the
			// first occurrence to preserve strict ordering.
			continue
		}
		out = append(out, v)
		prev = v
	}
	return out
}
