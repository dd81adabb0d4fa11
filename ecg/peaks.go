package ecg

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/pulse.report/internal/monitoring"
	"github.com/banshee-data/pulse.report/internal/units"
	"github.com/banshee-data/pulse.report/signal"
)

// Detector locates R peaks as local maxima above an adaptive
// amplitude threshold, separated by a refractory minimum distance.
// With artifact correction enabled, peaks that imply physiologically
// impossible beat intervals are dropped before the event set is
// frozen.
type Detector struct {
	// ThresholdFactor scales the standard deviation added to the
	// signal mean to form the detection threshold. Zero selects the
	// default.
	ThresholdFactor float64
	// MinBeatIntervalSec is the refractory distance between peaks.
	// Zero selects the default.
	MinBeatIntervalSec float64
}

const (
	defaultThresholdFactor    = 0.5
	defaultMinBeatIntervalSec = 0.30

	// Beats closer than this fraction of the median interval are
	// treated as detection artifacts.
	artifactIntervalFraction = 0.4
)

// DetectEvents implements pipeline.EventDetector.
func (d *Detector) DetectEvents(cleaned []float64, samplingRate float64, correctArtifacts bool) (*signal.AlignedTable, signal.EventSet, error) {
	if err := signal.ValidateSamplingRate(samplingRate); err != nil {
		return nil, signal.EventSet{}, err
	}
	n := len(cleaned)
	if n == 0 {
		return nil, signal.EventSet{}, &signal.InvalidInputError{Reason: "empty input"}
	}

	factor := d.ThresholdFactor
	if factor <= 0 {
		factor = defaultThresholdFactor
	}
	minIntervalSec := d.MinBeatIntervalSec
	if minIntervalSec <= 0 {
		minIntervalSec = defaultMinBeatIntervalSec
	}
	minDist := units.SecondsToSamples(minIntervalSec, samplingRate)

	threshold := stat.Mean(cleaned, nil) + factor*stat.StdDev(cleaned, nil)

	peaks := localMaxima(cleaned, threshold, minDist)
	if correctArtifacts {
		corrected := dropArtifactBeats(peaks)
		if removed := len(peaks) - len(corrected); removed > 0 {
			monitoring.Logf("ecg: artifact correction removed %d of %d beats", removed, len(peaks))
		}
		peaks = corrected
	}

	events, err := signal.NewEventSet(peaks, n)
	if err != nil {
		return nil, signal.EventSet{}, fmt.Errorf("peak detection produced invalid events: %w", err)
	}

	masks := signal.NewTable(n)
	masks.Set(ColRPeaks, events.Mask(n))
	return masks, events, nil
}

// localMaxima returns indices of strict local maxima above threshold,
// at least minDist samples apart. When two candidates collide, the
// larger sample wins.
func localMaxima(x []float64, threshold float64, minDist int) []int {
	var peaks []int
	for i := 1; i < len(x)-1; i++ {
		if x[i] <= threshold {
			continue
		}
		if x[i] <= x[i-1] || x[i] < x[i+1] {
			continue
		}
		if len(peaks) > 0 && i-peaks[len(peaks)-1] < minDist {
			if x[i] > x[peaks[len(peaks)-1]] {
				peaks[len(peaks)-1] = i
			}
			continue
		}
		peaks = append(peaks, i)
	}
	return peaks
}

// dropArtifactBeats removes peaks whose interval to the preceding
// kept peak is implausibly short relative to the median interval.
func dropArtifactBeats(peaks []int) []int {
	if len(peaks) < 3 {
		return peaks
	}

	intervals := make([]float64, 0, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		intervals = append(intervals, float64(peaks[i]-peaks[i-1]))
	}
	sort.Float64s(intervals)
	median := stat.Quantile(0.5, stat.Empirical, intervals, nil)
	floor := artifactIntervalFraction * median

	kept := peaks[:1]
	for i := 1; i < len(peaks); i++ {
		if float64(peaks[i]-kept[len(kept)-1]) < floor {
			continue
		}
		kept = append(kept, peaks[i])
	}
	return kept
}
