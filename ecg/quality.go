package ecg

import (
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/pulse.report/internal/units"
	"github.com/banshee-data/pulse.report/signal"
)

// Scorer rates signal quality per sample by comparing each detected
// beat against the average beat template: a beat that correlates well
// with the template scores near 1, a distorted beat near 0. Per-beat
// scores are interpolated across the full series so every sample
// carries a value.
type Scorer struct {
	// WindowSec is the beat window centred on each event. Zero
	// selects the default.
	WindowSec float64
}

const defaultQualityWindowSec = 0.75

// Score implements pipeline.QualityScorer.
func (s *Scorer) Score(cleaned []float64, events signal.EventSet, samplingRate float64) ([]float64, error) {
	if err := signal.ValidateSamplingRate(samplingRate); err != nil {
		return nil, err
	}
	n := len(cleaned)

	windowSec := s.WindowSec
	if windowSec <= 0 {
		windowSec = defaultQualityWindowSec
	}
	half := units.SecondsToSamples(windowSec, samplingRate) / 2
	if half < 1 {
		half = 1
	}

	// Collect the beats whose full window fits inside the signal.
	var beatIdx []int
	var beats [][]float64
	for _, p := range events.Indices() {
		lo, hi := p-half, p+half
		if lo < 0 || hi >= n {
			continue
		}
		beatIdx = append(beatIdx, p)
		beats = append(beats, cleaned[lo:hi+1])
	}

	// Too few usable beats to build a template: report uniform
	// minimum quality rather than failing the whole run.
	if len(beats) < 2 {
		return make([]float64, n), nil
	}

	template := make([]float64, 2*half+1)
	for _, b := range beats {
		for i, v := range b {
			template[i] += v
		}
	}
	for i := range template {
		template[i] /= float64(len(beats))
	}

	scores := make([]float64, len(beats))
	for i, b := range beats {
		r := stat.Correlation(b, template, nil)
		if r < 0 {
			r = 0
		}
		scores[i] = r
	}

	return signal.Interpolate(beatIdx, scores, n), nil
}
