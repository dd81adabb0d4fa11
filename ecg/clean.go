package ecg

import (
	"github.com/banshee-data/pulse.report/internal/units"
)

// Cleaner removes baseline wander with a moving-average detrend and
// suppresses high-frequency noise with a short moving-average
// smoothing pass. Output length always equals input length.
type Cleaner struct {
	// BaselineWindowSec is the detrend window; intervals of roughly
	// one beat work well. Zero selects the default.
	BaselineWindowSec float64
	// SmoothingWindowSec is the noise-suppression window. Zero
	// selects the default.
	SmoothingWindowSec float64
}

const (
	defaultBaselineWindowSec  = 0.60
	defaultSmoothingWindowSec = 0.02
)

// Clean implements pipeline.Cleaner.
func (c *Cleaner) Clean(raw []float64, samplingRate float64) ([]float64, error) {
	baselineSec := c.BaselineWindowSec
	if baselineSec <= 0 {
		baselineSec = defaultBaselineWindowSec
	}
	smoothSec := c.SmoothingWindowSec
	if smoothSec <= 0 {
		smoothSec = defaultSmoothingWindowSec
	}

	baseline := movingAverage(raw, units.SecondsToSamples(baselineSec, samplingRate))
	detrended := make([]float64, len(raw))
	for i := range raw {
		detrended[i] = raw[i] - baseline[i]
	}

	return movingAverage(detrended, units.SecondsToSamples(smoothSec, samplingRate)), nil
}

// movingAverage computes a centred moving average with a window of
// size samples. The window shrinks at the edges so the output keeps
// the input length.
func movingAverage(x []float64, size int) []float64 {
	if size < 1 {
		size = 1
	}
	half := size / 2

	// Prefix sums keep the window sum O(1) per sample.
	prefix := make([]float64, len(x)+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}

	out := make([]float64, len(x))
	for i := range x {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi >= len(x) {
			hi = len(x) - 1
		}
		out[i] = (prefix[hi+1] - prefix[lo]) / float64(hi-lo+1)
	}
	return out
}
