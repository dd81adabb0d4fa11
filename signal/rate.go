package signal

import (
	"fmt"

	"github.com/banshee-data/pulse.report/internal/units"
)

// Rate estimates the instantaneous event rate (events per minute) at
// every sample position. The rate at each event is derived from the
// interval to the previous event; the first event inherits the second
// event's value. Between events the rate is linearly interpolated,
// and before the first / after the last event it is held constant, so
// the estimator always produces a value for every one of the
// desiredLength samples.
//
// At least two events are required to define an interval.
func Rate(events EventSet, samplingRate float64, desiredLength int) ([]float64, error) {
	if err := ValidateSamplingRate(samplingRate); err != nil {
		return nil, err
	}
	if events.Len() < 2 {
		return nil, &InvalidInputError{
			Reason: fmt.Sprintf("rate estimation needs at least 2 events, got %d", events.Len()),
		}
	}
	if desiredLength <= 0 {
		return nil, &InvalidInputError{
			Reason: fmt.Sprintf("desired length must be positive, got %d", desiredLength),
		}
	}

	idx := events.Indices()
	rates := make([]float64, len(idx))
	for i := 1; i < len(idx); i++ {
		periodSec := float64(idx[i]-idx[i-1]) / samplingRate
		rates[i] = units.PerMinute(periodSec)
	}
	rates[0] = rates[1]

	return Interpolate(idx, rates, desiredLength), nil
}

// Interpolate spreads sparse values at sample positions xs across a
// series of length n: linear between positions, constant edge fill
// outside [xs[0], xs[len-1]]. xs must be strictly increasing and
// non-empty; ys must be the same length as xs.
func Interpolate(xs []int, ys []float64, n int) []float64 {
	out := make([]float64, n)
	if len(xs) == 0 {
		return out
	}

	seg := 0
	for i := 0; i < n; i++ {
		switch {
		case i <= xs[0]:
			out[i] = ys[0]
		case i >= xs[len(xs)-1]:
			out[i] = ys[len(ys)-1]
		default:
			for seg+1 < len(xs) && xs[seg+1] < i {
				seg++
			}
			x0, x1 := xs[seg], xs[seg+1]
			y0, y1 := ys[seg], ys[seg+1]
			out[i] = y0 + (y1-y0)*float64(i-x0)/float64(x1-x0)
		}
	}
	return out
}
