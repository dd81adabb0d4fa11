package signal

import (
	"fmt"
	"math"
)

// InvalidInputError reports raw input that cannot enter the pipeline:
// an empty sequence, a sequence with no finite samples, or a
// non-positive sampling rate.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid signal input: %s", e.Reason)
}

// Sanitize validates a raw sample sequence and returns a copy with
// non-finite samples (NaN, ±Inf) removed. It fails if the input is
// empty or contains no finite samples at all.
//
// Sanitize is idempotent: running it on an already-clean sequence
// returns an identical copy.
func Sanitize(raw []float64) ([]float64, error) {
	if len(raw) == 0 {
		return nil, &InvalidInputError{Reason: "empty input"}
	}

	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}

	if len(out) == 0 {
		return nil, &InvalidInputError{Reason: "input contains no finite samples"}
	}
	return out, nil
}

// ValidateSamplingRate checks that a sampling rate is usable. Called
// before any pipeline stage runs.
func ValidateSamplingRate(samplingRate float64) error {
	if samplingRate <= 0 || math.IsNaN(samplingRate) || math.IsInf(samplingRate, 0) {
		return &InvalidInputError{Reason: fmt.Sprintf("sampling rate must be positive, got %v", samplingRate)}
	}
	return nil
}
