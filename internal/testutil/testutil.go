// Package testutil provides shared test helpers: approximate numeric
// assertions and synthetic waveform fixtures.
package testutil

import (
	"math"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertInDelta checks that got is within delta of want.
func AssertInDelta(t *testing.T, got, want, delta float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > delta {
		t.Errorf("value = %v, want %v ± %v", got, want, delta)
	}
}

// SyntheticECG builds a deterministic ECG-like waveform: a flat
// baseline with a tall spike ("R peak") every beatInterval samples,
// flanked by smaller negative deflections, plus a low-amplitude
// slow oscillation as baseline wander.
func SyntheticECG(n, beatInterval int) []float64 {
	x := make([]float64, n)
	for i := range x {
		// baseline wander
		x[i] = 0.1 * math.Sin(2*math.Pi*float64(i)/float64(4*beatInterval))
	}
	for p := beatInterval; p < n; p += beatInterval {
		if p-2 >= 0 {
			x[p-2] -= 0.3
		}
		x[p] += 2.0
		if p+2 < n {
			x[p+2] -= 0.4
		}
	}
	return x
}

// SyntheticPeaks returns the R-peak positions SyntheticECG plants.
func SyntheticPeaks(n, beatInterval int) []int {
	var peaks []int
	for p := beatInterval; p < n; p += beatInterval {
		peaks = append(peaks, p)
	}
	return peaks
}
