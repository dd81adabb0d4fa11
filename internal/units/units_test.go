package units

import "testing"

func TestPerMinute(t *testing.T) {
	if got := PerMinute(1); got != 60 {
		t.Errorf("PerMinute(1) = %v, want 60", got)
	}
	if got := PerMinute(0.5); got != 120 {
		t.Errorf("PerMinute(0.5) = %v, want 120", got)
	}
}

func TestSamplesToMilliseconds(t *testing.T) {
	if got := SamplesToMilliseconds(100, 100); got != 1000 {
		t.Errorf("SamplesToMilliseconds(100, 100) = %v, want 1000", got)
	}
	if got := SamplesToMilliseconds(128, 256); got != 500 {
		t.Errorf("SamplesToMilliseconds(128, 256) = %v, want 500", got)
	}
}

func TestSecondsToSamples(t *testing.T) {
	if got := SecondsToSamples(0.75, 100); got != 75 {
		t.Errorf("SecondsToSamples(0.75, 100) = %v, want 75", got)
	}
	// Tiny windows clamp to one sample rather than zero.
	if got := SecondsToSamples(0.001, 100); got != 1 {
		t.Errorf("SecondsToSamples(0.001, 100) = %v, want 1", got)
	}
}
