// Package units provides shared conversions between the time bases
// used across the pipeline: sample indices, seconds, milliseconds,
// and events per minute.
package units

// MillisecondsPerSecond converts second-denominated intervals to the
// millisecond base used by variability metrics.
const MillisecondsPerSecond = 1000.0

// SecondsPerMinute converts per-second rates to the per-minute base
// used for heart rate.
const SecondsPerMinute = 60.0

// PerMinute converts an inter-event period in seconds to a rate in
// events per minute.
func PerMinute(periodSec float64) float64 {
	return SecondsPerMinute / periodSec
}

// SamplesToMilliseconds converts a sample-count interval to
// milliseconds at the given sampling rate.
func SamplesToMilliseconds(samples int, samplingRate float64) float64 {
	return float64(samples) / samplingRate * MillisecondsPerSecond
}

// SecondsToSamples converts a duration in seconds to a whole sample
// count at the given sampling rate, rounding down but never below 1.
func SecondsToSamples(sec, samplingRate float64) int {
	n := int(sec * samplingRate)
	if n < 1 {
		n = 1
	}
	return n
}
