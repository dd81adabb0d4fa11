// Package hrv computes time-domain heart-rate-variability metrics
// from a sparse event set of beat positions.
package hrv

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/pulse.report/internal/units"
	"github.com/banshee-data/pulse.report/signal"
)

// Metric names emitted by Engine.Metrics. All interval-denominated
// metrics are in milliseconds.
const (
	MetricMeanNN   = "HRV_MeanNN"
	MetricSDNN     = "HRV_SDNN"
	MetricRMSSD    = "HRV_RMSSD"
	MetricSDSD     = "HRV_SDSD"
	MetricCVNN     = "HRV_CVNN"
	MetricMedianNN = "HRV_MedianNN"
	MetricIQRNN    = "HRV_IQRNN"
	MetricPNN50    = "HRV_pNN50"
	MetricPNN20    = "HRV_pNN20"
	MetricMinNN    = "HRV_MinNN"
	MetricMaxNN    = "HRV_MaxNN"
)

// minEvents is the smallest event count with enough successive
// interval differences to support every metric.
const minEvents = 4

// Engine computes the time-domain metric set. The zero value is
// ready to use.
type Engine struct{}

// Metrics returns the named variability metrics for the given beat
// positions. It needs at least four events (three NN intervals).
func (Engine) Metrics(events signal.EventSet, samplingRate float64) (map[string]float64, error) {
	if err := signal.ValidateSamplingRate(samplingRate); err != nil {
		return nil, err
	}
	if events.Len() < minEvents {
		return nil, fmt.Errorf("hrv: need at least %d events, got %d", minEvents, events.Len())
	}

	idx := events.Indices()
	nn := make([]float64, 0, len(idx)-1)
	for i := 1; i < len(idx); i++ {
		nn = append(nn, units.SamplesToMilliseconds(idx[i]-idx[i-1], samplingRate))
	}

	diffs := make([]float64, 0, len(nn)-1)
	for i := 1; i < len(nn); i++ {
		diffs = append(diffs, nn[i]-nn[i-1])
	}

	meanNN := stat.Mean(nn, nil)
	sdNN := stat.StdDev(nn, nil)

	sorted := make([]float64, len(nn))
	copy(sorted, nn)
	sort.Float64s(sorted)

	out := map[string]float64{
		MetricMeanNN:   meanNN,
		MetricSDNN:     sdNN,
		MetricRMSSD:    rootMeanSquare(diffs),
		MetricSDSD:     stat.StdDev(diffs, nil),
		MetricCVNN:     sdNN / meanNN,
		MetricMedianNN: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		MetricIQRNN:    stat.Quantile(0.75, stat.Empirical, sorted, nil) - stat.Quantile(0.25, stat.Empirical, sorted, nil),
		MetricPNN50:    proportionAbove(diffs, 50),
		MetricPNN20:    proportionAbove(diffs, 20),
		MetricMinNN:    floats.Min(sorted),
		MetricMaxNN:    floats.Max(sorted),
	}
	return out, nil
}

// rootMeanSquare of successive differences (RMSSD).
func rootMeanSquare(diffs []float64) float64 {
	sum := 0.0
	for _, d := range diffs {
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(diffs)))
}

// proportionAbove returns the percentage of absolute differences
// exceeding the threshold (e.g. pNN50 at 50 ms).
func proportionAbove(diffs []float64, thresholdMs float64) float64 {
	count := 0
	for _, d := range diffs {
		if d < 0 {
			d = -d
		}
		if d > thresholdMs {
			count++
		}
	}
	return 100 * float64(count) / float64(len(diffs))
}
