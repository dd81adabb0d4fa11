package ecg

import (
	"github.com/banshee-data/pulse.report/internal/config"
	"github.com/banshee-data/pulse.report/pipeline"
	"github.com/banshee-data/pulse.report/signal"
)

// rateEstimator adapts signal.Rate to the pipeline stage contract.
type rateEstimator struct{}

func (rateEstimator) Rate(events signal.EventSet, samplingRate float64, desiredLength int) ([]float64, error) {
	return signal.Rate(events, samplingRate, desiredLength)
}

// NewConfig assembles the default ECG pipeline: moving-average
// cleaning, adaptive-threshold R-peak detection with artifact
// correction, interpolated rate, beat-template quality, window-extrema
// delineation, and phase assignment. tuning may be nil for defaults.
func NewConfig(samplingRate float64, tuning *config.Tuning) *pipeline.Config {
	return &pipeline.Config{
		SamplingRate: samplingRate,
		Cleaner: &Cleaner{
			BaselineWindowSec:  tuning.GetBaselineWindowSec(),
			SmoothingWindowSec: tuning.GetSmoothingWindowSec(),
		},
		Detector: &Detector{
			ThresholdFactor:    tuning.GetPeakThresholdFactor(),
			MinBeatIntervalSec: tuning.GetMinBeatIntervalSec(),
		},
		Estimator: rateEstimator{},
		Scorer: &Scorer{
			WindowSec: tuning.GetQualityWindowSec(),
		},
		Delineate:        Delineator{},
		Phase:            PhaseAssigner{},
		CorrectArtifacts: tuning.GetCorrectArtifacts(),

		RawColumn:     ColRaw,
		CleanColumn:   ColClean,
		RateColumn:    ColRate,
		QualityColumn: ColQuality,
		EventsKey:     ColRPeaks,
	}
}

// Process runs the default ECG pipeline over a raw signal and returns
// the aligned per-sample table and the run's metadata record. tuning
// may be nil for defaults.
func Process(raw []float64, samplingRate float64, tuning *config.Tuning) (*signal.AlignedTable, *signal.InfoRecord, error) {
	return NewConfig(samplingRate, tuning).Run(raw)
}
