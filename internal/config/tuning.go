// Package config loads tuning parameters for the detector stages.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Tuning holds optional overrides for the detector stages. All fields
// are pointers so a partial JSON file only overrides what it names;
// the Get* methods supply defaults for everything else.
type Tuning struct {
	// Cleaner params
	BaselineWindowSec  *float64 `json:"baseline_window_sec,omitempty"`
	SmoothingWindowSec *float64 `json:"smoothing_window_sec,omitempty"`

	// Event detector params
	PeakThresholdFactor *float64 `json:"peak_threshold_factor,omitempty"`
	MinBeatIntervalSec  *float64 `json:"min_beat_interval_sec,omitempty"`
	CorrectArtifacts    *bool    `json:"correct_artifacts,omitempty"`

	// Quality scorer params
	QualityWindowSec *float64 `json:"quality_window_sec,omitempty"`
}

// Defaults, chosen for adult resting ECG at common sampling rates.
const (
	defaultBaselineWindowSec  = 0.60
	defaultSmoothingWindowSec = 0.02
	defaultPeakThreshold      = 0.5
	defaultMinBeatIntervalSec = 0.30
	defaultQualityWindowSec   = 0.75
)

// Load reads a Tuning from a JSON file. Fields omitted from the file
// keep their defaults, so partial configs are safe.
func Load(path string) (*Tuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("tuning file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat tuning file: %w", err)
	}
	const maxFileSize = 1 << 20
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("tuning file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}

	t := &Tuning{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse tuning JSON: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}
	return t, nil
}

// Validate rejects values that would make a detector stage degenerate.
func (t *Tuning) Validate() error {
	checks := []struct {
		name string
		v    *float64
	}{
		{"baseline_window_sec", t.BaselineWindowSec},
		{"smoothing_window_sec", t.SmoothingWindowSec},
		{"peak_threshold_factor", t.PeakThresholdFactor},
		{"min_beat_interval_sec", t.MinBeatIntervalSec},
		{"quality_window_sec", t.QualityWindowSec},
	}
	for _, c := range checks {
		if c.v != nil && *c.v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", c.name, *c.v)
		}
	}
	return nil
}

func (t *Tuning) GetBaselineWindowSec() float64 {
	if t != nil && t.BaselineWindowSec != nil {
		return *t.BaselineWindowSec
	}
	return defaultBaselineWindowSec
}

func (t *Tuning) GetSmoothingWindowSec() float64 {
	if t != nil && t.SmoothingWindowSec != nil {
		return *t.SmoothingWindowSec
	}
	return defaultSmoothingWindowSec
}

func (t *Tuning) GetPeakThresholdFactor() float64 {
	if t != nil && t.PeakThresholdFactor != nil {
		return *t.PeakThresholdFactor
	}
	return defaultPeakThreshold
}

func (t *Tuning) GetMinBeatIntervalSec() float64 {
	if t != nil && t.MinBeatIntervalSec != nil {
		return *t.MinBeatIntervalSec
	}
	return defaultMinBeatIntervalSec
}

func (t *Tuning) GetCorrectArtifacts() bool {
	if t != nil && t.CorrectArtifacts != nil {
		return *t.CorrectArtifacts
	}
	return true
}

func (t *Tuning) GetQualityWindowSec() float64 {
	if t != nil && t.QualityWindowSec != nil {
		return *t.QualityWindowSec
	}
	return defaultQualityWindowSec
}
