// Package ecg provides reference implementations of the pipeline
// stage contracts for electrocardiogram signals: cleaning, R-peak
// detection with artifact correction, beat-template quality scoring,
// waveform delineation, and cardiac phase assignment. Process is the
// composition root that wires them into a default pipeline.
package ecg
