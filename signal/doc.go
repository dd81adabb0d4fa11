// Package signal provides the shared data model for the processing
// pipeline: validated sample sequences, sparse event sets with a
// consistent dense-mask representation, aligned column tables, and
// per-sample rate estimation from event positions.
//
// All values are immutable by convention: functions return freshly
// allocated slices and never modify their inputs.
package signal
