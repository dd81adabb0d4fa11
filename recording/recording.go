// Package recording loads raw waveform channels from EDF files, the
// common exchange format for physiological recordings.
package recording

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/OpenPSG/edf"
)

// readChunk is the per-call sample buffer for channel reads.
const readChunk = 8192

// ReadChannel decodes every sample of one signal channel from an EDF
// stream, converted to physical units by the channel's calibration.
// The sampling rate is not derivable here; recordings carry it out of
// band and callers pass it to the pipeline explicitly.
func ReadChannel(r io.ReadSeeker, index int) ([]float64, error) {
	er, err := edf.Open(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open EDF stream: %w", err)
	}

	sr, err := er.Signal(index)
	if err != nil {
		return nil, fmt.Errorf("failed to open EDF channel %d: %w", index, err)
	}

	var samples []float64
	buf := make([]float64, readChunk)
	for {
		n, err := sr.Read(buf)
		samples = append(samples, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read EDF channel %d: %w", index, err)
		}
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("EDF channel %d holds no samples", index)
	}
	return samples, nil
}

// ReadChannelFile is ReadChannel over a file on disk.
func ReadChannelFile(path string, index int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open EDF file: %w", err)
	}
	defer f.Close()
	return ReadChannel(f, index)
}
