package signal

import "fmt"

// EventSet is a sparse set of sample indices marking discrete
// occurrences (peaks, onsets, offsets). Indices are strictly
// increasing with no duplicates. The dense-mask representation
// produced by Mask is guaranteed to stay consistent with the index
// sequence because both derive from the same validated slice.
type EventSet struct {
	idx []int
}

// NewEventSet validates indices and returns an EventSet. Indices must
// be strictly increasing and within [0, n). A nil or empty slice is a
// valid, empty set.
func NewEventSet(indices []int, n int) (EventSet, error) {
	prev := -1
	for i, v := range indices {
		if v < 0 || v >= n {
			return EventSet{}, fmt.Errorf("event index %d out of range [0, %d)", v, n)
		}
		if v <= prev {
			return EventSet{}, fmt.Errorf("event indices must be strictly increasing: index %d at position %d", v, i)
		}
		prev = v
	}
	cp := make([]int, len(indices))
	copy(cp, indices)
	return EventSet{idx: cp}, nil
}

// EventsFromMask converts a dense binary mask to its sparse form.
// Any non-zero sample counts as a set position.
func EventsFromMask(mask []float64) EventSet {
	var idx []int
	for i, v := range mask {
		if v != 0 {
			idx = append(idx, i)
		}
	}
	return EventSet{idx: idx}
}

// Indices returns a copy of the sorted index sequence.
func (e EventSet) Indices() []int {
	cp := make([]int, len(e.idx))
	copy(cp, e.idx)
	return cp
}

// Mask returns the dense binary representation: a length-n series
// with 1 at each event index and 0 elsewhere.
func (e EventSet) Mask(n int) []float64 {
	mask := make([]float64, n)
	for _, i := range e.idx {
		if i < n {
			mask[i] = 1
		}
	}
	return mask
}

// Len returns the number of events in the set.
func (e EventSet) Len() int { return len(e.idx) }

// At returns the i-th event index.
func (e EventSet) At(i int) int { return e.idx[i] }
