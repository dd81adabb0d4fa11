package signal

// InfoRecord is the per-run metadata companion to an AlignedTable.
// It is built once per pipeline run and never holds per-sample data:
// event-set index sequences keyed by their semantic name, plus the
// recording's sampling rate.
type InfoRecord struct {
	SamplingRate float64
	Events       map[string][]int
}

// NewInfoRecord creates an empty record for one pipeline run. The
// accumulator is always freshly constructed per run; it is never
// shared across calls.
func NewInfoRecord(samplingRate float64) *InfoRecord {
	return &InfoRecord{
		SamplingRate: samplingRate,
		Events:       make(map[string][]int),
	}
}

// SetEvents stores an event-set index sequence under a semantic key.
func (r *InfoRecord) SetEvents(key string, events EventSet) {
	r.Events[key] = events.Indices()
}
