package resultstore

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenAppliesMigrations(t *testing.T) {
	s := openTestStore(t)

	version, dirty, err := s.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if dirty {
		t.Error("schema is dirty after a clean open")
	}
	if version != 1 {
		t.Errorf("schema version = %d, want 1", version)
	}

	// Re-applying on an up-to-date schema is a no-op, not an error.
	if err := s.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp on current schema failed: %v", err)
	}
}

func TestRecordAndGetRun(t *testing.T) {
	s := openTestStore(t)

	meta := RunMeta{
		Source:       "session-042.edf",
		SamplingRate: 250,
		SampleCount:  75000,
		EventCount:   312,
	}
	runID, err := s.RecordRun(meta)
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if runID == "" {
		t.Fatal("RecordRun returned an empty id")
	}

	run, err := s.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.RunID != runID || run.Source != meta.Source ||
		run.SamplingRate != meta.SamplingRate ||
		run.SampleCount != meta.SampleCount ||
		run.EventCount != meta.EventCount {
		t.Errorf("round trip mismatch: %+v vs meta %+v", run, meta)
	}
	if run.CreatedAt.IsZero() {
		t.Error("created_at not populated")
	}
}

func TestGetRunMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetRun("no-such-run"); err == nil {
		t.Fatal("expected error for unknown run id")
	}
}

func TestSummariesRoundTrip(t *testing.T) {
	s := openTestStore(t)

	runID, err := s.RecordRun(RunMeta{Source: "epochs.edf", SamplingRate: 100})
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	first := map[string]float64{"ECG_Rate_Mean": 68, "HRV_MeanNN": 882.4}
	second := map[string]float64{"ECG_Rate_Mean": 71.5, "HRV_MeanNN": 839.2}
	if err := s.RecordSummary(runID, "baseline", first); err != nil {
		t.Fatalf("RecordSummary failed: %v", err)
	}
	if err := s.RecordSummary(runID, "stimulus", second); err != nil {
		t.Fatalf("RecordSummary failed: %v", err)
	}

	got, err := s.ListSummaries(runID)
	if err != nil {
		t.Fatalf("ListSummaries failed: %v", err)
	}
	want := []LabeledSummary{
		{Label: "baseline", Features: first},
		{Label: "stimulus", Features: second},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summaries mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordSummaryRejectsEmptyRow(t *testing.T) {
	s := openTestStore(t)

	runID, err := s.RecordRun(RunMeta{SamplingRate: 100})
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if err := s.RecordSummary(runID, "", nil); err == nil {
		t.Fatal("expected error for a summary with no features")
	}
}

func TestListSummariesEmptyRun(t *testing.T) {
	s := openTestStore(t)

	runID, err := s.RecordRun(RunMeta{SamplingRate: 100})
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	got, err := s.ListSummaries(runID)
	if err != nil {
		t.Fatalf("ListSummaries failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("summaries = %v, want none", got)
	}
}
