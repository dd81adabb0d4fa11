// Package resultstore persists pipeline runs and interval summary
// rows to a local SQLite database.
package resultstore

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/pulse.report/internal/monitoring"
	"github.com/banshee-data/pulse.report/internal/version"
)

// Store wraps the SQLite connection. Schema versioning is managed by
// embedded migrations applied at Open time.
type Store struct {
	*sql.DB
}

// RunMeta describes one processed recording.
type RunMeta struct {
	Source       string
	SamplingRate float64
	SampleCount  int
	EventCount   int
}

// Run is a stored run row.
type Run struct {
	RunID        string
	Source       string
	SamplingRate float64
	SampleCount  int
	EventCount   int
	CreatedAt    time.Time
}

// LabeledSummary is one stored summary row: a label (empty for
// single-record reductions) and its feature map.
type LabeledSummary struct {
	Label    string
	Features map[string]float64
}

// Open opens (creating if needed) the database at path and applies
// any pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results database: %w", err)
	}
	s := &Store{db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	monitoring.Logf("resultstore: opened %s (pulse.report %s)", path, version.Version)
	return s, nil
}

// RecordRun inserts a run row and returns its generated id.
func (s *Store) RecordRun(meta RunMeta) (string, error) {
	runID := uuid.NewString()
	_, err := s.Exec(
		`INSERT INTO runs (run_id, source, sampling_rate, sample_count, event_count) VALUES (?, ?, ?, ?, ?)`,
		runID, meta.Source, meta.SamplingRate, meta.SampleCount, meta.EventCount,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return runID, nil
}

// GetRun loads one run row by id.
func (s *Store) GetRun(runID string) (*Run, error) {
	var r Run
	err := s.QueryRow(
		`SELECT run_id, source, sampling_rate, sample_count, event_count, created_at FROM runs WHERE run_id = ?`,
		runID,
	).Scan(&r.RunID, &r.Source, &r.SamplingRate, &r.SampleCount, &r.EventCount, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	return &r, nil
}

// RecordSummary stores one summary row under a run and label. All
// features land in a single transaction, in deterministic name order.
func (s *Store) RecordSummary(runID, label string, features map[string]float64) error {
	if len(features) == 0 {
		return fmt.Errorf("summary for run %s label %q has no features", runID, label)
	}

	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)

	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin summary transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO summaries (run_id, label, feature, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare summary insert: %w", err)
	}
	defer stmt.Close()

	for _, name := range names {
		if _, err := stmt.Exec(runID, label, name, features[name]); err != nil {
			return fmt.Errorf("failed to insert feature %q: %w", name, err)
		}
	}
	return tx.Commit()
}

// ListSummaries loads every summary row for a run, grouped by label,
// labels in first-seen insertion order.
func (s *Store) ListSummaries(runID string) ([]LabeledSummary, error) {
	rows, err := s.Query(
		`SELECT label, feature, value FROM summaries WHERE run_id = ? ORDER BY summary_id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries for run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []LabeledSummary
	byLabel := make(map[string]int)
	for rows.Next() {
		var label, feature string
		var value float64
		if err := rows.Scan(&label, &feature, &value); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		i, ok := byLabel[label]
		if !ok {
			i = len(out)
			byLabel[label] = i
			out = append(out, LabeledSummary{Label: label, Features: make(map[string]float64)})
		}
		out[i].Features[feature] = value
	}
	return out, rows.Err()
}
