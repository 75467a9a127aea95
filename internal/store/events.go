package store

import (
	"context"
	"fmt"

	"github.com/attestkit/attest/internal/adapter"
)

// EventRecord is one stored per-test event.
type EventRecord struct {
	RunID          string
	Suite          string
	Selector       string
	Status         string
	Detail         string
	DurationMillis int64
}

// WriteEvent inserts one event row for a run. Events are keyed by
// (run, suite, selector); duplicate writes for the same key are
// silently ignored, matching the event set's dedup identity.
func (s *Store) WriteEvent(ctx context.Context, runID string, ev adapter.Event) error {
	detail := ""
	if ev.Detail != nil {
		detail = ev.Detail.Error()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (run_id, suite, selector, status, detail, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, suite, selector) DO NOTHING
	`, runID, ev.FullyQualifiedName, ev.Selector, string(ev.Status), detail, ev.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// RunEvents returns the stored events for a run, ordered by suite then
// selector for deterministic listing. Stored events carry no traversal
// order: the event projection is order-insensitive by contract.
func (s *Store) RunEvents(ctx context.Context, runID string) ([]EventRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, suite, selector, status, detail, duration_ms
		FROM events
		WHERE run_id = ?
		ORDER BY suite ASC, selector ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var e EventRecord
		if err := rows.Scan(&e.RunID, &e.Suite, &e.Selector, &e.Status, &e.Detail, &e.DurationMillis); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}
