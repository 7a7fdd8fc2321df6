package store

// Generation events share one global sequence so the log has a strict
// append order even when timestamps collide.

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// timestampLayout is fixed-width so MAX(timestamp) orders correctly.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// sequenceCounter hands out the monotonic sequence numbers stamped on events.
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo with raw SQL.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendGeneration(ctx context.Context, data GenerationEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO generation_events
		(sequence, timestamp, command, grade, category, level, requested, produced,
		 collisions, degraded, failures, seed, latency_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, time.Now().UTC().Format(timestampLayout), data.Command,
		data.Grade, data.Category, data.Level, data.Requested, data.Produced,
		data.Collisions, data.Degraded, data.Failures, data.Seed, data.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("append generation event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentGenerations(ctx context.Context, limit int) ([]GenerationEvent, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, timestamp, command, grade,
		category, level, requested, produced, collisions, degraded, failures, seed, latency_ms
		FROM generation_events ORDER BY sequence DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query generation events: %w", err)
	}
	defer rows.Close()

	var events []GenerationEvent
	for rows.Next() {
		var (
			e  GenerationEvent
			ts string
		)
		err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.Command, &e.Grade,
			&e.Category, &e.Level, &e.Requested, &e.Produced, &e.Collisions,
			&e.Degraded, &e.Failures, &e.Seed, &e.LatencyMs)
		if err != nil {
			return nil, fmt.Errorf("scan generation event: %w", err)
		}
		if e.Timestamp, err = time.Parse(timestampLayout, ts); err != nil {
			return nil, fmt.Errorf("parse event timestamp %q: %w", ts, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) Summary(ctx context.Context) (*Summary, error) {
	var (
		s      Summary
		avg    sql.NullFloat64
		lastAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*),
		COALESCE(SUM(requested), 0), COALESCE(SUM(produced), 0),
		COALESCE(SUM(collisions), 0), COALESCE(SUM(degraded), 0),
		COALESCE(SUM(failures), 0), AVG(latency_ms), MAX(timestamp)
		FROM generation_events`,
	).Scan(&s.Calls, &s.Requested, &s.Produced, &s.Collisions, &s.Degraded,
		&s.Failures, &avg, &lastAt)
	if err != nil {
		return nil, fmt.Errorf("summarize generation events: %w", err)
	}
	s.AvgLatencyMs = avg.Float64
	if lastAt.Valid {
		if s.LastAt, err = time.Parse(timestampLayout, lastAt.String); err != nil {
			return nil, fmt.Errorf("parse event timestamp %q: %w", lastAt.String, err)
		}
	}

	rows, err := r.db.QueryContext(ctx, `SELECT grade, category, level, COUNT(*),
		SUM(requested), SUM(produced)
		FROM generation_events
		GROUP BY grade, category, level
		ORDER BY grade, category, level`)
	if err != nil {
		return nil, fmt.Errorf("summarize generation scopes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc ScopeSummary
		if err := rows.Scan(&sc.Grade, &sc.Category, &sc.Level, &sc.Calls, &sc.Requested, &sc.Produced); err != nil {
			return nil, fmt.Errorf("scan scope summary: %w", err)
		}
		s.Scopes = append(s.Scopes, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}
