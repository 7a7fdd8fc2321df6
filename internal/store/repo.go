package store

import (
	"context"
	"time"
)

// GenerationEventData captures one generate or adaptive call.
type GenerationEventData struct {
	Command    string
	Grade      int
	Category   string
	Level      int
	Requested  int
	Produced   int
	Collisions int
	Degraded   int
	Failures   int
	Seed       string // empty for unseeded runs
	LatencyMs  int64
}

// GenerationEvent is a stored GenerationEventData with its ordering metadata.
type GenerationEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	GenerationEventData
}

// ScopeSummary aggregates events for one grade/category/level.
type ScopeSummary struct {
	Grade     int
	Category  string
	Level     int
	Calls     int
	Requested int
	Produced  int
}

// Summary aggregates the whole generation log.
type Summary struct {
	Calls        int
	Requested    int
	Produced     int
	Collisions   int
	Degraded     int
	Failures     int
	AvgLatencyMs float64
	LastAt       time.Time // zero when the log is empty
	Scopes       []ScopeSummary
}

// EventRepo provides append and query access to generation events.
type EventRepo interface {
	// AppendGeneration records a generation event.
	AppendGeneration(ctx context.Context, data GenerationEventData) error

	// RecentGenerations returns up to limit events, newest first.
	// A limit <= 0 returns every event.
	RecentGenerations(ctx context.Context, limit int) ([]GenerationEvent, error)

	// Summary aggregates all recorded events.
	Summary(ctx context.Context) (*Summary, error)
}
