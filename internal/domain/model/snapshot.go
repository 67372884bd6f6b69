package model

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/paceline/internal/domain/normalize"
)

// Snapshot is one immutable loaded row set. Every analytic call reads a
// Snapshot value; nothing mutates it after construction.
type Snapshot struct {
	// ID identifies this load for logging and the stats endpoint.
	ID string

	// LoadedAt is when the snapshot was built.
	LoadedAt time.Time

	// Headers preserves the source column order for tabular display.
	Headers []string

	// Rows are the normalized result records.
	Rows []ResultRecord

	// Events are the distinct trimmed non-empty event names, sorted.
	Events []string
}

// SnapshotOption applies a configuration option to a snapshot build.
type SnapshotOption func(*snapshotConfig)

type snapshotConfig struct {
	yearPivot int
	now       func() time.Time
}

// WithYearPivot overrides the two-digit-year pivot used while normalizing.
func WithYearPivot(pivot int) SnapshotOption {
	return func(c *snapshotConfig) {
		if pivot >= 0 && pivot <= 99 {
			c.yearPivot = pivot
		}
	}
}

// WithClock overrides the snapshot timestamp source.
func WithClock(now func() time.Time) SnapshotOption {
	return func(c *snapshotConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewSnapshot normalizes raw rows into an immutable snapshot.
func NewSnapshot(headers []string, raw []map[string]string, opts ...SnapshotOption) *Snapshot {
	cfg := snapshotConfig{
		yearPivot: normalize.DefaultYearPivot,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	rows := make([]ResultRecord, 0, len(raw))
	eventSet := make(map[string]struct{})
	for _, m := range raw {
		r := NewResultRecord(m, cfg.yearPivot)
		rows = append(rows, r)
		if ev := r.EventName(); ev != "" {
			eventSet[ev] = struct{}{}
		}
	}

	events := make([]string, 0, len(eventSet))
	for ev := range eventSet {
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool {
		return strings.ToLower(events[i]) < strings.ToLower(events[j])
	})

	return &Snapshot{
		ID:       uuid.NewString(),
		LoadedAt: cfg.now(),
		Headers:  append([]string(nil), headers...),
		Rows:     rows,
		Events:   events,
	}
}

// EventRows returns the rows whose trimmed event name equals event.
func (s *Snapshot) EventRows(event string) []ResultRecord {
	out := make([]ResultRecord, 0)
	for _, r := range s.Rows {
		if r.EventName() == event {
			out = append(out, r)
		}
	}
	return out
}
