// Package leaderboard buckets event results into age bands and ranks them.
package leaderboard

import (
	"sort"
	"strconv"

	"github.com/okian/paceline/internal/domain/agegroup"
	"github.com/okian/paceline/internal/domain/dedupe"
	"github.com/okian/paceline/internal/domain/model"
	"github.com/okian/paceline/internal/domain/normalize"
)

// DefaultTopPerGroup caps entries per age band unless configured otherwise.
const DefaultTopPerGroup = 3

// Query selects the rows for an age-group leaderboard.
type Query struct {
	// Event is the trimmed event name; required.
	Event string
	// Gender filters to one gender when set to male or female.
	// GenderUnknown means no filter.
	Gender normalize.Gender
	// BestOnly keeps only each athlete's best result.
	BestOnly bool
}

// GroupResult is one age band with its ranked entries. Bands with no
// qualifying rows are still present, with an empty entry list, so callers
// can render an explicit placeholder.
type GroupResult struct {
	Group   agegroup.Group
	Entries []model.ResultRecord
}

// Engine computes age-group leaderboards against a fixed catalog.
type Engine struct {
	catalog agegroup.Catalog
	topN    int
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCatalog overrides the age-band catalog.
func WithCatalog(c agegroup.Catalog) Option {
	return func(e *Engine) {
		if len(c) > 0 {
			e.catalog = c
		}
	}
}

// WithTopPerGroup sets how many entries each band keeps.
func WithTopPerGroup(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topN = n
		}
	}
}

// New creates an Engine with the default catalog and top-3 bands.
func New(opts ...Option) *Engine {
	e := &Engine{
		catalog: agegroup.DefaultCatalog(),
		topN:    DefaultTopPerGroup,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's band catalog.
func (e *Engine) Catalog() agegroup.Catalog {
	return e.catalog
}

// Query buckets the snapshot's event rows into age bands and keeps the top
// entries per band, ascending by time.
func (e *Engine) Query(snap *model.Snapshot, q Query) []GroupResult {
	rows := filter(snap, q)
	if q.BestOnly {
		rows = dedupe.BestPerAthlete(rows)
	}

	buckets := make([][]model.ResultRecord, len(e.catalog))
	for _, r := range rows {
		// First overlapping band in catalog order, and that band only.
		if i, ok := e.catalog.GroupFor(r.AgePoint); ok {
			buckets[i] = append(buckets[i], r)
		}
	}

	out := make([]GroupResult, len(e.catalog))
	for i, g := range e.catalog {
		entries := buckets[i]
		sort.SliceStable(entries, func(a, b int) bool {
			return entries[a].Seconds.Value < entries[b].Seconds.Value
		})
		if len(entries) > e.topN {
			entries = entries[:e.topN]
		}
		out[i] = GroupResult{Group: g, Entries: entries}
	}
	return out
}

// filter keeps rows of the event with a usable age and a finite time,
// optionally restricted to one gender.
func filter(snap *model.Snapshot, q Query) []model.ResultRecord {
	out := make([]model.ResultRecord, 0)
	for _, r := range snap.Rows {
		if r.EventName() != q.Event {
			continue
		}
		if q.Gender != normalize.GenderUnknown && r.ParsedGender != q.Gender {
			continue
		}
		if r.AgePoint.Kind == normalize.AgeNone {
			continue
		}
		if !r.Seconds.Valid {
			continue
		}
		out = append(out, r)
	}
	return out
}

// RangeQuery selects rows for the custom age-window ranking. Only exact
// single-year ages qualify; range records are excluded from this view.
type RangeQuery struct {
	Event  string
	MinAge float64
	MaxAge float64
	// Gender filters when male or female; GenderUnknown means all.
	Gender   normalize.Gender
	BestOnly bool
}

// RankedEntry is one row in a full ranking.
type RankedEntry struct {
	Rank    int
	Ordinal string
	Row     model.ResultRecord
}

// Rank returns the full ascending-by-time ranking for an age window.
func (e *Engine) Rank(snap *model.Snapshot, q RangeQuery) []RankedEntry {
	rows := make([]model.ResultRecord, 0)
	for _, r := range snap.Rows {
		if r.EventName() != q.Event {
			continue
		}
		if r.AgePoint.Kind != normalize.AgeExact {
			continue
		}
		if r.AgePoint.Exact < q.MinAge || r.AgePoint.Exact > q.MaxAge {
			continue
		}
		if q.Gender != normalize.GenderUnknown && r.ParsedGender != q.Gender {
			continue
		}
		if !r.Seconds.Valid {
			continue
		}
		rows = append(rows, r)
	}
	if q.BestOnly {
		rows = dedupe.BestPerAthlete(rows)
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Seconds.Value < rows[b].Seconds.Value
	})

	out := make([]RankedEntry, len(rows))
	for i, r := range rows {
		out[i] = RankedEntry{Rank: i + 1, Ordinal: Ordinal(i + 1), Row: r}
	}
	return out
}

// Ordinal renders 1 -> 1st, 2 -> 2nd, 3 -> 3rd, with the 11th-13th special
// case.
func Ordinal(n int) string {
	s := strconv.Itoa(n)
	if v := n % 100; v >= 11 && v <= 13 {
		return s + "th"
	}
	switch n % 10 {
	case 1:
		return s + "st"
	case 2:
		return s + "nd"
	case 3:
		return s + "rd"
	default:
		return s + "th"
	}
}
