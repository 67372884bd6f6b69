// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/okian/paceline/internal/adapters/repository"
	"github.com/okian/paceline/internal/adapters/source"
	"github.com/okian/paceline/internal/domain/agegroup"
	"github.com/okian/paceline/internal/domain/curve"
	"github.com/okian/paceline/internal/domain/histogram"
	"github.com/okian/paceline/internal/domain/leaderboard"
	"github.com/okian/paceline/internal/domain/model"
	"github.com/okian/paceline/internal/domain/normalize"
	"github.com/okian/paceline/internal/domain/search"
	"github.com/okian/paceline/internal/domain/stats"
	"github.com/okian/paceline/pkg/logger"
	"github.com/okian/paceline/pkg/metrics"
)

// Service implements the API dependencies for the analytics system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	loader *source.Loader
	engine *leaderboard.Engine

	// Configuration
	dataPath       string
	dataURL        string
	topPerGroup    int
	maxSearchLimit int
	minBins        int
	maxBins        int
	yearPivot      int
	catalog        agegroup.Catalog
	httpClient     *http.Client

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataPath sets the local CSV path.
func WithDataPath(path string) Option {
	return func(s *Service) {
		s.dataPath = path
	}
}

// WithDataURL sets the CSV URL; takes precedence over the local path.
func WithDataURL(url string) Option {
	return func(s *Service) {
		s.dataURL = url
	}
}

// WithTopPerGroup sets how many entries each age band keeps.
func WithTopPerGroup(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topPerGroup = n
		}
	}
}

// WithMaxSearchLimit caps search results.
func WithMaxSearchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSearchLimit = n
		}
	}
}

// WithBinBounds sets the histogram bin-count bounds.
func WithBinBounds(minBins, maxBins int) Option {
	return func(s *Service) {
		if minBins > 0 && maxBins >= minBins {
			s.minBins = minBins
			s.maxBins = maxBins
		}
	}
}

// WithYearPivot sets the two-digit-year pivot.
func WithYearPivot(pivot int) Option {
	return func(s *Service) {
		if pivot >= 0 && pivot <= 99 {
			s.yearPivot = pivot
		}
	}
}

// WithCatalog overrides the age-band catalog.
func WithCatalog(c agegroup.Catalog) Option {
	return func(s *Service) {
		if len(c) > 0 {
			s.catalog = c
		}
	}
}

// WithHTTPClient overrides the client used for URL loads.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		topPerGroup:    leaderboard.DefaultTopPerGroup,
		maxSearchLimit: 5000,
		minBins:        histogram.DefaultMinBins,
		maxBins:        histogram.DefaultMaxBins,
		yearPivot:      normalize.DefaultYearPivot,
		catalog:        agegroup.DefaultCatalog(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the components and attempts the first load. A failed
// first load is not fatal: the service starts empty and a later Reload can
// resolve it.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting analytics service...")

	s.store = repository.NewSnapshotStore()
	s.engine = leaderboard.New(
		leaderboard.WithCatalog(s.catalog),
		leaderboard.WithTopPerGroup(s.topPerGroup),
	)

	srcOpts := []source.Option{
		source.WithPath(s.dataPath),
		source.WithYearPivot(s.yearPivot),
	}
	if s.dataURL != "" {
		srcOpts = append(srcOpts, source.WithURL(s.dataURL))
	}
	if s.httpClient != nil {
		srcOpts = append(srcOpts, source.WithHTTPClient(s.httpClient))
	}
	s.loader = source.New(srcOpts...)

	if _, err := s.load(ctx); err != nil {
		s.logger.Warn(ctx, "initial load failed; serving empty until reload",
			logger.Error(err),
		)
	}

	s.started = true
	s.logger.Info(ctx, "analytics service started",
		logger.Int("topPerGroup", s.topPerGroup),
		logger.Int("yearPivot", s.yearPivot),
	)
	return nil
}

// Stop shuts the service down. The service holds no background work; this
// exists for symmetry with the caller's lifecycle.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

// load runs one all-or-nothing load and swaps the snapshot on success.
func (s *Service) load(ctx context.Context) (*model.Snapshot, error) {
	start := time.Now()
	snap, err := s.loader.Load(ctx)
	if err != nil {
		metrics.RecordLoadFailure()
		return nil, err
	}

	s.store.Swap(ctx, snap)

	summary := stats.Compute(snap.Rows)
	metrics.RecordLoad(float64(time.Since(start).Milliseconds()))
	metrics.UpdateDataset(summary.Total, summary.Meets, summary.Races, len(snap.Events))
	metrics.UpdateDatasetLoadedAt(snap.LoadedAt.Unix())

	s.logger.Info(ctx, "snapshot loaded",
		logger.String("snapshotID", snap.ID),
		logger.Int("rows", summary.Total),
		logger.Int("meets", summary.Meets),
		logger.Int("races", summary.Races),
		logger.Duration("took", time.Since(start)),
	)
	return snap, nil
}

// Reload re-runs the load. On failure the previous snapshot stays active.
func (s *Service) Reload(ctx context.Context) (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Snapshot returns the active snapshot.
func (s *Service) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	return s.store.Current(ctx)
}

// Summary computes the aggregate stats of the active snapshot.
func (s *Service) Summary(ctx context.Context) (stats.Summary, *model.Snapshot, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return stats.Summary{}, nil, err
	}
	defer record("stats")()
	return stats.Compute(snap.Rows), snap, nil
}

// Events returns the distinct event names of the active snapshot.
func (s *Service) Events(ctx context.Context) ([]string, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	defer record("events")()
	return snap.Events, nil
}

// Leaderboard computes the age-group leaderboard for a query.
func (s *Service) Leaderboard(ctx context.Context, q leaderboard.Query) ([]leaderboard.GroupResult, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	defer record("leaderboard")()
	return s.engine.Query(snap, q), nil
}

// Curve computes the event age-vs-time curve. ok is false when no row
// qualifies.
func (s *Service) Curve(ctx context.Context, event string, bestOnly bool) (curve.Chart, bool, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return curve.Chart{}, false, err
	}
	defer record("curve")()
	c, ok := curve.Build(snap, event, bestOnly)
	return c, ok, nil
}

// Distribution ranks an age window and bins its times. ok is false when no
// row qualifies.
func (s *Service) Distribution(ctx context.Context, q leaderboard.RangeQuery) ([]leaderboard.RankedEntry, histogram.Histogram, bool, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return nil, histogram.Histogram{}, false, err
	}
	defer record("distribution")()

	ranked := s.engine.Rank(snap, q)
	times := make([]float64, 0, len(ranked))
	for _, e := range ranked {
		times = append(times, e.Row.Seconds.Value)
	}
	h, ok := histogram.Bin(times, s.minBins, s.maxBins)
	return ranked, h, ok, nil
}

// Search finds rows by athlete name; headers come along for tabular display.
func (s *Service) Search(ctx context.Context, query string) ([]model.ResultRecord, []string, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer record("search")()
	return search.ByName(snap, query, s.maxSearchLimit), snap.Headers, nil
}

// GetStats returns service-level numbers for the metrics updater.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	store := s.store
	s.mu.RUnlock()

	out := map[string]interface{}{
		"started": started,
		"rows":    0,
		"events":  0,
	}
	if store == nil {
		return out
	}
	snap, err := store.Current(context.Background())
	if err == nil {
		out["rows"] = len(snap.Rows)
		out["events"] = len(snap.Events)
		out["snapshotID"] = snap.ID
	}
	return out
}

// record times one analytics query for the metrics manager.
func record(view string) func() {
	start := time.Now()
	return func() {
		metrics.RecordQuery(view, float64(time.Since(start).Nanoseconds())/1e6)
	}
}
