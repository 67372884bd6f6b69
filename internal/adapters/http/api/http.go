// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/paceline/internal/domain/curve"
	"github.com/okian/paceline/internal/domain/histogram"
	"github.com/okian/paceline/internal/domain/leaderboard"
	"github.com/okian/paceline/internal/domain/model"
	"github.com/okian/paceline/internal/domain/normalize"
	"github.com/okian/paceline/internal/domain/stats"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Summary computes aggregate stats over the active snapshot.
	Summary(ctx context.Context) (stats.Summary, *model.Snapshot, error)

	// Events lists the distinct event names, sorted.
	Events(ctx context.Context) ([]string, error)

	// Leaderboard buckets one event into age bands.
	Leaderboard(ctx context.Context, q leaderboard.Query) ([]leaderboard.GroupResult, error)

	// Curve builds the per-gender age-vs-time chart for one event.
	Curve(ctx context.Context, event string, bestOnly bool) (curve.Chart, bool, error)

	// Distribution ranks a custom age window and bins its times.
	Distribution(ctx context.Context, q leaderboard.RangeQuery) ([]leaderboard.RankedEntry, histogram.Histogram, bool, error)

	// Search finds rows by athlete name substring.
	Search(ctx context.Context, query string) ([]model.ResultRecord, []string, error)

	// Reload re-reads the source and swaps the snapshot on success.
	Reload(ctx context.Context) (*model.Snapshot, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	eventsHandler       *EventsHandler
	leaderboardHandler  *LeaderboardHandler
	curveHandler        *CurveHandler
	distributionHandler *DistributionHandler
	searchHandler       *SearchHandler
	reloadHandler       *ReloadHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(deps, statsProvider),
		eventsHandler:       NewEventsHandler(deps),
		leaderboardHandler:  NewLeaderboardHandler(deps),
		curveHandler:        NewCurveHandler(deps),
		distributionHandler: NewDistributionHandler(deps),
		searchHandler:       NewSearchHandler(deps),
		reloadHandler:       NewReloadHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleGetEvents, "events"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/curve", MetricsMiddleware(s.curveHandler.HandleGetCurve, "curve"))
	mux.HandleFunc("/distribution", MetricsMiddleware(s.distributionHandler.HandleGetDistribution, "distribution"))
	mux.HandleFunc("/search", MetricsMiddleware(s.searchHandler.HandleGetSearch, "search"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.reloadHandler.HandlePostReload, "reload"))
}

// entryResponse is one result row in its display form. Raw cell text rides
// along with the normalized renderings so clients can show either.
type entryResponse struct {
	Name          string `json:"name"`
	Gender        string `json:"gender"`
	Age           string `json:"age"`
	Time          string `json:"time"`
	FormattedTime string `json:"formatted_time"`
	Date          string `json:"date"`
	FormattedDate string `json:"formatted_date"`
	Meet          string `json:"meet"`
	Event         string `json:"event"`
}

func newEntryResponse(r model.ResultRecord) entryResponse {
	return entryResponse{
		Name:          r.Name,
		Gender:        r.Gender,
		Age:           r.Age,
		Time:          r.Time,
		FormattedTime: normalize.FormatSeconds(r.Seconds),
		Date:          r.Date,
		FormattedDate: normalize.FormatDate(r.ParsedDate),
		Meet:          r.MeetName,
		Event:         r.EventName(),
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// parseGenderParam maps a query value onto the gender filter.
// Empty and "all" mean no filter; anything else must normalize cleanly.
func parseGenderParam(raw string) (normalize.Gender, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		return normalize.GenderUnknown, true
	}
	g := normalize.ParseGender(trimmed)
	if g == normalize.GenderUnknown {
		return normalize.GenderUnknown, false
	}
	return g, true
}

// parseBoolParam treats an absent value as false and rejects junk.
func parseBoolParam(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false":
		return false, true
	case "1", "true":
		return true, true
	default:
		return false, false
	}
}
