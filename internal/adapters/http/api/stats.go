// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/okian/paceline/internal/adapters/repository"
	"github.com/okian/paceline/internal/domain/normalize"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	deps          Dependencies
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps Dependencies, statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{deps: deps, statsProvider: statsProvider}
}

type statsResponse struct {
	SnapshotID string `json:"snapshot_id"`
	LoadedAt   string `json:"loaded_at"`
	Total      int    `json:"total"`
	Male       int    `json:"male"`
	Female     int    `json:"female"`
	Meets      int    `json:"meets"`
	Races      int    `json:"races"`
	Earliest   string `json:"earliest"`
	Latest     string `json:"latest"`

	Service map[string]interface{} `json:"service,omitempty"`
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_stats"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	summary, snap, err := h.deps.Summary(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNoSnapshot) {
			writeError(w, http.StatusServiceUnavailable, "not_loaded", NewKind(op, ErrNotLoaded))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	resp := statsResponse{
		SnapshotID: snap.ID,
		LoadedAt:   snap.LoadedAt.Format(time.RFC3339),
		Total:      summary.Total,
		Male:       summary.Male,
		Female:     summary.Female,
		Meets:      summary.Meets,
		Races:      summary.Races,
		Earliest:   normalize.FormatDate(summary.Earliest),
		Latest:     normalize.FormatDate(summary.Latest),
	}
	if h.statsProvider != nil {
		resp.Service = h.statsProvider.GetStats()
	}
	writeJSON(w, http.StatusOK, resp)
}
