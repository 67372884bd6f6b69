// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/paceline/internal/adapters/repository"
	"github.com/okian/paceline/internal/domain/leaderboard"
)

// DistributionHandler handles custom age-window ranking requests.
type DistributionHandler struct {
	deps Dependencies
}

// NewDistributionHandler creates a new distribution handler.
func NewDistributionHandler(deps Dependencies) *DistributionHandler {
	return &DistributionHandler{deps: deps}
}

type rankedEntryResponse struct {
	Rank    int    `json:"rank"`
	Ordinal string `json:"ordinal"`
	entryResponse
}

type histogramResponse struct {
	Bins     []int     `json:"bins"`
	BinWidth float64   `json:"bin_width"`
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
	Labels   [3]string `json:"labels"`
}

type distributionResponse struct {
	Event     string                `json:"event"`
	MinAge    float64               `json:"min_age"`
	MaxAge    float64               `json:"max_age"`
	Entries   []rankedEntryResponse `json:"entries"`
	Histogram histogramResponse     `json:"histogram"`
}

// HandleGetDistribution handles
// GET /distribution?event=E&min_age=N&max_age=M&gender=G&best_only=B requests.
func (h *DistributionHandler) HandleGetDistribution(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_distribution"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	event := strings.TrimSpace(q.Get("event"))
	if event == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	minAge, err := strconv.ParseFloat(q.Get("min_age"), 64)
	if err != nil || minAge < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	maxAge, err := strconv.ParseFloat(q.Get("max_age"), 64)
	if err != nil || maxAge < minAge {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	gender, ok := parseGenderParam(q.Get("gender"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	bestOnly, ok := parseBoolParam(q.Get("best_only"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	ranked, hist, found, err := h.deps.Distribution(r.Context(), leaderboard.RangeQuery{
		Event:    event,
		MinAge:   minAge,
		MaxAge:   maxAge,
		Gender:   gender,
		BestOnly: bestOnly,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNoSnapshot) {
			writeError(w, http.StatusServiceUnavailable, "not_loaded", NewKind(op, ErrNotLoaded))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, errors.New("no results in age window")))
		return
	}

	resp := distributionResponse{
		Event:   event,
		MinAge:  minAge,
		MaxAge:  maxAge,
		Entries: make([]rankedEntryResponse, 0, len(ranked)),
		Histogram: histogramResponse{
			Bins:     hist.Bins,
			BinWidth: hist.BinWidth,
			Min:      hist.Min,
			Max:      hist.Max,
			Labels:   hist.Labels,
		},
	}
	for _, e := range ranked {
		resp.Entries = append(resp.Entries, rankedEntryResponse{
			Rank:          e.Rank,
			Ordinal:       e.Ordinal,
			entryResponse: newEntryResponse(e.Row),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
