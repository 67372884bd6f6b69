// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/paceline/internal/adapters/repository"
	"github.com/okian/paceline/internal/domain/leaderboard"
)

// LeaderboardHandler handles age-group leaderboard requests.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

type groupResponse struct {
	Group   string          `json:"group"`
	MinAge  float64         `json:"min_age"`
	MaxAge  *float64        `json:"max_age"` // null for the open-ended band
	Entries []entryResponse `json:"entries"`
}

type leaderboardResponse struct {
	Event  string          `json:"event"`
	Groups []groupResponse `json:"groups"`
}

// HandleGetLeaderboard handles GET /leaderboard?event=E&gender=G&best_only=B
// requests.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
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

	groups, err := h.deps.Leaderboard(r.Context(), leaderboard.Query{
		Event:    event,
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

	resp := leaderboardResponse{Event: event, Groups: make([]groupResponse, 0, len(groups))}
	for _, g := range groups {
		gr := groupResponse{
			Group:   g.Group.Label,
			MinAge:  g.Group.Min,
			Entries: make([]entryResponse, 0, len(g.Entries)),
		}
		if !g.Group.Open() {
			max := g.Group.Max
			gr.MaxAge = &max
		}
		for _, e := range g.Entries {
			gr.Entries = append(gr.Entries, newEntryResponse(e))
		}
		resp.Groups = append(resp.Groups, gr)
	}
	writeJSON(w, http.StatusOK, resp)
}
