// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/okian/paceline/internal/adapters/repository"
)

// EventsHandler handles event catalog requests.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

type eventsResponse struct {
	Events []string `json:"events"`
}

// HandleGetEvents handles GET /events requests.
func (h *EventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_events"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	events, err := h.deps.Events(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNoSnapshot) {
			writeError(w, http.StatusServiceUnavailable, "not_loaded", NewKind(op, ErrNotLoaded))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if events == nil {
		events = []string{}
	}
	writeJSON(w, http.StatusOK, eventsResponse{Events: events})
}
