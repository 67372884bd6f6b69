// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/paceline/internal/adapters/repository"
)

// SearchHandler handles athlete name search requests.
type SearchHandler struct {
	deps Dependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps Dependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

type searchResponse struct {
	Query   string              `json:"query"`
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
	Total   int                 `json:"total"`
}

// HandleGetSearch handles GET /search?q=NAME requests. Rows come back as
// header-keyed maps in the source column order so clients can rebuild the
// original table.
func (h *SearchHandler) HandleGetSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_search"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	rows, headers, err := h.deps.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, repository.ErrNoSnapshot) {
			writeError(w, http.StatusServiceUnavailable, "not_loaded", NewKind(op, ErrNotLoaded))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	resp := searchResponse{
		Query:   query,
		Headers: headers,
		Rows:    make([]map[string]string, 0, len(rows)),
		Total:   len(rows),
	}
	for _, row := range rows {
		cells := make(map[string]string, len(headers))
		for _, header := range headers {
			cells[header] = row.Field(header)
		}
		resp.Rows = append(resp.Rows, cells)
	}
	writeJSON(w, http.StatusOK, resp)
}
