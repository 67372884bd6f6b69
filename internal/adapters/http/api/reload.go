// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"
)

// ReloadHandler handles dataset reload requests.
type ReloadHandler struct {
	deps Dependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps Dependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

type reloadResponse struct {
	Status     string `json:"status"`
	SnapshotID string `json:"snapshot_id"`
	LoadedAt   string `json:"loaded_at"`
	Rows       int    `json:"rows"`
}

// HandlePostReload handles POST /reload requests. A failed reload keeps the
// previous snapshot active and reports 502.
func (h *ReloadHandler) HandlePostReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_reload"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	snap, err := h.deps.Reload(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "reload_failed", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{
		Status:     "ok",
		SnapshotID: snap.ID,
		LoadedAt:   snap.LoadedAt.Format(time.RFC3339),
		Rows:       len(snap.Rows),
	})
}
