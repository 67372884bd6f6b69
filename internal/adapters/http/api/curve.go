// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/paceline/internal/adapters/repository"
	"github.com/okian/paceline/internal/domain/curve"
)

// CurveHandler handles age-vs-time curve requests.
type CurveHandler struct {
	deps Dependencies
}

// NewCurveHandler creates a new curve handler.
func NewCurveHandler(deps Dependencies) *CurveHandler {
	return &CurveHandler{deps: deps}
}

type pointResponse struct {
	Age     float64       `json:"age"`
	Seconds float64       `json:"seconds"`
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	Row     entryResponse `json:"row"`
}

type seriesResponse struct {
	Gender  string          `json:"gender"`
	Points  []pointResponse `json:"points"`
	HasLine bool            `json:"has_line"`
}

type curveResponse struct {
	Event     string         `json:"event"`
	Male      seriesResponse `json:"male"`
	Female    seriesResponse `json:"female"`
	AgeTicks  [3]float64     `json:"age_ticks"`
	TimeTicks [3]string      `json:"time_ticks"`
}

func newSeriesResponse(s curve.Series) seriesResponse {
	out := seriesResponse{
		Gender:  s.Gender.String(),
		Points:  make([]pointResponse, 0, len(s.Points)),
		HasLine: s.HasLine,
	}
	for _, p := range s.Points {
		out.Points = append(out.Points, pointResponse{
			Age:     p.Age,
			Seconds: p.Seconds,
			X:       p.X,
			Y:       p.Y,
			Row:     newEntryResponse(p.Row),
		})
	}
	return out
}

// HandleGetCurve handles GET /curve?event=E&best_only=B requests.
func (h *CurveHandler) HandleGetCurve(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_curve"
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
	bestOnly, ok := parseBoolParam(q.Get("best_only"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	chart, found, err := h.deps.Curve(r.Context(), event, bestOnly)
	if err != nil {
		if errors.Is(err, repository.ErrNoSnapshot) {
			writeError(w, http.StatusServiceUnavailable, "not_loaded", NewKind(op, ErrNotLoaded))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, errors.New("no plottable results for event")))
		return
	}

	writeJSON(w, http.StatusOK, curveResponse{
		Event:     chart.Event,
		Male:      newSeriesResponse(chart.Male),
		Female:    newSeriesResponse(chart.Female),
		AgeTicks:  chart.AgeTicks,
		TimeTicks: chart.TimeTicks,
	})
}
