package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/habitloop/internal/model"
	"github.com/sakif/habitloop/internal/service"
)

// CheckinManager is the slice of the check-in service the handler needs.
type CheckinManager interface {
	Set(ctx context.Context, dayKey, habitID string, done bool) (*service.Checkin, error)
	Toggle(ctx context.Context, dayKey, habitID string) (*service.Checkin, error)
	Day(ctx context.Context, dayKey string) (model.DayRecord, error)
}

// CheckinHandler serves the completion ledger.
type CheckinHandler struct {
	checkins CheckinManager
	logger   *slog.Logger
}

// NewCheckinHandler creates a CheckinHandler.
func NewCheckinHandler(checkins CheckinManager, logger *slog.Logger) *CheckinHandler {
	return &CheckinHandler{checkins: checkins, logger: logger}
}

// Routes mounts the ledger endpoints on r. {day} is a YYYY-MM-DD key.
//
//	GET  /checkins/{day}
//	PUT  /checkins/{day}/{habitID}          body {"done": bool}
//	POST /checkins/{day}/{habitID}/toggle
func (h *CheckinHandler) Routes(r chi.Router) {
	r.Get("/checkins/{day}", h.HandleDay)
	r.Put("/checkins/{day}/{habitID}", h.HandleSet)
	r.Post("/checkins/{day}/{habitID}/toggle", h.HandleToggle)
}

type setCheckinRequest struct {
	Done *bool `json:"done"`
}

// HandleDay returns every stored cell of one day as {habitID: done}.
func (h *CheckinHandler) HandleDay(w http.ResponseWriter, r *http.Request) {
	rec, err := h.checkins.Day(r.Context(), r.PathValue("day"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleSet stores an explicit completion state. "done" is required so an
// empty body cannot silently clear a check-in.
func (h *CheckinHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	var req setCheckinRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Done == nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: `"done" is required`,
			Field:   "done",
		})
		return
	}

	c, err := h.checkins.Set(r.Context(), r.PathValue("day"), r.PathValue("habitID"), *req.Done)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleToggle flips one cell and returns its new state.
func (h *CheckinHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	c, err := h.checkins.Toggle(r.Context(), r.PathValue("day"), r.PathValue("habitID"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Debug("toggled via API",
		slog.String("day", c.Day),
		slog.String("habit_id", c.HabitID),
		slog.Bool("done", c.Done),
	)
	writeJSON(w, http.StatusOK, c)
}
