// Package handler turns HTTP requests into service calls and service results
// into JSON. Handlers know about status codes and URL shapes; they never
// touch the store.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/habitloop/internal/model"
	"github.com/sakif/habitloop/internal/service"
)

// HabitManager is the slice of the habit service the handler needs.
type HabitManager interface {
	Create(ctx context.Context, in service.HabitInput) (*model.Habit, error)
	GetByID(ctx context.Context, id string) (*model.Habit, error)
	List(ctx context.Context) ([]model.Habit, error)
	Update(ctx context.Context, id string, in service.HabitInput) (*model.Habit, error)
	Delete(ctx context.Context, id string) error
}

// HabitHandler serves the habit registry.
type HabitHandler struct {
	habits HabitManager
	logger *slog.Logger
}

// NewHabitHandler creates a HabitHandler.
func NewHabitHandler(habits HabitManager, logger *slog.Logger) *HabitHandler {
	return &HabitHandler{habits: habits, logger: logger}
}

// Routes mounts the registry endpoints on r.
//
//	GET    /habits
//	POST   /habits
//	GET    /habits/{id}
//	PUT    /habits/{id}
//	DELETE /habits/{id}
func (h *HabitHandler) Routes(r chi.Router) {
	r.Get("/habits", h.HandleList)
	r.Post("/habits", h.HandleCreate)
	r.Get("/habits/{id}", h.HandleGetByID)
	r.Put("/habits/{id}", h.HandleUpdate)
	r.Delete("/habits/{id}", h.HandleDelete)
}

// habitRequest is the JSON body of create and update.
type habitRequest struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	Schedule string `json:"schedule"`
	Why      string `json:"why"`
}

func (req habitRequest) input() service.HabitInput {
	return service.HabitInput{
		Name:     req.Name,
		Icon:     req.Icon,
		Color:    req.Color,
		Schedule: model.Schedule(req.Schedule),
		Why:      req.Why,
	}
}

// HandleList returns the registry in display order.
func (h *HabitHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	habits, err := h.habits.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

// HandleCreate adds a habit.
//
// HTTP: POST /api/habits
// REQUEST BODY: {"name":"Run","icon":"🏃","color":"#22c55e","schedule":"daily","why":"..."}
func (h *HabitHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := readJSON(w, r, &req); err != nil {
		h.logger.Warn("invalid habit JSON", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	habit, err := h.habits.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

// HandleGetByID returns one habit.
func (h *HabitHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	habit, err := h.habits.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

// HandleUpdate replaces a habit's editable fields.
//
// HTTP: PUT /api/habits/{id}, same body as create.
func (h *HabitHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	habit, err := h.habits.Update(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

// HandleDelete removes a habit. Its history stays in the ledger.
func (h *HabitHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.habits.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
