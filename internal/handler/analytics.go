package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/habitloop/internal/apperror"
	"github.com/sakif/habitloop/internal/report"
)

// DefaultStatsDays is the period of /habits/{id}/stats when ?days= is absent.
const DefaultStatsDays = 30

// ReportSource is the slice of the analytics service the handler needs.
type ReportSource interface {
	Overview(ctx context.Context) (*report.Overview, error)
	Trends(ctx context.Context) (*report.Trends, error)
	Insights(ctx context.Context) (*report.Insights, error)
	Compare(ctx context.Context, a, b string) (*report.Compare, error)
	Progress(ctx context.Context) (*report.Progress, error)
	Dashboard(ctx context.Context) (*report.Dashboard, error)
	Heatmap(ctx context.Context, habitID string, weeks int) (*report.Heatmap, error)
	HabitStats(ctx context.Context, habitID string, days int) (*report.HabitStats, error)
}

// AnalyticsHandler serves the read-only report datasets.
type AnalyticsHandler struct {
	reports ReportSource
	logger  *slog.Logger
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(reports ReportSource, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{reports: reports, logger: logger}
}

// Routes mounts the report endpoints on r.
//
//	GET /analytics/overview
//	GET /analytics/trends
//	GET /analytics/insights
//	GET /analytics/compare?a=&b=
//	GET /analytics/progress
//	GET /analytics/dashboard
//	GET /analytics/heatmap/{id}?weeks=
//	GET /habits/{id}/stats?days=
func (h *AnalyticsHandler) Routes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/overview", serveReport(h.reports.Overview))
		r.Get("/trends", serveReport(h.reports.Trends))
		r.Get("/insights", serveReport(h.reports.Insights))
		r.Get("/progress", serveReport(h.reports.Progress))
		r.Get("/dashboard", serveReport(h.reports.Dashboard))
		r.Get("/compare", h.HandleCompare)
		r.Get("/heatmap/{id}", h.HandleHeatmap)
	})
	r.Get("/habits/{id}/stats", h.HandleHabitStats)
}

// serveReport adapts a parameterless report builder to a handler.
func serveReport[T any](build func(context.Context) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := build(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// HandleCompare serves the comparison table and the head-to-head chart for
// ?a= and ?b= (both optional).
func (h *AnalyticsHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.reports.Compare(r.Context(), q.Get("a"), q.Get("b"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleHeatmap serves one habit's heatmap, report.DefaultHeatmapWeeks wide
// unless ?weeks= says otherwise.
func (h *AnalyticsHandler) HandleHeatmap(w http.ResponseWriter, r *http.Request) {
	weeks, err := intQuery(r, "weeks", report.DefaultHeatmapWeeks)
	if err != nil {
		h.rejectWindow(w, r, err)
		return
	}
	out, err := h.reports.Heatmap(r.Context(), r.PathValue("id"), weeks)
	if err != nil {
		h.rejectWindow(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleHabitStats serves one habit's detail numbers.
func (h *AnalyticsHandler) HandleHabitStats(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days", DefaultStatsDays)
	if err != nil {
		h.rejectWindow(w, r, err)
		return
	}
	out, err := h.reports.HabitStats(r.Context(), r.PathValue("id"), days)
	if err != nil {
		h.rejectWindow(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// rejectWindow writes err and, when the caller sent a malformed or
// out-of-range window, logs it at warn level with the raw query.
func (h *AnalyticsHandler) rejectWindow(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperror.ErrInvalidArgument) || errors.Is(err, apperror.ErrValidation) {
		h.logger.Warn("rejected report window",
			slog.String("path", r.URL.Path),
			slog.String("query", r.URL.RawQuery),
			slog.String("error", err.Error()),
		)
	}
	writeError(w, err)
}
