package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sakif/habitloop/internal/analytics"
	"github.com/sakif/habitloop/internal/apperror"
	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/metrics"
	"github.com/sakif/habitloop/internal/report"
	"github.com/sakif/habitloop/internal/repository"
)

// AnalyticsService answers report queries. Every call loads a fresh
// snapshot from the store and anchors a new engine at the clock's today, so
// a toggle that lands mid-request never shows up half-applied.
type AnalyticsService struct {
	source repository.SnapshotSource
	clock  calendar.Clock
	opts   analytics.Options
	logger *slog.Logger
}

// NewAnalyticsService creates an AnalyticsService.
func NewAnalyticsService(source repository.SnapshotSource, clock calendar.Clock, opts analytics.Options, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		source: source,
		clock:  clock,
		opts:   opts,
		logger: logger,
	}
}

// engine loads a snapshot and wraps it in an engine.
func (s *AnalyticsService) engine(ctx context.Context, name string) (*analytics.Engine, error) {
	start := time.Now()
	snap, err := s.source.Snapshot(ctx)
	metrics.RecordSnapshotLoad(time.Since(start))
	if err != nil {
		s.logger.Error("failed to load snapshot",
			slog.String("report", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	metrics.IncrementReportBuild(name)
	return analytics.New(snap, s.clock.Today(), s.opts), nil
}

// Overview builds the overview tab.
func (s *AnalyticsService) Overview(ctx context.Context) (*report.Overview, error) {
	e, err := s.engine(ctx, "overview")
	if err != nil {
		return nil, err
	}
	out := report.BuildOverview(e)
	return &out, nil
}

// Trends builds the trends tab.
func (s *AnalyticsService) Trends(ctx context.Context) (*report.Trends, error) {
	e, err := s.engine(ctx, "trends")
	if err != nil {
		return nil, err
	}
	out := report.BuildTrends(e)
	return &out, nil
}

// Insights builds the insights tab.
func (s *AnalyticsService) Insights(ctx context.Context) (*report.Insights, error) {
	e, err := s.engine(ctx, "insights")
	if err != nil {
		return nil, err
	}
	out := report.BuildInsights(e)
	return &out, nil
}

// Compare builds the compare tab. Empty a or b fall back to the first two
// habits.
func (s *AnalyticsService) Compare(ctx context.Context, a, b string) (*report.Compare, error) {
	e, err := s.engine(ctx, "compare")
	if err != nil {
		return nil, err
	}
	out := report.BuildCompare(e, a, b)
	return &out, nil
}

// Progress builds the rep totals and milestones.
func (s *AnalyticsService) Progress(ctx context.Context) (*report.Progress, error) {
	e, err := s.engine(ctx, "progress")
	if err != nil {
		return nil, err
	}
	out := report.BuildProgress(e)
	return &out, nil
}

// Dashboard builds the daily view.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	e, err := s.engine(ctx, "dashboard")
	if err != nil {
		return nil, err
	}
	out := report.BuildDashboard(e)
	return &out, nil
}

// Heatmap builds one habit's heatmap. The habit must be in the registry.
// A bad span is rejected before the snapshot loads.
func (s *AnalyticsService) Heatmap(ctx context.Context, habitID string, weeks int) (*report.Heatmap, error) {
	if err := report.CheckHeatmapWeeks(weeks); err != nil {
		return nil, err
	}
	e, err := s.engine(ctx, "heatmap")
	if err != nil {
		return nil, err
	}
	if _, ok := e.Habit(habitID); !ok {
		return nil, apperror.NotFound("habit", habitID)
	}
	out, err := report.BuildHeatmap(e, habitID, weeks)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// HabitStats builds one habit's detail numbers over a days-long period.
// The habit must be in the registry.
func (s *AnalyticsService) HabitStats(ctx context.Context, habitID string, days int) (*report.HabitStats, error) {
	if err := analytics.CheckPeriod(days); err != nil {
		return nil, err
	}
	e, err := s.engine(ctx, "habit_stats")
	if err != nil {
		return nil, err
	}
	if _, ok := e.Habit(habitID); !ok {
		return nil, apperror.NotFound("habit", habitID)
	}
	out, err := report.BuildHabitStats(e, habitID, days)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// reportBuilders maps report names to the whole-registry reports, for
// callers that pick a report by name.
var reportBuilders = map[string]func(*analytics.Engine) any{
	"overview":  func(e *analytics.Engine) any { return report.BuildOverview(e) },
	"trends":    func(e *analytics.Engine) any { return report.BuildTrends(e) },
	"insights":  func(e *analytics.Engine) any { return report.BuildInsights(e) },
	"compare":   func(e *analytics.Engine) any { return report.BuildCompare(e, "", "") },
	"progress":  func(e *analytics.Engine) any { return report.BuildProgress(e) },
	"dashboard": func(e *analytics.Engine) any { return report.BuildDashboard(e) },
}

// ReportNames lists the names Report accepts, sorted.
func ReportNames() []string {
	names := make([]string, 0, len(reportBuilders))
	for name := range reportBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Report builds a whole-registry report by name. An unknown name is an
// invalid argument.
func (s *AnalyticsService) Report(ctx context.Context, name string) (any, error) {
	build, ok := reportBuilders[name]
	if !ok {
		return nil, apperror.InvalidArgument("report",
			fmt.Sprintf("unknown report %q, want one of %v", name, ReportNames()))
	}
	e, err := s.engine(ctx, name)
	if err != nil {
		return nil, err
	}
	return build(e), nil
}
