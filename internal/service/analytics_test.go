package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/habitloop/internal/apperror"
	"github.com/sakif/habitloop/internal/model"
	"github.com/sakif/habitloop/internal/report"
)

func seedRun(store *fakeStore, days int) {
	store.addHabit("run", "Run", model.ScheduleDaily)
	for i := 0; i < days; i++ {
		store.ledger.Set(friday.AddDays(-i), "run", true)
	}
}

func TestAnalyticsOverview(t *testing.T) {
	_, _, svc, store := newTestServices(t, friday)
	seedRun(store, 5)

	o, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, o.TotalHabits)
	assert.Equal(t, 100, o.TodayRate)
	assert.Equal(t, 5, o.CurrentStreak)
}

func TestAnalytics_SeesLatestWrites(t *testing.T) {
	_, checkins, svc, store := newTestServices(t, friday)
	seedRun(store, 0)
	ctx := context.Background()

	before, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, before.TotalCheckins)

	_, err = checkins.Toggle(ctx, "2026-10-16", "run")
	require.NoError(t, err)

	after, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, after.TotalCheckins)
	assert.True(t, after.Habits[0].Done)
}

func TestAnalytics_SnapshotError(t *testing.T) {
	_, _, svc, store := newTestServices(t, friday)
	store.err = errors.New("no such table")

	_, err := svc.Insights(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such table")
}

func TestAnalyticsHeatmap(t *testing.T) {
	_, _, svc, store := newTestServices(t, friday)
	seedRun(store, 3)
	ctx := context.Background()

	hm, err := svc.Heatmap(ctx, "run", 4)
	require.NoError(t, err)
	assert.Len(t, hm.Weeks, 4)

	_, err = svc.Heatmap(ctx, "ghost", 4)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = svc.Heatmap(ctx, "run", 0)
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))
}

func TestAnalyticsHabitStats(t *testing.T) {
	_, _, svc, store := newTestServices(t, friday)
	seedRun(store, 3)
	ctx := context.Background()

	s, err := svc.HabitStats(ctx, "run", 30)
	require.NoError(t, err)
	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 10, s.PeriodRate)

	_, err = svc.HabitStats(ctx, "ghost", 30)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = svc.HabitStats(ctx, "run", -1)
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))
}

func TestAnalytics_WindowCheckedBeforeSnapshot(t *testing.T) {
	_, _, svc, store := newTestServices(t, friday)
	store.err = errors.New("snapshot must not load")
	ctx := context.Background()

	_, err := svc.Heatmap(ctx, "ghost", 1<<40)
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument), "got %v", err)

	_, err = svc.HabitStats(ctx, "ghost", 20_000_000)
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument), "got %v", err)
}

func TestAnalyticsCompare(t *testing.T) {
	_, _, svc, store := newTestServices(t, friday)
	seedRun(store, 2)
	store.addHabit("read", "Read", model.ScheduleDaily)

	c, err := svc.Compare(context.Background(), "read", "")
	require.NoError(t, err)
	require.NotNil(t, c.HeadToHead)
	assert.Equal(t, "read", c.HeadToHead.A.ID)
	assert.Equal(t, "read", c.HeadToHead.B.ID)
	assert.Len(t, c.Rows, 2)
}

func TestAnalyticsReportByName(t *testing.T) {
	_, _, svc, store := newTestServices(t, friday)
	seedRun(store, 1)

	for _, name := range ReportNames() {
		out, err := svc.Report(context.Background(), name)
		require.NoError(t, err, name)
		assert.NotNil(t, out, name)
	}

	p, err := svc.Report(context.Background(), "progress")
	require.NoError(t, err)
	assert.IsType(t, report.Progress{}, p)

	_, err = svc.Report(context.Background(), "weather")
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))
}

func TestReportNames(t *testing.T) {
	assert.Equal(t,
		[]string{"compare", "dashboard", "insights", "overview", "progress", "trends"},
		ReportNames())
}
