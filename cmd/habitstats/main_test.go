package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/repository/sqlite"
	"github.com/sakif/habitloop/internal/service"
)

// seed writes one daily habit done on the three days up to 2026-10-16 and
// returns the database path and the habit id.
func seed(t *testing.T) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "habits.db")
	db, err := sqlite.New(path)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	today := calendar.New(2026, time.October, 16)

	h, err := service.NewHabitService(db, logger).Create(ctx, service.HabitInput{Name: "Run", Icon: "R", Color: "#22aa44"})
	require.NoError(t, err)

	checkins := service.NewCheckinService(db, db, calendar.FixedClock(today), logger)
	for i := 0; i < 3; i++ {
		_, err := checkins.Set(ctx, today.AddDays(-i).Key(), h.ID, true)
		require.NoError(t, err)
	}
	return path, h.ID
}

func noEnv(string) string { return "" }

func TestRun_Overview(t *testing.T) {
	path, _ := seed(t)
	var out, errOut bytes.Buffer

	code := run(context.Background(),
		[]string{"--db", path, "--today", "2026-10-16", "--tz", "UTC", "--report", "overview"},
		&out, &errOut, noEnv)
	require.Equal(t, 0, code, errOut.String())

	var got struct {
		TotalHabits    int `json:"totalHabits"`
		TodayCompleted int `json:"todayCompleted"`
		CurrentStreak  int `json:"currentStreak"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 1, got.TotalHabits)
	assert.Equal(t, 1, got.TodayCompleted)
	assert.Equal(t, 3, got.CurrentStreak)
}

func TestRun_Stats(t *testing.T) {
	path, id := seed(t)
	var out, errOut bytes.Buffer

	code := run(context.Background(),
		[]string{"--db", path, "--today", "2026-10-16", "-r", "stats", "--habit", id, "--days", "6"},
		&out, &errOut, noEnv)
	require.Equal(t, 0, code, errOut.String())

	var got struct {
		CurrentStreak int `json:"currentStreak"`
		PeriodDays    int `json:"periodDays"`
		PeriodRate    int `json:"periodRate"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 3, got.CurrentStreak)
	assert.Equal(t, 6, got.PeriodDays)
	assert.Equal(t, 50, got.PeriodRate)
}

func TestRun_Errors(t *testing.T) {
	path, _ := seed(t)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{name: "unknown flag", args: []string{"--nope"}, code: 2},
		{name: "bad today", args: []string{"--db", path, "--today", "16/10/2026"}, code: 1},
		{name: "unknown report", args: []string{"--db", path, "--report", "weekly"}, code: 1},
		{name: "stats without habit", args: []string{"--db", path, "--report", "stats"}, code: 1},
		{name: "heatmap without habit", args: []string{"--db", path, "--report", "heatmap"}, code: 1},
		{name: "unknown habit", args: []string{"--db", path, "--report", "heatmap", "--habit", "ghost"}, code: 1},
		{name: "bad timezone", args: []string{"--db", path, "--tz", "Nowhere/Else"}, code: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			code := run(context.Background(), tt.args, &out, &errOut, noEnv)
			assert.Equal(t, tt.code, code)
			assert.Empty(t, out.String())
			assert.NotEmpty(t, errOut.String())
		})
	}
}
