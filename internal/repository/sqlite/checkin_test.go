package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/model"
)

var day = calendar.New(2026, time.October, 16)

func TestSetCheckin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.SetCheckin(ctx, day, "h1", true); err != nil {
		t.Fatalf("SetCheckin() error = %v", err)
	}
	if err := db.SetCheckin(ctx, day, "h2", false); err != nil {
		t.Fatalf("SetCheckin() error = %v", err)
	}

	rec, err := db.DayRecord(ctx, day)
	if err != nil {
		t.Fatalf("DayRecord() error = %v", err)
	}
	if !rec["h1"] {
		t.Error("h1 should be done")
	}
	if done, ok := rec["h2"]; !ok || done {
		t.Errorf("h2 = (%v, %v), want stored false", done, ok)
	}
}

func TestSetCheckin_Overwrites(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, done := range []bool{true, false, true, false} {
		if err := db.SetCheckin(ctx, day, "h1", done); err != nil {
			t.Fatalf("SetCheckin(%v) error = %v", done, err)
		}
	}

	rec, err := db.DayRecord(ctx, day)
	if err != nil {
		t.Fatalf("DayRecord() error = %v", err)
	}
	if rec["h1"] {
		t.Error("last write was false, got true")
	}
	if len(rec) != 1 {
		t.Errorf("DayRecord() has %d cells, want 1", len(rec))
	}
}

func TestToggleCheckin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	want := []bool{true, false, true}
	for i, w := range want {
		got, err := db.ToggleCheckin(ctx, day, "h1")
		if err != nil {
			t.Fatalf("toggle %d: error = %v", i, err)
		}
		if got != w {
			t.Errorf("toggle %d = %v, want %v", i, got, w)
		}
	}
}

func TestDayRecord_UntouchedDayIsEmpty(t *testing.T) {
	db := newTestDB(t)

	rec, err := db.DayRecord(context.Background(), day)
	if err != nil {
		t.Fatalf("DayRecord() error = %v", err)
	}
	if rec == nil || len(rec) != 0 {
		t.Errorf("DayRecord() = %v, want empty", rec)
	}
}

func TestSnapshot(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	run := createTestHabit(t, db, "Run", model.ScheduleDaily)
	read := createTestHabit(t, db, "Read", model.ScheduleWeekdays)

	mustSet := func(d calendar.Date, id string) {
		t.Helper()
		if err := db.SetCheckin(ctx, d, id, true); err != nil {
			t.Fatalf("SetCheckin: %v", err)
		}
	}
	mustSet(day, run.ID)
	mustSet(day.AddDays(-1), run.ID)
	mustSet(day, read.ID)

	snap, err := db.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if len(snap.Habits) != 2 || snap.Habits[0].ID != run.ID || snap.Habits[1].ID != read.ID {
		t.Errorf("Snapshot().Habits = %+v, want [Run Read]", snap.Habits)
	}
	if !snap.Ledger.Done(day, run.ID) || !snap.Ledger.Done(day.AddDays(-1), run.ID) {
		t.Error("run check-ins missing from snapshot")
	}
	if snap.Ledger.Done(day.AddDays(-1), read.ID) {
		t.Error("read was never checked in yesterday")
	}
}

func TestSnapshot_DeletedHabitKeepsHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	h := createTestHabit(t, db, "Gone", model.ScheduleDaily)
	if err := db.SetCheckin(ctx, day, h.ID, true); err != nil {
		t.Fatalf("SetCheckin: %v", err)
	}
	if err := db.Delete(ctx, h.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	snap, err := db.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(snap.Habits) != 0 {
		t.Errorf("registry should be empty, got %d habits", len(snap.Habits))
	}
	if !snap.Ledger.Done(day, h.ID) {
		t.Error("deleted habit's check-in was dropped from the ledger")
	}
}

func TestSnapshot_SkipsMalformedDayKeys(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	if _, err := db.conn.ExecContext(ctx,
		`INSERT INTO checkins (day, habit_id, done) VALUES ('not-a-day', 'h1', 1)`); err != nil {
		t.Fatalf("seeding bad row: %v", err)
	}
	if err := db.SetCheckin(ctx, day, "h1", true); err != nil {
		t.Fatalf("SetCheckin: %v", err)
	}

	snap, err := db.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(snap.Ledger) != 1 {
		t.Errorf("ledger has %d days, want 1", len(snap.Ledger))
	}
}
