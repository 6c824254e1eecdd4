package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/habitloop/internal/calendar"
)

func TestHabitAppliesOn(t *testing.T) {
	sat := calendar.New(2026, time.October, 17)
	mon := calendar.New(2026, time.October, 19)

	daily := Habit{ID: "a", Schedule: ScheduleDaily}
	weekdays := Habit{ID: "b", Schedule: ScheduleWeekdays}

	assert.True(t, daily.AppliesOn(sat))
	assert.True(t, daily.AppliesOn(mon))
	assert.False(t, weekdays.AppliesOn(sat))
	assert.True(t, weekdays.AppliesOn(mon))
}

func TestScheduleValid(t *testing.T) {
	assert.True(t, ScheduleDaily.Valid())
	assert.True(t, ScheduleWeekdays.Valid())
	assert.False(t, Schedule("weekends").Valid())
	assert.False(t, Schedule("").Valid())
}

func TestLedger_MissingDataReadsFalse(t *testing.T) {
	var l Ledger // nil ledger is a valid, empty ledger for reads
	d := calendar.New(2026, time.October, 18)

	assert.False(t, l.Done(d, "anything"))

	_, ok := l.Earliest()
	assert.False(t, ok)
}

func TestLedger_SetAndDone(t *testing.T) {
	l := Ledger{}
	d := calendar.New(2026, time.October, 18)

	l.Set(d, "run", true)
	assert.True(t, l.Done(d, "run"))
	assert.False(t, l.Done(d, "read"))

	l.Set(d, "run", false)
	assert.False(t, l.Done(d, "run"))
	// the day-key stays once touched
	assert.Contains(t, l, "2026-10-18")
}

func TestLedger_Earliest(t *testing.T) {
	l := Ledger{
		"2026-10-03": {"a": true},
		"garbage":    {"a": true},
		"2025-12-31": {"b": false},
		"2026-01-15": {"a": true},
	}

	got, ok := l.Earliest()
	assert.True(t, ok)
	assert.Equal(t, "2025-12-31", got.Key())
}

func TestSnapshotClone_IsDeep(t *testing.T) {
	orig := Snapshot{
		Habits: []Habit{{ID: "a", Name: "Run"}},
		Ledger: Ledger{"2026-10-18": {"a": true}},
	}

	cp := orig.Clone()
	cp.Habits[0].Name = "Walk"
	cp.Ledger["2026-10-18"]["a"] = false

	assert.Equal(t, "Run", orig.Habits[0].Name)
	assert.True(t, orig.Ledger["2026-10-18"]["a"])

	h, ok := orig.Habit("a")
	assert.True(t, ok)
	assert.Equal(t, "Run", h.Name)
	_, ok = orig.Habit("zzz")
	assert.False(t, ok)
}
