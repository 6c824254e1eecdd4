package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/model"
)

func TestStreaks_EmptyLedger(t *testing.T) {
	e := newEngine(friday, []model.Habit{daily("run")}, model.Ledger{})

	assert.Equal(t, 0, e.CurrentStreak("run"))
	assert.Equal(t, 0, e.BestStreak("run"))
	assert.Equal(t, 0, e.AllTimeRate("run"))
	assert.Equal(t, 0, e.AnyStreak())
}

func TestCurrentStreak_TenDaysIncludingToday(t *testing.T) {
	l := model.Ledger{}
	mark(l, friday, "run", span(0, 9)...)
	e := newEngine(friday, []model.Habit{daily("run")}, l)

	assert.Equal(t, 10, e.CurrentStreak("run"))
	assert.Equal(t, 10, e.BestStreak("run"))
}

func TestCurrentStreak_WeekdayHabitSkipsWeekends(t *testing.T) {
	// Two working weeks, Mon 2026-10-05 .. Fri 2026-10-16, weekends untouched.
	l := model.Ledger{}
	for d := calendar.New(2026, time.October, 5); !d.After(friday); d = d.AddDays(1) {
		if !d.IsWeekend() {
			l.Set(d, "standup", true)
		}
	}
	habits := []model.Habit{weekdaysOnly("standup")}

	t.Run("anchored on Friday", func(t *testing.T) {
		e := newEngine(friday, habits, l)
		assert.Equal(t, 10, e.CurrentStreak("standup"))
		assert.Equal(t, 10, e.BestStreak("standup"))
	})

	t.Run("anchored on the following Sunday", func(t *testing.T) {
		sunday := friday.AddDays(2)
		e := newEngine(sunday, habits, l)
		assert.Equal(t, 10, e.CurrentStreak("standup"))
		assert.Equal(t, 10, e.BestStreak("standup"))
	})

	t.Run("same ledger as a daily habit breaks on the weekend", func(t *testing.T) {
		dl := model.Ledger{}
		for day, rec := range l {
			dl[day] = model.DayRecord{"standup-daily": rec["standup"]}
		}
		e := newEngine(friday, []model.Habit{daily("standup-daily")}, dl)
		assert.Equal(t, 5, e.CurrentStreak("standup-daily"))
	})
}

func TestCurrentStreak_BreaksAtFirstMissBeforeToday(t *testing.T) {
	// Done 1..5 days ago, missed 6 days ago, done again 7..12 days ago.
	l := model.Ledger{}
	mark(l, friday, "read", span(1, 5)...)
	mark(l, friday, "read", span(7, 12)...)
	e := newEngine(friday, []model.Habit{daily("read")}, l)

	assert.Equal(t, 5, e.CurrentStreak("read"))
	assert.Equal(t, 6, e.BestStreak("read"))
}

func TestCurrentStreak_UnfinishedTodayDoesNotBreak(t *testing.T) {
	l := model.Ledger{}
	mark(l, friday, "read", 1, 2, 3)
	l.Set(friday, "read", false) // touched today, then unticked
	e := newEngine(friday, []model.Habit{daily("read")}, l)

	assert.Equal(t, 3, e.CurrentStreak("read"))
}

func TestCurrentStreak_LookbackCap(t *testing.T) {
	l := model.Ledger{}
	mark(l, friday, "run", span(0, 399)...)
	snap := model.Snapshot{Habits: []model.Habit{daily("run")}, Ledger: l}

	capped := New(snap, friday, Options{})
	assert.Equal(t, DefaultLookback, capped.CurrentStreak("run"))
	assert.Equal(t, 400, capped.BestStreak("run"))

	wide := New(snap, friday, Options{Lookback: 1000})
	assert.Equal(t, 400, wide.CurrentStreak("run"))
}

func TestStreaks_UnknownHabit(t *testing.T) {
	l := model.Ledger{}
	mark(l, friday, "ghost", span(0, 4)...) // deleted habit, history kept
	e := newEngine(friday, []model.Habit{daily("run")}, l)

	assert.Equal(t, 0, e.CurrentStreak("ghost"))
	assert.Equal(t, 0, e.BestStreak("ghost"))
	assert.Equal(t, 0, e.AnyStreak())
}

func TestBestStreakNeverBelowCurrent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	habits := []model.Habit{daily("a"), weekdaysOnly("b")}

	for round := 0; round < 50; round++ {
		l := model.Ledger{}
		for off := 0; off < 120; off++ {
			for _, h := range habits {
				if rng.Intn(10) < 8 {
					mark(l, friday, h.ID, off)
				}
			}
		}
		e := newEngine(friday, habits, l)
		for _, h := range habits {
			cur, best := e.CurrentStreak(h.ID), e.BestStreak(h.ID)
			assert.GreaterOrEqual(t, best, cur, "round %d habit %s", round, h.ID)
		}
	}
}

func TestAnyStreak(t *testing.T) {
	habits := []model.Habit{daily("a"), daily("b")}

	t.Run("alternating habits keep the streak alive", func(t *testing.T) {
		l := model.Ledger{}
		mark(l, friday, "a", 1, 3, 5)
		mark(l, friday, "b", 2, 4)
		// gap at 6, then more history
		mark(l, friday, "a", 7, 8)
		e := newEngine(friday, habits, l)

		// today empty: does not break, contributes nothing
		assert.Equal(t, 5, e.AnyStreak())
	})

	t.Run("today counts when something is done", func(t *testing.T) {
		l := model.Ledger{}
		mark(l, friday, "b", 0, 1)
		e := newEngine(friday, habits, l)
		assert.Equal(t, 2, e.AnyStreak())
	})

	t.Run("empty registry", func(t *testing.T) {
		l := model.Ledger{}
		mark(l, friday, "a", 0, 1, 2)
		e := newEngine(friday, nil, l)
		assert.Equal(t, 0, e.AnyStreak())
	})
}

func TestBestCurrentStreak(t *testing.T) {
	l := model.Ledger{}
	mark(l, friday, "a", 0, 1)
	mark(l, friday, "b", 0, 1, 2, 3)
	e := newEngine(friday, []model.Habit{daily("a"), daily("b"), daily("c")}, l)

	assert.Equal(t, 4, e.BestCurrentStreak())
}
