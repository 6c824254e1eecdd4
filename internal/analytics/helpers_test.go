package analytics

import (
	"time"

	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/model"
)

// friday is the default anchor day for these tests: Friday 2026-10-16.
var friday = calendar.New(2026, time.October, 16)

func daily(id string) model.Habit {
	return model.Habit{ID: id, Name: id, Schedule: model.ScheduleDaily}
}

func weekdaysOnly(id string) model.Habit {
	return model.Habit{ID: id, Name: id, Schedule: model.ScheduleWeekdays}
}

// mark records habitID as done on today-offset for each offset.
func mark(l model.Ledger, today calendar.Date, habitID string, offsets ...int) {
	for _, off := range offsets {
		l.Set(today.AddDays(-off), habitID, true)
	}
}

// span returns offsets from..to inclusive.
func span(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func newEngine(today calendar.Date, habits []model.Habit, l model.Ledger) *Engine {
	return New(model.Snapshot{Habits: habits, Ledger: l}, today, Options{})
}
