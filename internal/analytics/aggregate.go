package analytics

import (
	"fmt"

	"github.com/sakif/habitloop/internal/apperror"
	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/model"
)

// PeriodRate is the completion percentage of a habit over the last days
// calendar days, today included.
//
// Under RateCalendarDays the denominator is always days. Under
// RateApplicableDays only scheduled days count, and a window with no
// scheduled day yields 0. An unknown habit yields 0. days outside
// 1..MaxPeriodDays is a contract violation.
func (e *Engine) PeriodRate(habitID string, days int) (int, error) {
	if err := CheckPeriod(days); err != nil {
		return 0, err
	}
	h, ok := e.snap.Habit(habitID)
	if !ok {
		return 0, nil
	}
	return e.periodRate(h, days), nil
}

// CheckPeriod reports whether days is a usable window length.
func CheckPeriod(days int) error {
	if days <= 0 || days > MaxPeriodDays {
		return apperror.InvalidArgument("days",
			fmt.Sprintf("period length must be between 1 and %d, got %d", MaxPeriodDays, days))
	}
	return nil
}

func (e *Engine) periodRate(h model.Habit, days int) int {
	completed, total := 0, 0
	for i := 0; i < days; i++ {
		d := e.today.AddDays(-i)
		if e.opts.RatePolicy == RateApplicableDays && !h.AppliesOn(d) {
			continue
		}
		total++
		if e.done(d, h.ID) {
			completed++
		}
	}
	return percent(completed, total)
}

// AllTimeRate is the completion percentage of a habit over its scheduled
// days from the earliest ledger day to today.
func (e *Engine) AllTimeRate(habitID string) int {
	h, ok := e.snap.Habit(habitID)
	if !ok {
		return 0
	}
	return e.allTimeRate(h)
}

func (e *Engine) allTimeRate(h model.Habit) int {
	completed, total := 0, 0
	for d := e.firstDay(); !d.After(e.today); d = d.AddDays(1) {
		if !h.AppliesOn(d) {
			continue
		}
		total++
		if e.done(d, h.ID) {
			completed++
		}
	}
	return percent(completed, total)
}

// AverageCompletion is the mean AllTimeRate across the registry.
func (e *Engine) AverageCompletion() int {
	if len(e.snap.Habits) == 0 {
		return 0
	}
	sum := 0
	for _, h := range e.snap.Habits {
		sum += e.allTimeRate(h)
	}
	return percent(sum, len(e.snap.Habits)*100)
}

// WeekProgress is the share of scheduled habit-days completed from this
// week's Sunday through today. Days after today are never counted.
func (e *Engine) WeekProgress() int {
	completed, total := 0, 0
	for d := calendar.StartOfWeek(e.today); !d.After(e.today); d = d.AddDays(1) {
		for _, h := range e.snap.Habits {
			if !h.AppliesOn(d) {
				continue
			}
			total++
			if e.done(d, h.ID) {
				completed++
			}
		}
	}
	return percent(completed, total)
}

// MonthProgress is the share of habit-days completed from the 1st of the
// current month through today. Every day counts for every habit, scheduled
// or not.
func (e *Engine) MonthProgress() int {
	return e.MonthRate(e.today)
}

// MonthRate is MonthProgress for the month containing month, cut off at
// today. A month entirely after today yields 0.
func (e *Engine) MonthRate(month calendar.Date) int {
	first := calendar.StartOfMonth(month)
	last := first.AddDays(calendar.DaysInMonth(first) - 1)
	if last.After(e.today) {
		last = e.today
	}

	completed, total := 0, 0
	for d := first; !d.After(last); d = d.AddDays(1) {
		for _, h := range e.snap.Habits {
			total++
			if e.done(d, h.ID) {
				completed++
			}
		}
	}
	return percent(completed, total)
}

// ConsistencyScore averages, over all habits, the fraction of the trailing
// ConsistencyWindow days that were completed.
func (e *Engine) ConsistencyScore() int {
	n := len(e.snap.Habits)
	if n == 0 {
		return 0
	}
	completed := 0
	for _, h := range e.snap.Habits {
		for i := 0; i < ConsistencyWindow; i++ {
			if e.done(e.today.AddDays(-i), h.ID) {
				completed++
			}
		}
	}
	// mean of per-habit (completed/window) == total completed / (n*window)
	return percent(completed, n*ConsistencyWindow)
}

// DailyCompletion counts registry habits completed on d.
func (e *Engine) DailyCompletion(d calendar.Date) int {
	n := 0
	for _, h := range e.snap.Habits {
		if e.done(d, h.ID) {
			n++
		}
	}
	return n
}

// TodayCompletion returns how many habits scheduled today are done, and
// how many are scheduled.
func (e *Engine) TodayCompletion() (completed, scheduled int) {
	for _, h := range e.snap.Habits {
		if !h.AppliesOn(e.today) {
			continue
		}
		scheduled++
		if e.done(e.today, h.ID) {
			completed++
		}
	}
	return completed, scheduled
}

// AllScheduledDone reports whether every habit scheduled on d is done. It is
// false for an empty registry.
func (e *Engine) AllScheduledDone(d calendar.Date) bool {
	if len(e.snap.Habits) == 0 {
		return false
	}
	for _, h := range e.snap.Habits {
		if h.AppliesOn(d) && !e.done(d, h.ID) {
			return false
		}
	}
	return true
}
