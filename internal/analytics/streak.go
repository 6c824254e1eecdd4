package analytics

import "github.com/sakif/habitloop/internal/model"

// CurrentStreak counts consecutive completed days for a habit, walking back
// from today.
//
// Days the habit is not scheduled on are skipped: they neither add to nor
// break the streak. An unfinished today contributes nothing but does not
// break it either, so yesterday's streak survives until the day is over.
// The walk stops at the first scheduled, uncompleted day before today, or
// after Options.Lookback days.
func (e *Engine) CurrentStreak(habitID string) int {
	h, ok := e.snap.Habit(habitID)
	if !ok {
		return 0
	}
	return e.currentStreak(h)
}

func (e *Engine) currentStreak(h model.Habit) int {
	streak := 0
	for i := 0; i < e.opts.lookback(); i++ {
		d := e.today.AddDays(-i)
		if !h.AppliesOn(d) {
			continue
		}
		if e.done(d, h.ID) {
			streak++
			continue
		}
		if i > 0 {
			break
		}
	}
	return streak
}

// BestStreak returns the longest run of completed days for a habit between
// the earliest ledger day and today. Unscheduled days are skipped the same
// way CurrentStreak skips them, so BestStreak is never below CurrentStreak.
func (e *Engine) BestStreak(habitID string) int {
	h, ok := e.snap.Habit(habitID)
	if !ok {
		return 0
	}
	return e.bestStreak(h)
}

func (e *Engine) bestStreak(h model.Habit) int {
	best, run := 0, 0
	for d := e.firstDay(); !d.After(e.today); d = d.AddDays(1) {
		// A plain calendar scan resets a weekday habit's run every
		// Saturday, which would put BestStreak below CurrentStreak. Keep
		// the skip.
		if !h.AppliesOn(d) {
			continue
		}
		if e.done(d, h.ID) {
			run++
			best = max(best, run)
		} else {
			run = 0
		}
	}
	return best
}

// AnyStreak counts consecutive days, back from today, on which at least one
// registry habit was completed. Like CurrentStreak, an empty today does not
// break the run.
func (e *Engine) AnyStreak() int {
	if len(e.snap.Habits) == 0 {
		return 0
	}

	streak := 0
	for i := 0; i < e.opts.lookback(); i++ {
		if e.DailyCompletion(e.today.AddDays(-i)) > 0 {
			streak++
			continue
		}
		if i > 0 {
			break
		}
	}
	return streak
}

// BestCurrentStreak is the highest CurrentStreak across all habits.
func (e *Engine) BestCurrentStreak() int {
	best := 0
	for _, h := range e.snap.Habits {
		best = max(best, e.currentStreak(h))
	}
	return best
}
