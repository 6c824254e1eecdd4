package analytics

import (
	"sort"

	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/model"
)

// Ranked pairs a habit with the rate it was ranked by.
type Ranked struct {
	Habit model.Habit
	Rate  int
}

// TopPerformers returns up to k habits ordered by TopWindow-day PeriodRate,
// highest first. Equal rates keep registry order. k <= 0 returns all.
func (e *Engine) TopPerformers(k int) []Ranked {
	return e.rank(TopWindow, k, func(a, b int) bool { return a > b })
}

// BottomPerformers returns up to k habits ordered by BottomWindow-day
// PeriodRate, lowest first. Equal rates keep registry order.
func (e *Engine) BottomPerformers(k int) []Ranked {
	return e.rank(BottomWindow, k, func(a, b int) bool { return a < b })
}

func (e *Engine) rank(window, k int, less func(a, b int) bool) []Ranked {
	out := make([]Ranked, 0, len(e.snap.Habits))
	for _, h := range e.snap.Habits {
		out = append(out, Ranked{Habit: h, Rate: e.periodRate(h, window)})
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i].Rate, out[j].Rate) })
	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out
}

// Series is a per-day completion series over consecutive days, oldest
// first.
type Series struct {
	Days []calendar.Date
	Done []bool
}

// CompletionSeries returns the completion state of a habit for each of the
// trailing days days, today last. days is clamped to 0..MaxPeriodDays. A
// habit missing from the registry gives an all-false series over the same
// days.
func (e *Engine) CompletionSeries(habitID string, days int) Series {
	days = min(max(days, 0), MaxPeriodDays)
	_, known := e.snap.Habit(habitID)
	s := Series{
		Days: make([]calendar.Date, days),
		Done: make([]bool, days),
	}
	for i := 0; i < days; i++ {
		d := e.today.AddDays(i - days + 1)
		s.Days[i] = d
		s.Done[i] = known && e.done(d, habitID)
	}
	return s
}

// HeadToHeadSeries holds two completion series aligned on the same days.
type HeadToHeadSeries struct {
	Days []calendar.Date
	A    []bool
	B    []bool
}

// HeadToHead compares two habits over the trailing HeadToHeadWindow days.
func (e *Engine) HeadToHead(a, b string) HeadToHeadSeries {
	sa := e.CompletionSeries(a, HeadToHeadWindow)
	sb := e.CompletionSeries(b, HeadToHeadWindow)
	return HeadToHeadSeries{Days: sa.Days, A: sa.Done, B: sb.Done}
}
