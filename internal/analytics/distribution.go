package analytics

import "time"

// WeekdayStats holds completion counts per weekday, indexed by
// time.Weekday (Sunday first).
type WeekdayStats struct {
	Completed [7]int
	Total     [7]int
}

// Percentages returns the rounded completion percentage of each weekday.
func (s WeekdayStats) Percentages() [7]int {
	var out [7]int
	for i := range out {
		out[i] = percent(s.Completed[i], s.Total[i])
	}
	return out
}

// Best returns the weekday with the highest completion percentage. Ties go
// to the earliest day in Sunday-first order. Weekdays nothing was scheduled
// on are ignored; ok is false when no weekday had anything scheduled.
func (s WeekdayStats) Best() (day time.Weekday, ok bool) {
	return s.pick(func(a, b int) bool { return a > b })
}

// Worst is Best with the comparison reversed.
func (s WeekdayStats) Worst() (day time.Weekday, ok bool) {
	return s.pick(func(a, b int) bool { return a < b })
}

func (s WeekdayStats) pick(better func(a, b int) bool) (time.Weekday, bool) {
	pct := s.Percentages()
	found := false
	var day time.Weekday
	for i := range pct {
		if s.Total[i] == 0 {
			continue
		}
		if !found || better(pct[i], pct[day]) {
			day = time.Weekday(i)
			found = true
		}
	}
	return day, found
}

// DayOfWeek tallies completions per weekday over the trailing
// DistributionWindow days across all habits. A habit-day the habit was not
// scheduled on is left out of the totals.
func (e *Engine) DayOfWeek() WeekdayStats {
	var s WeekdayStats
	for i := 0; i < DistributionWindow; i++ {
		d := e.today.AddDays(-i)
		wd := d.Weekday()
		for _, h := range e.snap.Habits {
			// Counting unscheduled habit-days would pin weekday habits at
			// 0% on Saturday and Sunday.
			if !h.AppliesOn(d) {
				continue
			}
			s.Total[wd]++
			if e.done(d, h.ID) {
				s.Completed[wd]++
			}
		}
	}
	return s
}
