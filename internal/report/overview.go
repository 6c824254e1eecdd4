package report

import (
	"github.com/sakif/habitloop/internal/analytics"
	"github.com/sakif/habitloop/internal/calendar"
)

const (
	trendDays        = 7
	monthlyMonths    = 6
	thirtyDayDays    = 30
	thirtyDayLabelEv = 5 // label every 5th point, counting back from today
	timelineHabits   = 8
	timelineNameLen  = 15
)

// Donut is today's completed vs pending split.
type Donut struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// Overview is the landing analytics tab.
type Overview struct {
	TotalHabits        int    `json:"totalHabits"`
	TodayCompleted     int    `json:"todayCompleted"`
	TodayRate          int    `json:"todayRate"`
	CurrentStreak      int    `json:"currentStreak"`
	MonthProgress      int    `json:"monthProgress"`
	Consistency        int    `json:"consistency"`
	SevenDayTrend      Series `json:"sevenDayTrend"`
	TodayDonut         Donut  `json:"todayDonut"`
	MonthlyPerformance Series `json:"monthlyPerformance"`
}

// BuildOverview assembles the mini stats and the three overview charts.
// Today's rate and donut are measured against habits scheduled today.
func BuildOverview(e *analytics.Engine) Overview {
	done, scheduled := e.TodayCompletion()
	return Overview{
		TotalHabits:        len(e.Habits()),
		TodayCompleted:     done,
		TodayRate:          analytics.Percent(done, scheduled),
		CurrentStreak:      e.AnyStreak(),
		MonthProgress:      e.MonthProgress(),
		Consistency:        e.ConsistencyScore(),
		SevenDayTrend:      SevenDayTrend(e),
		TodayDonut:         Donut{Completed: done, Pending: scheduled - done},
		MonthlyPerformance: MonthlyPerformance(e),
	}
}

// SevenDayTrend is the number of habits completed on each of the last
// seven days, labeled by short weekday, oldest first.
func SevenDayTrend(e *analytics.Engine) Series {
	s := Series{Labels: make([]string, 0, trendDays), Values: make([]int, 0, trendDays)}
	for i := trendDays - 1; i >= 0; i-- {
		d := e.Today().AddDays(-i)
		s.Labels = append(s.Labels, weekdayLabel(d))
		s.Values = append(s.Values, e.DailyCompletion(d))
	}
	return s
}

// MonthlyPerformance is MonthRate for the current and previous five
// months, labeled by short month name, oldest first.
func MonthlyPerformance(e *analytics.Engine) Series {
	thisMonth := calendar.StartOfMonth(e.Today())
	s := Series{Labels: make([]string, 0, monthlyMonths), Values: make([]int, 0, monthlyMonths)}
	for i := monthlyMonths - 1; i >= 0; i-- {
		m := thisMonth.AddMonths(-i)
		s.Labels = append(s.Labels, monthLabel(m))
		s.Values = append(s.Values, e.MonthRate(m))
	}
	return s
}

// StreakTimeline compares current and best streaks for the first habits.
type StreakTimeline struct {
	Labels  []string `json:"labels"`
	Current []int    `json:"current"`
	Best    []int    `json:"best"`
}

// Trends is the trends tab.
type Trends struct {
	ThirtyDay      Series         `json:"thirtyDay"`
	StreakTimeline StreakTimeline `json:"streakTimeline"`
}

// BuildTrends assembles the 30-day completion line and the streak bars.
func BuildTrends(e *analytics.Engine) Trends {
	return Trends{ThirtyDay: ThirtyDayTrend(e), StreakTimeline: BuildStreakTimeline(e)}
}

// ThirtyDayTrend is the daily share of habits completed over the last 30
// days. Only every fifth point, counting back from today, carries a label.
func ThirtyDayTrend(e *analytics.Engine) Series {
	n := len(e.Habits())
	s := Series{Labels: make([]string, 0, thirtyDayDays), Values: make([]int, 0, thirtyDayDays)}
	for i := thirtyDayDays - 1; i >= 0; i-- {
		d := e.Today().AddDays(-i)
		label := ""
		if i%thirtyDayLabelEv == 0 {
			label = dayLabel(d)
		}
		s.Labels = append(s.Labels, label)
		s.Values = append(s.Values, analytics.Percent(e.DailyCompletion(d), n))
	}
	return s
}

// BuildStreakTimeline lists current and best streaks of the first eight
// habits in registry order.
func BuildStreakTimeline(e *analytics.Engine) StreakTimeline {
	habits := e.Habits()
	if len(habits) > timelineHabits {
		habits = habits[:timelineHabits]
	}
	st := StreakTimeline{
		Labels:  make([]string, 0, len(habits)),
		Current: make([]int, 0, len(habits)),
		Best:    make([]int, 0, len(habits)),
	}
	for _, h := range habits {
		st.Labels = append(st.Labels, shortName(h.Name, timelineNameLen))
		st.Current = append(st.Current, e.CurrentStreak(h.ID))
		st.Best = append(st.Best, e.BestStreak(h.ID))
	}
	return st
}
