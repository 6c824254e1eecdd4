package report

import (
	"github.com/sakif/habitloop/internal/analytics"
)

// ComparisonRow is one line of the comparison table.
type ComparisonRow struct {
	HabitRef
	Rate7         int `json:"rate7"`
	Rate30        int `json:"rate30"`
	CurrentStreak int `json:"currentStreak"`
	BestStreak    int `json:"bestStreak"`
}

// HeadToHeadSide is one habit's line on the head-to-head chart.
type HeadToHeadSide struct {
	HabitRef
	Done []bool `json:"done"`
}

// HeadToHead is two habits charted over the same 14 days.
type HeadToHead struct {
	Labels []string       `json:"labels"`
	Days   []string       `json:"days"`
	A      HeadToHeadSide `json:"a"`
	B      HeadToHeadSide `json:"b"`
}

// Compare is the compare tab.
type Compare struct {
	Rows       []ComparisonRow `json:"rows"`
	HeadToHead *HeadToHead     `json:"headToHead,omitempty"`
}

// BuildCompare assembles the comparison table for every habit and the
// head-to-head chart for habits a and b. An empty a defaults to the first
// habit and an empty b to the second (or the first, with one habit).
// HeadToHead is nil for an empty registry.
func BuildCompare(e *analytics.Engine, a, b string) Compare {
	habits := e.Habits()
	c := Compare{Rows: make([]ComparisonRow, 0, len(habits))}
	for _, h := range habits {
		c.Rows = append(c.Rows, ComparisonRow{
			HabitRef:      refOf(h),
			Rate7:         mustRate(e, h.ID, 7),
			Rate30:        mustRate(e, h.ID, 30),
			CurrentStreak: e.CurrentStreak(h.ID),
			BestStreak:    e.BestStreak(h.ID),
		})
	}

	if len(habits) == 0 {
		return c
	}
	if a == "" {
		a = habits[0].ID
	}
	if b == "" {
		b = habits[min(1, len(habits)-1)].ID
	}
	h2h := BuildHeadToHead(e, a, b)
	c.HeadToHead = &h2h
	return c
}

// BuildHeadToHead charts two habits over the trailing 14 days. Unknown ids
// chart as never done, with only the id filled in.
func BuildHeadToHead(e *analytics.Engine, a, b string) HeadToHead {
	series := e.HeadToHead(a, b)
	out := HeadToHead{
		Labels: make([]string, len(series.Days)),
		Days:   make([]string, len(series.Days)),
		A:      HeadToHeadSide{HabitRef: lookupRef(e, a), Done: series.A},
		B:      HeadToHeadSide{HabitRef: lookupRef(e, b), Done: series.B},
	}
	for i, d := range series.Days {
		out.Labels[i] = dayLabel(d)
		out.Days[i] = d.Key()
	}
	return out
}

func lookupRef(e *analytics.Engine, id string) HabitRef {
	if h, ok := e.Habit(id); ok {
		return refOf(h)
	}
	return HabitRef{ID: id}
}

// mustRate reads a fixed-window rate; the windows used here are positive
// constants, so PeriodRate cannot fail.
func mustRate(e *analytics.Engine, id string, days int) int {
	rate, _ := e.PeriodRate(id, days)
	return rate
}
