// Package report assembles analytics results into the labeled datasets a
// presentation layer draws: chart labels plus aligned value series, ranked
// cards, tables and heatmap grids.
//
// Every Build function is a read-only query over an *analytics.Engine. The
// output is plain data with JSON tags; formatting beyond short day and
// month labels is left to the renderer.
package report

import (
	"time"

	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/model"
)

// Series is a chart dataset: one label per value.
type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// HabitRef is the identifying part of a habit a renderer needs.
type HabitRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func refOf(h model.Habit) HabitRef {
	return HabitRef{ID: h.ID, Name: h.Name, Icon: h.Icon, Color: h.Color}
}

func weekdayLabel(d calendar.Date) string { return d.Time(time.UTC).Format("Mon") }
func monthLabel(d calendar.Date) string { return d.Time(time.UTC).Format("Jan") }
func dayLabel(d calendar.Date) string { return d.Time(time.UTC).Format("Jan 2") }

// shortName truncates long habit names for chart axes.
func shortName(name string, limit int) string {
	r := []rune(name)
	if len(r) <= limit {
		return name
	}
	return string(r[:limit]) + "..."
}
