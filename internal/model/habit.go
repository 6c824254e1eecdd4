// Package model defines the data structures shared by the store, the
// analytics core and the HTTP layer.
package model

import (
	"time"

	"github.com/sakif/habitloop/internal/calendar"
)

// Schedule says on which days a habit is tracked.
type Schedule string

const (
	// ScheduleDaily habits apply every day.
	ScheduleDaily Schedule = "daily"
	// ScheduleWeekdays habits apply Monday through Friday only.
	ScheduleWeekdays Schedule = "weekdays"
)

// Valid reports whether s is a known schedule.
func (s Schedule) Valid() bool {
	return s == ScheduleDaily || s == ScheduleWeekdays
}

// Habit is a user-defined recurring task.
//
// ID is assigned by the store on creation and never changes; an edit
// replaces every other field (CreatedAt is kept).
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"` // "#RRGGBB"
	Schedule  Schedule  `json:"schedule"`
	Why       string    `json:"why,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AppliesOn reports whether the habit is tracked on d. Weekday-only habits
// are inapplicable on Saturdays and Sundays; an inapplicable day is skipped
// by streaks and left out of rate denominators.
func (h Habit) AppliesOn(d calendar.Date) bool {
	return !(h.Schedule == ScheduleWeekdays && d.IsWeekend())
}
