package report

import (
	"fmt"

	"github.com/sakif/habitloop/internal/analytics"
	"github.com/sakif/habitloop/internal/apperror"
	"github.com/sakif/habitloop/internal/calendar"
)

// Heatmap spans, in weeks. MaxHeatmapWeeks keeps the grid inside
// analytics.MaxPeriodDays.
const (
	DefaultHeatmapWeeks = 26
	MaxHeatmapWeeks     = 520
)

// CellState is what a heatmap cell shows.
type CellState string

const (
	CellFilled CellState = "filled"
	CellMissed CellState = "missed"
	CellNA     CellState = "na"     // habit not scheduled that day
	CellFuture CellState = "future" // after today, in the current week
)

// HeatmapCell is one day of the grid.
type HeatmapCell struct {
	Date  string    `json:"date"`
	State CellState `json:"state"`
	Today bool      `json:"today,omitempty"`
}

// Heatmap is a weeks x 7 grid of one habit's history. Each row is a week
// starting on Sunday, oldest row first; the last row holds today.
type Heatmap struct {
	HabitID string          `json:"habitId"`
	Weeks   [][]HeatmapCell `json:"weeks"`
}

// CheckHeatmapWeeks reports whether weeks is a usable heatmap span.
func CheckHeatmapWeeks(weeks int) error {
	if weeks <= 0 || weeks > MaxHeatmapWeeks {
		return apperror.InvalidArgument("weeks",
			fmt.Sprintf("heatmap span must be between 1 and %d, got %d", MaxHeatmapWeeks, weeks))
	}
	return nil
}

// BuildHeatmap lays out the last weeks weeks of habitID. weeks outside
// 1..MaxHeatmapWeeks is an invalid argument. Cells of an unknown habit are
// never filled.
func BuildHeatmap(e *analytics.Engine, habitID string, weeks int) (Heatmap, error) {
	if err := CheckHeatmapWeeks(weeks); err != nil {
		return Heatmap{}, err
	}

	today := e.Today()
	start := calendar.StartOfWeek(today).AddDays(-7 * (weeks - 1))
	h, known := e.Habit(habitID)
	series := e.CompletionSeries(habitID, calendar.DaysBetween(start, today)+1)
	done := make(map[calendar.Date]bool, len(series.Days))
	for i, d := range series.Days {
		done[d] = series.Done[i]
	}

	hm := Heatmap{HabitID: habitID, Weeks: make([][]HeatmapCell, 0, weeks)}
	for w := 0; w < weeks; w++ {
		row := make([]HeatmapCell, 7)
		for i := range row {
			d := start.AddDays(7*w + i)
			cell := HeatmapCell{Date: d.Key(), Today: d == today}
			switch {
			case d.After(today):
				cell.State = CellFuture
			case known && !h.AppliesOn(d):
				cell.State = CellNA
			case done[d]:
				cell.State = CellFilled
			default:
				cell.State = CellMissed
			}
			row[i] = cell
		}
		hm.Weeks = append(hm.Weeks, row)
	}
	return hm, nil
}
