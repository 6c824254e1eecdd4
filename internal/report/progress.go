package report

import (
	"github.com/sakif/habitloop/internal/analytics"
)

// HabitProgress is one habit's slice of the rep total with its badges.
type HabitProgress struct {
	HabitRef
	Reps       int                   `json:"reps"`
	Share      int                   `json:"share"`
	Milestones []analytics.Milestone `json:"milestones"`
}

// Progress is the progress view: the rep total, its badges, and the
// per-habit breakdown (most reps first, habits without reps left out).
type Progress struct {
	TotalReps  int                   `json:"totalReps"`
	Milestones []analytics.Milestone `json:"milestones"`
	Breakdown  []HabitProgress       `json:"breakdown"`
}

// BuildProgress assembles the rep totals and milestone cards.
func BuildProgress(e *analytics.Engine) Progress {
	total := e.TotalReps()
	p := Progress{
		TotalReps:  total,
		Milestones: analytics.Milestones(total),
		Breakdown:  []HabitProgress{},
	}
	for _, rs := range e.RepsByHabit() {
		if rs.Reps == 0 {
			continue
		}
		p.Breakdown = append(p.Breakdown, HabitProgress{
			HabitRef:   refOf(rs.Habit),
			Reps:       rs.Reps,
			Share:      rs.Share,
			Milestones: analytics.Milestones(rs.Reps),
		})
	}
	return p
}

// HabitCard is a habit as the daily view shows it.
type HabitCard struct {
	HabitRef
	Schedule       string `json:"schedule"`
	Why            string `json:"why,omitempty"`
	Scheduled      bool   `json:"scheduled"`
	Done           bool   `json:"done"`
	CurrentStreak  int    `json:"currentStreak"`
	CompletionRate int    `json:"completionRate"`
}

// Dashboard is the daily view: today's cards and the headline stats.
type Dashboard struct {
	Date              string      `json:"date"`
	WeekProgress      int         `json:"weekProgress"`
	TotalCheckins     int         `json:"totalCheckins"`
	BestStreak        int         `json:"bestStreak"`
	ActiveStreak      int         `json:"activeStreak"`
	AverageCompletion int         `json:"averageCompletion"`
	AllDone           bool        `json:"allDone"`
	Habits            []HabitCard `json:"habits"`
}

// BuildDashboard assembles the daily view anchored at the engine's today.
// BestStreak is the longest run any habit ever had; ActiveStreak is the
// longest streak still running.
func BuildDashboard(e *analytics.Engine) Dashboard {
	today := e.Today()
	d := Dashboard{
		Date:              today.Key(),
		WeekProgress:      e.WeekProgress(),
		TotalCheckins:     e.TotalReps(),
		ActiveStreak:      e.BestCurrentStreak(),
		AverageCompletion: e.AverageCompletion(),
		AllDone:           e.AllScheduledDone(today),
		Habits:            make([]HabitCard, 0, len(e.Habits())),
	}
	for _, h := range e.Habits() {
		d.BestStreak = max(d.BestStreak, e.BestStreak(h.ID))
		scheduled := h.AppliesOn(today)
		d.Habits = append(d.Habits, HabitCard{
			HabitRef:       refOf(h),
			Schedule:       string(h.Schedule),
			Why:            h.Why,
			Scheduled:      scheduled,
			Done:           scheduled && e.CompletionSeries(h.ID, 1).Done[0],
			CurrentStreak:  e.CurrentStreak(h.ID),
			CompletionRate: e.AllTimeRate(h.ID),
		})
	}
	return d
}

// HabitStats is the per-habit detail panel.
type HabitStats struct {
	HabitRef
	CurrentStreak int                   `json:"currentStreak"`
	BestStreak    int                   `json:"bestStreak"`
	PeriodDays    int                   `json:"periodDays"`
	PeriodRate    int                   `json:"periodRate"`
	AllTimeRate   int                   `json:"allTimeRate"`
	Reps          int                   `json:"reps"`
	Milestones    []analytics.Milestone `json:"milestones"`
}

// BuildHabitStats assembles one habit's numbers with a days-long period
// rate. days outside 1..analytics.MaxPeriodDays is an invalid argument and
// is rejected before any per-habit work.
func BuildHabitStats(e *analytics.Engine, habitID string, days int) (HabitStats, error) {
	rate, err := e.PeriodRate(habitID, days)
	if err != nil {
		return HabitStats{}, err
	}
	reps := 0
	if _, ok := e.Habit(habitID); ok {
		reps = e.HabitReps(habitID)
	}
	return HabitStats{
		HabitRef:      lookupRef(e, habitID),
		CurrentStreak: e.CurrentStreak(habitID),
		BestStreak:    e.BestStreak(habitID),
		PeriodDays:    days,
		PeriodRate:    rate,
		AllTimeRate:   e.AllTimeRate(habitID),
		Reps:          reps,
		Milestones:    analytics.Milestones(reps),
	}, nil
}
