package analytics

import (
	"sort"

	"github.com/sakif/habitloop/internal/model"
)

// TotalReps counts every completed (habit, day) cell in the whole ledger,
// including cells of habits that have since been deleted.
func (e *Engine) TotalReps() int {
	total := 0
	for _, rec := range e.snap.Ledger {
		for _, done := range rec {
			if done {
				total++
			}
		}
	}
	return total
}

// HabitReps counts completed days for one habit id across the ledger.
func (e *Engine) HabitReps(habitID string) int {
	n := 0
	for _, rec := range e.snap.Ledger {
		if rec[habitID] {
			n++
		}
	}
	return n
}

// RepShare is one registry habit's part of the grand rep total.
type RepShare struct {
	Habit model.Habit
	Reps  int
	Share int // percent of TotalReps, rounded
}

// RepsByHabit returns every registry habit with its rep count and share of
// TotalReps, most reps first. Equal counts keep registry order.
func (e *Engine) RepsByHabit() []RepShare {
	counts := make(map[string]int, len(e.snap.Habits))
	total := 0
	for _, rec := range e.snap.Ledger {
		for id, done := range rec {
			if done {
				counts[id]++
				total++
			}
		}
	}

	out := make([]RepShare, 0, len(e.snap.Habits))
	for _, h := range e.snap.Habits {
		out = append(out, RepShare{Habit: h, Reps: counts[h.ID], Share: percent(counts[h.ID], total)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Reps > out[j].Reps })
	return out
}

// Milestone is a rep-count badge.
type Milestone struct {
	Count  int    `json:"count"`
	Label  string `json:"label"`
	Earned bool   `json:"earned"`
}

var milestoneLevels = []Milestone{
	{Count: 1, Label: "1st Rep"},
	{Count: 7, Label: "7 Days"},
	{Count: 14, Label: "2 Weeks"},
	{Count: 30, Label: "30 Days"},
	{Count: 60, Label: "2 Months"},
	{Count: 100, Label: "100 Days"},
	{Count: 365, Label: "1 Year"},
}

// Milestones returns every badge level with Earned set for reps.
func Milestones(reps int) []Milestone {
	out := make([]Milestone, len(milestoneLevels))
	for i, m := range milestoneLevels {
		m.Earned = reps >= m.Count
		out[i] = m
	}
	return out
}
