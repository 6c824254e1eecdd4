package report

import (
	"time"

	"github.com/sakif/habitloop/internal/analytics"
)

const performerCount = 3

// Performer is a ranked habit card.
type Performer struct {
	HabitRef
	Rate int `json:"rate"`
}

// DayPattern names a weekday and its completion rate.
type DayPattern struct {
	Day  string `json:"day"`
	Rate int    `json:"rate"`
}

// Patterns summarises when habits get done.
type Patterns struct {
	BestDay          *DayPattern `json:"bestDay,omitempty"`
	WorstDay         *DayPattern `json:"worstDay,omitempty"`
	Consistency      int         `json:"consistency"`
	ConsistencyLevel string      `json:"consistencyLevel"`
}

// Insights is the insights tab.
type Insights struct {
	TopPerformers  []Performer `json:"topPerformers"`
	NeedsAttention []Performer `json:"needsAttention"`
	BestDays       Series      `json:"bestDays"`
	Patterns       Patterns    `json:"patterns"`
}

// BuildInsights assembles the top three habits by 30-day rate, the bottom
// three by 7-day rate, the weekday chart and the pattern cards.
func BuildInsights(e *analytics.Engine) Insights {
	stats := e.DayOfWeek()
	return Insights{
		TopPerformers:  performers(e.TopPerformers(performerCount)),
		NeedsAttention: performers(e.BottomPerformers(performerCount)),
		BestDays:       BestDays(stats),
		Patterns:       BuildPatterns(stats, e.ConsistencyScore()),
	}
}

func performers(ranked []analytics.Ranked) []Performer {
	out := make([]Performer, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, Performer{HabitRef: refOf(r.Habit), Rate: r.Rate})
	}
	return out
}

// BestDays charts the weekday distribution, Sunday first.
func BestDays(stats analytics.WeekdayStats) Series {
	pct := stats.Percentages()
	s := Series{Labels: make([]string, 7), Values: make([]int, 7)}
	for i := range pct {
		s.Labels[i] = time.Weekday(i).String()
		s.Values[i] = pct[i]
	}
	return s
}

// BuildPatterns picks the best and worst weekdays and grades consistency.
func BuildPatterns(stats analytics.WeekdayStats, consistency int) Patterns {
	p := Patterns{Consistency: consistency, ConsistencyLevel: ConsistencyLevel(consistency)}
	pct := stats.Percentages()
	if day, ok := stats.Best(); ok {
		p.BestDay = &DayPattern{Day: day.String(), Rate: pct[day]}
	}
	if day, ok := stats.Worst(); ok {
		p.WorstDay = &DayPattern{Day: day.String(), Rate: pct[day]}
	}
	return p
}

// ConsistencyLevel grades a consistency score.
func ConsistencyLevel(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Needs Work"
	}
}
