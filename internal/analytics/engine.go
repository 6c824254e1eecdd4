// Package analytics computes streaks, completion rates and rankings over a
// habit snapshot.
//
// Every query is a pure function of (snapshot, today, options): nothing is
// cached, nothing is mutated, and asking twice gives the same answer. The
// engine never fails because data is missing: an unknown habit or an
// empty ledger yields zero. The only error it returns is
// apperror.ErrInvalidArgument, for a window length that makes no sense.
package analytics

import (
	"math"

	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/model"
)

// Fixed windows used by the dashboards.
const (
	DefaultLookback    = 365 // current-streak lookback cap, in days
	ConsistencyWindow  = 30
	DistributionWindow = 90
	TopWindow          = 30
	BottomWindow       = 7
	HeadToHeadWindow   = 14

	// MaxPeriodDays bounds every caller-chosen window, roughly ten years.
	MaxPeriodDays = 3650
)

// RatePolicy selects the denominator of PeriodRate.
type RatePolicy int

const (
	// RateCalendarDays divides by the window length, counting every
	// calendar day whether or not the habit was scheduled.
	RateCalendarDays RatePolicy = iota
	// RateApplicableDays divides by the scheduled days in the window only,
	// matching AllTimeRate.
	RateApplicableDays
)

// Options tunes the engine. The zero value is the default behaviour.
type Options struct {
	// Lookback caps how far back CurrentStreak and AnyStreak walk.
	// Zero means DefaultLookback.
	Lookback   int
	RatePolicy RatePolicy
}

func (o Options) lookback() int {
	if o.Lookback <= 0 {
		return DefaultLookback
	}
	return o.Lookback
}

// Engine answers analytics queries for one snapshot anchored at one day.
// The snapshot must not be mutated while the engine is in use.
type Engine struct {
	snap  model.Snapshot
	today calendar.Date
	opts  Options
}

// New builds an engine over snap with "today" fixed to today.
func New(snap model.Snapshot, today calendar.Date, opts Options) *Engine {
	return &Engine{snap: snap, today: today, opts: opts}
}

// Today returns the anchor day.
func (e *Engine) Today() calendar.Date { return e.today }

// Habits returns the registry in display order.
func (e *Engine) Habits() []model.Habit { return e.snap.Habits }

// Habit looks up a registry habit.
func (e *Engine) Habit(id string) (model.Habit, bool) { return e.snap.Habit(id) }

func (e *Engine) done(d calendar.Date, habitID string) bool {
	return e.snap.Ledger.Done(d, habitID)
}

// firstDay is where all-time scans begin: the earliest ledger day, or today
// when the ledger is empty or only holds future days.
func (e *Engine) firstDay() calendar.Date {
	start, ok := e.snap.Ledger.Earliest()
	if !ok || start.After(e.today) {
		return e.today
	}
	return start
}

// Percent returns num/den as a rounded integer percentage; 0 when den is 0.
// Every percentage the engine reports goes through it.
func Percent(num, den int) int { return percent(num, den) }

func percent(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(num) * 100 / float64(den)))
}
