package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/habitloop/internal/apperror"
	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/metrics"
	"github.com/sakif/habitloop/internal/model"
	"github.com/sakif/habitloop/internal/repository"
)

// Checkin is the state of one ledger cell after a write.
type Checkin struct {
	Day     string `json:"day"`
	HabitID string `json:"habitId"`
	Done    bool   `json:"done"`
}

// CheckinService writes the completion ledger.
//
// Writes are accepted only for registry habits and on days up to today.
// Marking a day done also requires the habit to be scheduled that day;
// clearing does not. Reads of a day are unrestricted.
type CheckinService struct {
	habits   repository.HabitRepository
	checkins repository.CheckinRepository
	clock    calendar.Clock
	logger   *slog.Logger
}

// NewCheckinService creates a CheckinService. clock decides what "today"
// is for the future-day check.
func NewCheckinService(habits repository.HabitRepository, checkins repository.CheckinRepository, clock calendar.Clock, logger *slog.Logger) *CheckinService {
	return &CheckinService{
		habits:   habits,
		checkins: checkins,
		clock:    clock,
		logger:   logger,
	}
}

// Set stores the completion state of one habit on one day. On a day the
// habit is not scheduled only done=false is accepted, so cells left over
// from an earlier schedule can still be cleared.
func (s *CheckinService) Set(ctx context.Context, dayKey, habitID string, done bool) (*Checkin, error) {
	habitID = strings.TrimSpace(habitID)
	day, habit, err := s.writable(ctx, dayKey, habitID)
	if err != nil {
		return nil, err
	}
	if done && !habit.AppliesOn(day) {
		return nil, notScheduled(habit, day)
	}

	if err := s.checkins.SetCheckin(ctx, day, habitID, done); err != nil {
		s.logger.Error("failed to set checkin",
			slog.String("day", day.Key()),
			slog.String("habit_id", habitID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("setting checkin: %w", err)
	}
	metrics.IncrementCheckinWrite("set", done)

	s.logger.Debug("checkin set",
		slog.String("day", day.Key()),
		slog.String("habit_id", habitID),
		slog.Bool("done", done),
	)
	return &Checkin{Day: day.Key(), HabitID: habitID, Done: done}, nil
}

// Toggle flips the completion state of one habit on one day. On a day the
// habit is not scheduled a toggle can only clear a done cell.
func (s *CheckinService) Toggle(ctx context.Context, dayKey, habitID string) (*Checkin, error) {
	habitID = strings.TrimSpace(habitID)
	day, habit, err := s.writable(ctx, dayKey, habitID)
	if err != nil {
		return nil, err
	}
	if !habit.AppliesOn(day) {
		return s.clearUnscheduled(ctx, day, habit)
	}

	done, err := s.checkins.ToggleCheckin(ctx, day, habitID)
	if err != nil {
		s.logger.Error("failed to toggle checkin",
			slog.String("day", day.Key()),
			slog.String("habit_id", habitID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("toggling checkin: %w", err)
	}
	metrics.IncrementCheckinWrite("toggle", done)

	s.logger.Debug("checkin toggled",
		slog.String("day", day.Key()),
		slog.String("habit_id", habitID),
		slog.Bool("done", done),
	)
	return &Checkin{Day: day.Key(), HabitID: habitID, Done: done}, nil
}

// Day returns every stored cell of one day, deleted habits included.
func (s *CheckinService) Day(ctx context.Context, dayKey string) (model.DayRecord, error) {
	day, err := parseDay(dayKey)
	if err != nil {
		return nil, err
	}
	rec, err := s.checkins.DayRecord(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("reading day: %w", err)
	}
	return rec, nil
}

// clearUnscheduled turns a toggle on an unscheduled day into a clear. An
// empty cell stays empty and the toggle is rejected. The write is a plain
// set to false, so two racing toggles can never leave the cell done.
func (s *CheckinService) clearUnscheduled(ctx context.Context, day calendar.Date, habit *model.Habit) (*Checkin, error) {
	rec, err := s.checkins.DayRecord(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("reading day: %w", err)
	}
	if !rec[habit.ID] {
		return nil, notScheduled(habit, day)
	}
	if err := s.checkins.SetCheckin(ctx, day, habit.ID, false); err != nil {
		s.logger.Error("failed to clear checkin",
			slog.String("day", day.Key()),
			slog.String("habit_id", habit.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("clearing checkin: %w", err)
	}
	metrics.IncrementCheckinWrite("toggle", false)

	s.logger.Info("cleared checkin on unscheduled day",
		slog.String("day", day.Key()),
		slog.String("habit_id", habit.ID),
	)
	return &Checkin{Day: day.Key(), HabitID: habit.ID, Done: false}, nil
}

// writable checks that (dayKey, habitID) names an existing habit and a day
// that is not in the future. Schedule rules are left to the caller.
func (s *CheckinService) writable(ctx context.Context, dayKey, habitID string) (calendar.Date, *model.Habit, error) {
	day, err := parseDay(dayKey)
	if err != nil {
		return calendar.Date{}, nil, err
	}
	if day.After(s.clock.Today()) {
		return calendar.Date{}, nil, apperror.ValidationFailed("day", "cannot check in on a future day")
	}

	if habitID == "" {
		return calendar.Date{}, nil, apperror.ValidationFailed("habitId", "habit ID is required")
	}
	habit, err := s.habits.GetByID(ctx, habitID)
	if err != nil {
		return calendar.Date{}, nil, err
	}
	return day, habit, nil
}

func notScheduled(habit *model.Habit, day calendar.Date) error {
	return apperror.ValidationFailed("day",
		fmt.Sprintf("%s is a weekday-only habit and %s is a %s", habit.Name, day.Key(), day.Weekday()))
}

func parseDay(key string) (calendar.Date, error) {
	day, err := calendar.ParseKey(strings.TrimSpace(key))
	if err != nil {
		return calendar.Date{}, apperror.ValidationFailed("day", "day must be formatted as YYYY-MM-DD")
	}
	return day, nil
}
