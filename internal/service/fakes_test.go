package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/sakif/habitloop/internal/analytics"
	"github.com/sakif/habitloop/internal/apperror"
	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/model"
)

// fakeStore is an in-memory stand-in for the SQLite store. It implements
// every repository interface the services use. Setting err makes every
// call fail with it, to exercise the database-down paths.
type fakeStore struct {
	habits []model.Habit
	ledger model.Ledger
	nextID int
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{ledger: model.Ledger{}}
}

func (f *fakeStore) Create(_ context.Context, h *model.Habit) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	h.ID = fmt.Sprintf("fake-%d", f.nextID)
	f.habits = append(f.habits, *h)
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*model.Habit, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, h := range f.habits {
		if h.ID == id {
			out := h
			return &out, nil
		}
	}
	return nil, apperror.NotFound("habit", id)
}

func (f *fakeStore) List(context.Context) ([]model.Habit, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Habit, len(f.habits))
	copy(out, f.habits)
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, h *model.Habit) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.habits {
		if f.habits[i].ID == h.ID {
			f.habits[i] = *h
			return nil
		}
	}
	return apperror.NotFound("habit", h.ID)
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.habits {
		if f.habits[i].ID == id {
			f.habits = append(f.habits[:i], f.habits[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("habit", id)
}

func (f *fakeStore) SetCheckin(_ context.Context, day calendar.Date, habitID string, done bool) error {
	if f.err != nil {
		return f.err
	}
	f.ledger.Set(day, habitID, done)
	return nil
}

func (f *fakeStore) ToggleCheckin(_ context.Context, day calendar.Date, habitID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	done := !f.ledger.Done(day, habitID)
	f.ledger.Set(day, habitID, done)
	return done, nil
}

func (f *fakeStore) DayRecord(_ context.Context, day calendar.Date) (model.DayRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec := model.DayRecord{}
	for id, done := range f.ledger[day.Key()] {
		rec[id] = done
	}
	return rec, nil
}

func (f *fakeStore) Snapshot(context.Context) (model.Snapshot, error) {
	if f.err != nil {
		return model.Snapshot{}, f.err
	}
	return model.Snapshot{Habits: f.habits, Ledger: f.ledger}.Clone(), nil
}

// addHabit seeds a habit without going through validation.
func (f *fakeStore) addHabit(id, name string, schedule model.Schedule) {
	f.habits = append(f.habits, model.Habit{ID: id, Name: name, Icon: "*", Color: "#000000", Schedule: schedule})
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServices(t *testing.T, today calendar.Date) (*HabitService, *CheckinService, *AnalyticsService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	logger := quietLogger()
	clock := calendar.FixedClock(today)
	return NewHabitService(store, logger),
		NewCheckinService(store, store, clock, logger),
		NewAnalyticsService(store, clock, analytics.Options{}, logger),
		store
}
