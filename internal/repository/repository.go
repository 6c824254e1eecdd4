// Package repository declares the storage interfaces the services depend on.
//
// Services accept these interfaces and the composition root hands them a
// concrete store (today only internal/repository/sqlite). Tests swap in
// hand-written fakes.
package repository

import (
	"context"

	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/model"
)

// HabitRepository owns the habit registry.
//
// List returns habits in registry order (creation order). Delete removes
// the habit only; its check-ins stay in the ledger.
type HabitRepository interface {
	Create(ctx context.Context, habit *model.Habit) error
	GetByID(ctx context.Context, id string) (*model.Habit, error)
	List(ctx context.Context) ([]model.Habit, error)
	Update(ctx context.Context, habit *model.Habit) error
	Delete(ctx context.Context, id string) error
}

// CheckinRepository owns the completion ledger. Entries change one
// (day, habit) cell at a time.
type CheckinRepository interface {
	// SetCheckin stores the completion state of one cell.
	SetCheckin(ctx context.Context, day calendar.Date, habitID string, done bool) error
	// ToggleCheckin flips one cell atomically and returns the new state. A
	// cell never written before becomes true.
	ToggleCheckin(ctx context.Context, day calendar.Date, habitID string) (bool, error)
	// DayRecord returns every cell of one day; an untouched day is empty.
	DayRecord(ctx context.Context, day calendar.Date) (model.DayRecord, error)
}

// SnapshotSource hands out a consistent copy of the registry and ledger
// for the analytics core.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (model.Snapshot, error)
}
