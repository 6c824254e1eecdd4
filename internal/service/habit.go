// Package service holds the business rules between the HTTP handlers (or
// the CLI) and the store.
//
//	Handler (HTTP)  → parses requests, writes responses
//	Service         → validates, enforces rules, orchestrates
//	Repository      → reads and writes the database
//
// Services accept repository interfaces, never *sqlite.DB, so tests run
// against in-memory fakes. They return apperror values and leave HTTP status
// codes to the handler.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sakif/habitloop/internal/apperror"
	"github.com/sakif/habitloop/internal/model"
	"github.com/sakif/habitloop/internal/repository"
)

// Validation limits for habit fields.
const (
	MaxHabitNameLength = 60
	MaxIconLength      = 16
	MaxWhyLength       = 280
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// HabitInput is the editable part of a habit. Create and Update take the
// same shape: an edit replaces every field.
type HabitInput struct {
	Name     string
	Icon     string
	Color    string
	Schedule model.Schedule
	Why      string
}

// normalize trims the input, fills the default schedule and checks every
// field. The first failing field is reported.
func (in HabitInput) normalize() (HabitInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	in.Color = strings.TrimSpace(in.Color)
	in.Why = strings.TrimSpace(in.Why)
	if in.Schedule == "" {
		in.Schedule = model.ScheduleDaily
	}

	switch {
	case in.Name == "":
		return in, apperror.ValidationFailed("name", "habit name is required")
	case utf8.RuneCountInString(in.Name) > MaxHabitNameLength:
		return in, apperror.ValidationFailed("name",
			fmt.Sprintf("habit name must be %d characters or less", MaxHabitNameLength))
	case in.Icon == "":
		return in, apperror.ValidationFailed("icon", "habit icon is required")
	case utf8.RuneCountInString(in.Icon) > MaxIconLength:
		return in, apperror.ValidationFailed("icon",
			fmt.Sprintf("habit icon must be %d characters or less", MaxIconLength))
	case !colorPattern.MatchString(in.Color):
		return in, apperror.ValidationFailed("color", "color must look like #RRGGBB")
	case !in.Schedule.Valid():
		return in, apperror.ValidationFailed("schedule",
			fmt.Sprintf("schedule must be %q or %q", model.ScheduleDaily, model.ScheduleWeekdays))
	case utf8.RuneCountInString(in.Why) > MaxWhyLength:
		return in, apperror.ValidationFailed("why",
			fmt.Sprintf("why must be %d characters or less", MaxWhyLength))
	}
	return in, nil
}

// HabitService manages the habit registry.
type HabitService struct {
	repo   repository.HabitRepository
	logger *slog.Logger
}

// NewHabitService creates a HabitService.
func NewHabitService(repo repository.HabitRepository, logger *slog.Logger) *HabitService {
	return &HabitService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and stores a new habit at the end of the registry.
func (s *HabitService) Create(ctx context.Context, in HabitInput) (*model.Habit, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	habit := &model.Habit{
		Name:     in.Name,
		Icon:     in.Icon,
		Color:    in.Color,
		Schedule: in.Schedule,
		Why:      in.Why,
	}
	if err := s.repo.Create(ctx, habit); err != nil {
		s.logger.Error("failed to create habit",
			slog.String("name", in.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating habit: %w", err)
	}

	s.logger.Info("habit created",
		slog.String("id", habit.ID),
		slog.String("name", habit.Name),
		slog.String("schedule", string(habit.Schedule)),
	)
	return habit, nil
}

// GetByID returns one habit, or apperror.ErrNotFound.
func (s *HabitService) GetByID(ctx context.Context, id string) (*model.Habit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "habit ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// List returns the registry in display order.
func (s *HabitService) List(ctx context.Context) ([]model.Habit, error) {
	habits, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list habits", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing habits: %w", err)
	}
	return habits, nil
}

// Update replaces every editable field of an existing habit. Its ID,
// position in the registry and check-in history are kept.
func (s *HabitService) Update(ctx context.Context, id string, in HabitInput) (*model.Habit, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in, err = in.normalize()
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Icon = in.Icon
	existing.Color = in.Color
	existing.Schedule = in.Schedule
	existing.Why = in.Why

	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.Error("failed to update habit",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating habit: %w", err)
	}

	s.logger.Info("habit updated", slog.String("id", existing.ID))
	return existing, nil
}

// Delete removes a habit from the registry. Past check-ins stay in the
// ledger and keep counting toward total reps.
func (s *HabitService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "habit ID is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("habit deleted", slog.String("id", id))
	return nil
}
