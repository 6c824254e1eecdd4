package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/habitloop/internal/apperror"
	"github.com/sakif/habitloop/internal/model"
	"github.com/sakif/habitloop/internal/repository"
)

var _ repository.HabitRepository = (*DB)(nil)

const habitColumns = `id, name, icon, color, schedule, why, created_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner, h *model.Habit) error {
	var schedule string
	if err := row.Scan(&h.ID, &h.Name, &h.Icon, &h.Color, &schedule, &h.Why, &h.CreatedAt); err != nil {
		return err
	}
	h.Schedule = model.Schedule(schedule)
	return nil
}

// Create inserts a habit at the end of the registry. It assigns the ID
// (an xid: 20 URL-safe chars, sortable by creation time) and CreatedAt on
// the caller's struct.
func (db *DB) Create(ctx context.Context, habit *model.Habit) error {
	habit.ID = xid.New().String()
	habit.CreatedAt = time.Now().UTC()

	// The position subquery runs inside the INSERT, so two concurrent
	// creates cannot pick the same slot.
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO habits (id, position, name, icon, color, schedule, why, created_at, updated_at)
		 VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM habits), ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID,
		habit.Name,
		habit.Icon,
		habit.Color,
		string(habit.Schedule),
		habit.Why,
		habit.CreatedAt,
		habit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating habit: %w", err)
	}
	return nil
}

// GetByID retrieves a single habit. sql.ErrNoRows becomes apperror.NotFound
// so the handler can answer 404.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Habit, error) {
	var h model.Habit
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	if err := scanHabit(row, &h); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("habit", id)
		}
		return nil, fmt.Errorf("sqlite: getting habit %s: %w", id, err)
	}
	return &h, nil
}

// List returns the whole registry in display order. A personal tracker
// holds a handful of habits, so there is no pagination.
func (db *DB) List(ctx context.Context) ([]model.Habit, error) {
	return listHabits(ctx, db.conn)
}

// queryer is the read surface shared by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listHabits(ctx context.Context, q queryer) ([]model.Habit, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+habitColumns+` FROM habits ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing habits: %w", err)
	}
	defer rows.Close()

	habits := make([]model.Habit, 0)
	for rows.Next() {
		var h model.Habit
		if err := scanHabit(rows, &h); err != nil {
			return nil, fmt.Errorf("sqlite: scanning habit row: %w", err)
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating habits: %w", err)
	}
	return habits, nil
}

// Update replaces every editable field of a habit. ID, position and
// CreatedAt never change. Zero rows affected means the habit is gone.
func (db *DB) Update(ctx context.Context, habit *model.Habit) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE habits
		 SET name = ?, icon = ?, color = ?, schedule = ?, why = ?, updated_at = ?
		 WHERE id = ?`,
		habit.Name,
		habit.Icon,
		habit.Color,
		string(habit.Schedule),
		habit.Why,
		time.Now().UTC(),
		habit.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating habit %s: %w", habit.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("habit", habit.ID)
	}
	return nil
}

// Delete removes a habit from the registry. Its check-ins are left alone.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting habit %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("habit", id)
	}
	return nil
}
