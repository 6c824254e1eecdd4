package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/model"
	"github.com/sakif/habitloop/internal/repository"
)

var (
	_ repository.CheckinRepository = (*DB)(nil)
	_ repository.SnapshotSource    = (*DB)(nil)
)

// SetCheckin upserts one ledger cell.
func (db *DB) SetCheckin(ctx context.Context, day calendar.Date, habitID string, done bool) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO checkins (day, habit_id, done, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (day, habit_id) DO UPDATE SET done = excluded.done, updated_at = excluded.updated_at`,
		day.Key(), habitID, done, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: setting checkin %s/%s: %w", day.Key(), habitID, err)
	}
	return nil
}

// ToggleCheckin flips one cell in a single statement and reads the result
// back with RETURNING, so concurrent toggles of the same cell serialise.
func (db *DB) ToggleCheckin(ctx context.Context, day calendar.Date, habitID string) (bool, error) {
	var done bool
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO checkins (day, habit_id, done, updated_at)
		 VALUES (?, ?, 1, ?)
		 ON CONFLICT (day, habit_id) DO UPDATE SET done = 1 - checkins.done, updated_at = excluded.updated_at
		 RETURNING done`,
		day.Key(), habitID, time.Now().UTC(),
	).Scan(&done)
	if err != nil {
		return false, fmt.Errorf("sqlite: toggling checkin %s/%s: %w", day.Key(), habitID, err)
	}
	return done, nil
}

// DayRecord returns every stored cell of one day.
func (db *DB) DayRecord(ctx context.Context, day calendar.Date) (model.DayRecord, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT habit_id, done FROM checkins WHERE day = ?`, day.Key())
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading day %s: %w", day.Key(), err)
	}
	defer rows.Close()

	rec := model.DayRecord{}
	for rows.Next() {
		var (
			habitID string
			done    bool
		)
		if err := rows.Scan(&habitID, &done); err != nil {
			return nil, fmt.Errorf("sqlite: scanning checkin row: %w", err)
		}
		rec[habitID] = done
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating day %s: %w", day.Key(), err)
	}
	return rec, nil
}

// Snapshot reads the registry and the whole ledger inside one read
// transaction, so a toggle landing mid-read is either fully in or fully
// out of the copy.
func (db *DB) Snapshot(ctx context.Context) (model.Snapshot, error) {
	tx, err := db.conn.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("sqlite: beginning snapshot: %w", err)
	}
	// Read-only: rolling back is how the transaction ends.
	defer tx.Rollback()

	habits, err := listHabits(ctx, tx)
	if err != nil {
		return model.Snapshot{}, err
	}

	ledger, err := readLedger(ctx, tx)
	if err != nil {
		return model.Snapshot{}, err
	}

	return model.Snapshot{Habits: habits, Ledger: ledger}, nil
}

// readLedger loads every cell. Rows whose day key does not parse are
// skipped rather than failing the whole snapshot.
func readLedger(ctx context.Context, q queryer) (model.Ledger, error) {
	rows, err := q.QueryContext(ctx, `SELECT day, habit_id, done FROM checkins`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading ledger: %w", err)
	}
	defer rows.Close()

	ledger := model.Ledger{}
	for rows.Next() {
		var (
			key, habitID string
			done         bool
		)
		if err := rows.Scan(&key, &habitID, &done); err != nil {
			return nil, fmt.Errorf("sqlite: scanning ledger row: %w", err)
		}
		day, err := calendar.ParseKey(key)
		if err != nil {
			continue
		}
		ledger.Set(day, habitID, done)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating ledger: %w", err)
	}
	return ledger, nil
}
