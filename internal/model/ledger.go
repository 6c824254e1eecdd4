package model

import (
	"sort"

	"github.com/sakif/habitloop/internal/calendar"
)

// DayRecord maps habit IDs to whether they were completed on one day.
type DayRecord map[string]bool

// Ledger is the day-keyed completion record. A missing day-key, or a
// missing habit inside a day, reads as "not completed"; queries never fail
// because data is absent.
//
// Entries for deleted habits are kept. Queries that enumerate the current
// registry never look them up.
type Ledger map[string]DayRecord

// Done reports whether habitID was completed on d.
func (l Ledger) Done(d calendar.Date, habitID string) bool {
	return l[d.Key()][habitID]
}

// Set records the completion state of habitID on d, creating the day entry
// on first touch.
func (l Ledger) Set(d calendar.Date, habitID string, done bool) {
	key := d.Key()
	rec, ok := l[key]
	if !ok {
		rec = make(DayRecord)
		l[key] = rec
	}
	rec[habitID] = done
}

// Earliest returns the oldest valid day-key in the ledger. ok is false when
// the ledger holds no parseable keys.
func (l Ledger) Earliest() (d calendar.Date, ok bool) {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	// YYYY-MM-DD sorts chronologically as a string.
	sort.Strings(keys)
	for _, k := range keys {
		parsed, err := calendar.ParseKey(k)
		if err == nil {
			return parsed, true
		}
	}
	return calendar.Date{}, false
}

// Clone returns a deep copy, so a query can hold a snapshot while the
// owner keeps mutating the original.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for day, rec := range l {
		cp := make(DayRecord, len(rec))
		for id, done := range rec {
			cp[id] = done
		}
		out[day] = cp
	}
	return out
}

// Snapshot is the immutable input of every analytics query: the habit
// registry in display order plus the ledger.
type Snapshot struct {
	Habits []Habit
	Ledger Ledger
}

// Habit looks up a registry entry by ID.
func (s Snapshot) Habit(id string) (Habit, bool) {
	for _, h := range s.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	habits := make([]Habit, len(s.Habits))
	copy(habits, s.Habits)
	return Snapshot{Habits: habits, Ledger: s.Ledger.Clone()}
}
