// Package state holds the screen-facing habit list as an immutable snapshot.
// A snapshot is never mutated: each confirmed mutation produces a replacement,
// so a view can hold one value and swap it wholesale.
package state

import "github.com/dukerupert/habitly/internal/model"

type Snapshot struct {
	habits []model.Habit
}

// NewSnapshot copies habits into a fresh snapshot.
func NewSnapshot(habits []model.Habit) Snapshot {
	return Snapshot{habits: append([]model.Habit(nil), habits...)}
}

// Habits returns a copy of the snapshot's habits in server order.
func (s Snapshot) Habits() []model.Habit {
	return append([]model.Habit(nil), s.habits...)
}

func (s Snapshot) Len() int { return len(s.habits) }

// Find returns the habit with the given id.
func (s Snapshot) Find(id int64) (model.Habit, bool) {
	for _, h := range s.habits {
		if h.ID == id {
			return h, true
		}
	}
	return model.Habit{}, false
}

// WithHabit appends a newly created habit.
func (s Snapshot) WithHabit(h model.Habit) Snapshot {
	next := append(append([]model.Habit(nil), s.habits...), h)
	return Snapshot{habits: next}
}

// WithUpdated replaces the habit matching h.ID; a no-op if the id is unknown.
func (s Snapshot) WithUpdated(h model.Habit) Snapshot {
	next := append([]model.Habit(nil), s.habits...)
	for i := range next {
		if next[i].ID == h.ID {
			next[i] = h
		}
	}
	return Snapshot{habits: next}
}

// Without drops the habit with the given id.
func (s Snapshot) Without(id int64) Snapshot {
	next := make([]model.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		if h.ID != id {
			next = append(next, h)
		}
	}
	return Snapshot{habits: next}
}
