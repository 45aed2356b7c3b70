package state

import (
	"testing"

	"github.com/dukerupert/habitly/internal/model"
)

func habit(id int64, name string) model.Habit {
	return model.Habit{ID: id, Name: name, List: model.DefaultList()}
}

func TestSnapshotIsImmutable(t *testing.T) {
	source := []model.Habit{habit(1, "a"), habit(2, "b")}
	snap := NewSnapshot(source)

	// Mutating the source slice must not leak into the snapshot.
	source[0].Name = "changed"
	if got, _ := snap.Find(1); got.Name != "a" {
		t.Errorf("snapshot saw source mutation: name = %q", got.Name)
	}

	// Deriving a new snapshot must not change the old one.
	next := snap.Without(1)
	if snap.Len() != 2 {
		t.Errorf("original Len = %d after Without, want 2", snap.Len())
	}
	if next.Len() != 1 {
		t.Errorf("derived Len = %d, want 1", next.Len())
	}
}

func TestWithHabitAppends(t *testing.T) {
	snap := NewSnapshot([]model.Habit{habit(1, "a")}).WithHabit(habit(2, "b"))
	habits := snap.Habits()
	if len(habits) != 2 || habits[1].ID != 2 {
		t.Errorf("habits = %+v", habits)
	}
}

func TestWithUpdatedReplacesByID(t *testing.T) {
	snap := NewSnapshot([]model.Habit{habit(1, "a"), habit(2, "b")})

	updated := habit(2, "b2")
	next := snap.WithUpdated(updated)
	if got, _ := next.Find(2); got.Name != "b2" {
		t.Errorf("updated name = %q, want b2", got.Name)
	}
	// Unknown ids are a no-op.
	same := snap.WithUpdated(habit(99, "ghost"))
	if same.Len() != 2 {
		t.Errorf("Len = %d after unknown update, want 2", same.Len())
	}
	if _, ok := same.Find(99); ok {
		t.Error("unknown update inserted a habit")
	}
}

func TestWithoutPreservesOrder(t *testing.T) {
	snap := NewSnapshot([]model.Habit{habit(3, "c"), habit(1, "a"), habit(2, "b")})
	next := snap.Without(1)
	habits := next.Habits()
	if len(habits) != 2 || habits[0].ID != 3 || habits[1].ID != 2 {
		t.Errorf("habits = %+v, want ids 3,2", habits)
	}
}
