package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is a to-do item, optionally linked to the habit it was generated from.
// A habit-linked task for a given (user, habit, day) is unique; the tasks
// collection carries a matching unique index.
type Task struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserEmail string              `bson:"user_email" json:"userEmail"`
	Title     string              `bson:"title" json:"title"`
	DueDate   *time.Time          `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	Completed bool                `bson:"completed" json:"completed"`
	HabitID   *primitive.ObjectID `bson:"habit_id,omitempty" json:"habitId,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
}

// HabitLinked reports whether the task was generated from a habit.
func (t *Task) HabitLinked() bool {
	return t.HabitID != nil && !t.HabitID.IsZero()
}

// NeedsStreakReset reports whether saving this completion state must force
// the habit's streak entry for the due date back to incomplete. Only the
// unchecking path syncs into the streak; completing a task never marks a
// day complete — that takes an explicit streak click.
func (t *Task) NeedsStreakReset() bool {
	return t.HabitLinked() && !t.Completed && t.DueDate != nil
}
