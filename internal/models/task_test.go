package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNeedsStreakResetOnlyWhenUnchecking(t *testing.T) {
	habitID := primitive.NewObjectID()
	due := time.Now()

	linked := Task{HabitID: &habitID, DueDate: &due, Completed: false}
	assert.True(t, linked.NeedsStreakReset())

	checked := linked
	checked.Completed = true
	assert.False(t, checked.NeedsStreakReset())

	unlinked := Task{DueDate: &due, Completed: false}
	assert.False(t, unlinked.NeedsStreakReset())

	noDue := Task{HabitID: &habitID, Completed: false}
	assert.False(t, noDue.NeedsStreakReset())
}

func TestTaskStreakSyncIsOneDirectional(t *testing.T) {
	habitID := primitive.NewObjectID()
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	date := "2025-03-01"

	habit := &Habit{}
	habit.SetStreakEntry(date, true)
	task := Task{HabitID: &habitID, DueDate: &due, Completed: true}

	// Checking the task does not touch the streak
	require.False(t, task.NeedsStreakReset())
	entry := habit.StreakEntryFor(date)
	require.NotNil(t, entry)
	assert.True(t, entry.Completed)

	// Unchecking it forces the entry for the due date back to incomplete
	task.Completed = false
	require.True(t, task.NeedsStreakReset())
	habit.SetStreakEntry(date, false)

	require.Len(t, habit.Streak, 1)
	assert.False(t, habit.StreakEntryFor(date).Completed)
}
