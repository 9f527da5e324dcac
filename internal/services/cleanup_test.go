package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/studyeasy/studyeasy-backend/internal/models"
	"github.com/studyeasy/studyeasy-backend/internal/timeutil"
)

func todayTask(userEmail string, habitID *primitive.ObjectID, completed bool) models.Task {
	due := timeutil.StartOfDay(time.Now())
	return models.Task{
		ID:        primitive.NewObjectID(),
		UserEmail: userEmail,
		Title:     "Read",
		DueDate:   &due,
		Completed: completed,
		HabitID:   habitID,
		CreatedAt: time.Now(),
	}
}

func TestCleanupMarksMissedAndRemovesTask(t *testing.T) {
	mem := useMemStorage(t)
	habit := mem.addHabit("asha@gmail.com", "Read")
	task := mem.addTask(todayTask("asha@gmail.com", &habit.ID, false))

	require.NoError(t, CleanupDailyTasks(context.Background(), "asha@gmail.com"))

	today := timeutil.DateString(time.Now())
	entry := habit.StreakEntryFor(today)
	require.NotNil(t, entry)
	assert.False(t, entry.Completed)

	_, exists := mem.tasks[task.ID]
	assert.False(t, exists)
}

func TestCleanupNeverOverwritesExistingEntry(t *testing.T) {
	mem := useMemStorage(t)
	habit := mem.addHabit("asha@gmail.com", "Read")
	today := timeutil.DateString(time.Now())

	// The user already marked the day complete via a streak click but never
	// checked the daily task off
	habit.SetStreakEntry(today, true)
	task := mem.addTask(todayTask("asha@gmail.com", &habit.ID, false))

	require.NoError(t, CleanupDailyTasks(context.Background(), "asha@gmail.com"))

	require.Len(t, habit.Streak, 1)
	assert.True(t, habit.StreakEntryFor(today).Completed)

	_, exists := mem.tasks[task.ID]
	assert.False(t, exists)
}

func TestCleanupRemovesTaskWhenHabitGone(t *testing.T) {
	mem := useMemStorage(t)
	orphanedHabitID := primitive.NewObjectID()
	task := mem.addTask(todayTask("asha@gmail.com", &orphanedHabitID, false))

	require.NoError(t, CleanupDailyTasks(context.Background(), "asha@gmail.com"))

	_, exists := mem.tasks[task.ID]
	assert.False(t, exists, "orphaned task must still be removed")
}

func TestCleanupLeavesOtherTasksAlone(t *testing.T) {
	mem := useMemStorage(t)
	habit := mem.addHabit("asha@gmail.com", "Read")

	// Completed habit task, plain unlinked task, and another user's task
	// all survive the pass
	done := mem.addTask(todayTask("asha@gmail.com", &habit.ID, true))
	plain := mem.addTask(todayTask("asha@gmail.com", nil, false))
	other := mem.addTask(todayTask("ravi@gmail.com", &habit.ID, false))

	require.NoError(t, CleanupDailyTasks(context.Background(), "asha@gmail.com"))

	for _, id := range []primitive.ObjectID{done.ID, plain.ID, other.ID} {
		_, exists := mem.tasks[id]
		assert.True(t, exists)
	}
	assert.Empty(t, habit.Streak)
}
