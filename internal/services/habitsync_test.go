package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyeasy/studyeasy-backend/internal/timeutil"
)

func TestSyncCreatesOneTaskPerHabit(t *testing.T) {
	mem := useMemStorage(t)
	read := mem.addHabit("asha@gmail.com", "Read")
	run := mem.addHabit("asha@gmail.com", "Run")

	created, err := SyncHabitsToTasks(context.Background(), "asha@gmail.com")
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Len(t, mem.tasks, 2)

	dayStart := timeutil.StartOfDay(time.Now())
	titles := map[string]bool{}
	for _, task := range created {
		titles[task.Title] = true
		assert.Equal(t, "asha@gmail.com", task.UserEmail)
		assert.False(t, task.Completed)
		require.NotNil(t, task.DueDate)
		assert.True(t, task.DueDate.Equal(dayStart))
		require.NotNil(t, task.HabitID)
		assert.Contains(t, []string{read.ID.Hex(), run.ID.Hex()}, task.HabitID.Hex())
	}
	assert.True(t, titles["Read"])
	assert.True(t, titles["Run"])
}

func TestSyncTwiceSameDayIsIdempotent(t *testing.T) {
	mem := useMemStorage(t)
	mem.addHabit("asha@gmail.com", "Read")

	first, err := SyncHabitsToTasks(context.Background(), "asha@gmail.com")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// The repeat call must neither duplicate the task nor report a creation
	second, err := SyncHabitsToTasks(context.Background(), "asha@gmail.com")
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, mem.tasks, 1)
}

func TestSyncOnlyTouchesOwnUser(t *testing.T) {
	mem := useMemStorage(t)
	mem.addHabit("asha@gmail.com", "Read")
	mem.addHabit("ravi@gmail.com", "Run")

	created, err := SyncHabitsToTasks(context.Background(), "asha@gmail.com")
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "Read", created[0].Title)
	assert.Len(t, mem.tasks, 1)
}
