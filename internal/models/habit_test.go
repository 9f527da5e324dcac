package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStreakEntryOverwritesNotDuplicates(t *testing.T) {
	h := &Habit{Streak: []StreakEntry{}}

	h.SetStreakEntry("2025-03-01", true)
	h.SetStreakEntry("2025-03-01", false)
	h.SetStreakEntry("2025-03-01", true)

	require.Len(t, h.Streak, 1)
	assert.Equal(t, "2025-03-01", h.Streak[0].Date)
	assert.True(t, h.Streak[0].Completed)
}

func TestStreakKeepsInsertionOrder(t *testing.T) {
	// Entries arrive out of calendar order (user back-fills a missed day);
	// the log keeps insertion order and readers look up by date.
	h := &Habit{}
	h.SetStreakEntry("2025-03-03", true)
	h.SetStreakEntry("2025-03-01", true)
	h.SetStreakEntry("2025-03-02", false)

	require.Len(t, h.Streak, 3)
	assert.Equal(t, "2025-03-03", h.Streak[0].Date)
	assert.Equal(t, "2025-03-01", h.Streak[1].Date)

	entry := h.StreakEntryFor("2025-03-02")
	require.NotNil(t, entry)
	assert.False(t, entry.Completed)
	assert.Nil(t, h.StreakEntryFor("2025-03-04"))
}

func TestMarkMissedDoesNotOverwrite(t *testing.T) {
	h := &Habit{}
	h.SetStreakEntry("2025-03-01", true)

	// The user already recorded the day; cleanup must not flip it
	assert.False(t, h.MarkMissed("2025-03-01"))
	require.Len(t, h.Streak, 1)
	assert.True(t, h.Streak[0].Completed)

	assert.True(t, h.MarkMissed("2025-03-02"))
	require.Len(t, h.Streak, 2)
	assert.False(t, h.Streak[1].Completed)

	// Repeat miss-marking is idempotent
	assert.False(t, h.MarkMissed("2025-03-02"))
	assert.Len(t, h.Streak, 2)
}

func TestValidCategory(t *testing.T) {
	for _, c := range HabitCategories {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("health"))
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("Fitness"))
}
