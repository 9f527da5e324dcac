package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/studyeasy/studyeasy-backend/internal/models"
	"github.com/studyeasy/studyeasy-backend/internal/timeutil"
)

// SyncHabitsToTasks ensures every habit of the user has exactly one task for
// the current IST day and returns the tasks created by this call. Repeated
// calls within the same day are no-ops reporting zero new tasks.
func SyncHabitsToTasks(ctx context.Context, userEmail string) ([]models.Task, error) {
	habits, err := store.habitsFor(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	dayStart := timeutil.StartOfDay(time.Now())

	created := []models.Task{}
	for _, habit := range habits {
		habitID := habit.ID
		due := dayStart
		task := models.Task{
			ID:        primitive.NewObjectID(),
			UserEmail: userEmail,
			Title:     habit.Name,
			DueDate:   &due,
			Completed: false,
			HabitID:   &habitID,
			CreatedAt: time.Now(),
		}

		// Insert-if-absent keyed on (user, habit, start-of-day). An
		// existing task is left untouched.
		inserted, err := store.insertTaskIfAbsent(ctx, task)
		if err != nil {
			return nil, err
		}
		if inserted {
			created = append(created, task)
		}
	}
	return created, nil
}
