package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/studyeasy/studyeasy-backend/internal/database"
	"github.com/studyeasy/studyeasy-backend/internal/models"
	"github.com/studyeasy/studyeasy-backend/internal/timeutil"
)

// CleanupDailyTasks finalizes the current IST day for one user: every
// incomplete habit-linked task due today marks its habit's streak as missed
// (unless the user already recorded an entry for today), then the task record
// is removed. Unlinked tasks carry over by simply not being touched.
func CleanupDailyTasks(ctx context.Context, userEmail string) error {
	win := timeutil.Today(time.Now())
	today := timeutil.DateString(win.Start)

	tasks, err := store.incompleteHabitTasks(ctx, userEmail, win)
	if err != nil {
		return err
	}

	for _, task := range tasks {
		if err := finalizeTask(ctx, task, today); err != nil {
			return err
		}
	}
	return nil
}

// finalizeTask records the miss on the habit-linked task's habit and deletes
// the task. The task is deleted even when its habit no longer exists, so a
// habit deleted mid-day cannot leave orphaned daily tasks behind.
func finalizeTask(ctx context.Context, task models.Task, today string) error {
	habit, err := store.habitByID(ctx, *task.HabitID)
	if err != nil {
		return err
	}
	switch {
	case habit == nil:
		log.Printf("Habit %s gone, removing its task %q", task.HabitID.Hex(), task.Title)
	case habit.MarkMissed(today):
		if err := store.appendMissedDay(ctx, habit.ID, today); err != nil {
			return err
		}
	}

	return store.deleteTask(ctx, task.ID)
}

// CleanupAllUsers runs the daily cleanup for every registered user. A failure
// for one user is logged and does not abort the batch.
func CleanupAllUsers() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cursor, err := database.DB.Collection("users").Find(ctx, bson.M{})
	if err != nil {
		log.Printf("Cleanup: failed to list users: %v", err)
		return
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		log.Printf("Cleanup: failed to read users: %v", err)
		return
	}

	for _, user := range users {
		userCtx, userCancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := CleanupDailyTasks(userCtx, user.Email); err != nil {
			log.Printf("Cleanup failed for %s: %v", user.Email, err)
		}
		userCancel()
	}
	log.Printf("Daily cleanup finished for %d users", len(users))
}

// StartDailyCleanup starts a background goroutine that runs the cleanup batch
// at every midnight IST.
func StartDailyCleanup() {
	go func() {
		for {
			next := timeutil.NextMidnight(time.Now())
			time.Sleep(time.Until(next))
			log.Println("Running daily task cleanup")
			CleanupAllUsers()
		}
	}()
}
