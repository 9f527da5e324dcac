package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studyeasy/studyeasy-backend/internal/database"
	"github.com/studyeasy/studyeasy-backend/internal/models"
	"github.com/studyeasy/studyeasy-backend/internal/timeutil"
)

// storage is the slice of the habit and task collections the sync and
// cleanup services touch. Production uses the Mongo implementation; service
// tests substitute an in-memory store with the same insert-if-absent
// semantics the unique task index provides.
type storage interface {
	habitsFor(ctx context.Context, userEmail string) ([]models.Habit, error)
	// habitByID returns nil with no error when the habit does not exist.
	habitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error)
	appendMissedDay(ctx context.Context, habitID primitive.ObjectID, date string) error
	insertTaskIfAbsent(ctx context.Context, task models.Task) (bool, error)
	incompleteHabitTasks(ctx context.Context, userEmail string, win timeutil.Window) ([]models.Task, error)
	deleteTask(ctx context.Context, id primitive.ObjectID) error
}

var store storage = mongoStorage{}

type mongoStorage struct{}

func (mongoStorage) habitsFor(ctx context.Context, userEmail string) ([]models.Habit, error) {
	cursor, err := database.DB.Collection("habits").Find(ctx, bson.M{"user_email": userEmail})
	if err != nil {
		return nil, err
	}
	var habits []models.Habit
	if err := cursor.All(ctx, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

func (mongoStorage) habitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
	var habit models.Habit
	err := database.DB.Collection("habits").FindOne(ctx, bson.M{"_id": id}).Decode(&habit)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (mongoStorage) appendMissedDay(ctx context.Context, habitID primitive.ObjectID, date string) error {
	_, err := database.DB.Collection("habits").UpdateOne(ctx,
		bson.M{"_id": habitID},
		bson.M{"$push": bson.M{"streak": models.StreakEntry{Date: date, Completed: false}}},
	)
	return err
}

// insertTaskIfAbsent upserts the task keyed on (user, habit, due date) and
// reports whether this call created it. A duplicate-key error means a
// concurrent sync raced us to the insert; the task exists, which is what we
// wanted.
func (mongoStorage) insertTaskIfAbsent(ctx context.Context, task models.Task) (bool, error) {
	filter := bson.M{
		"user_email": task.UserEmail,
		"habit_id":   task.HabitID,
		"due_date":   task.DueDate,
	}
	res, err := database.DB.Collection("tasks").UpdateOne(ctx, filter,
		bson.M{"$setOnInsert": task},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (mongoStorage) incompleteHabitTasks(ctx context.Context, userEmail string, win timeutil.Window) ([]models.Task, error) {
	filter := bson.M{
		"user_email": userEmail,
		"due_date":   bson.M{"$gte": win.Start, "$lte": win.End},
		"completed":  false,
		"habit_id":   bson.M{"$exists": true, "$ne": nil},
	}
	cursor, err := database.DB.Collection("tasks").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (mongoStorage) deleteTask(ctx context.Context, id primitive.ObjectID) error {
	_, err := database.DB.Collection("tasks").DeleteOne(ctx, bson.M{"_id": id})
	return err
}
