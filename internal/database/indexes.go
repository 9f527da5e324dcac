package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes configures the indexes the app relies on. Called on startup
// from main after Mongo has connected.
//
// The unique partial index on tasks is what turns a concurrent habit-sync
// race into a duplicate-key error the sync service can swallow.
func EnsureIndexes(ctx context.Context) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetName("idx_phone_unique").SetUnique(true),
		},
	}
	for _, m := range userIndexes {
		if _, err := DB.Collection("users").Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}

	taskIndexes := []mongo.IndexModel{
		// One habit-linked task per (user, habit, day). Partial so plain
		// tasks without a habit reference are not constrained.
		{
			Keys: bson.D{
				{Key: "user_email", Value: 1},
				{Key: "habit_id", Value: 1},
				{Key: "due_date", Value: 1},
			},
			Options: options.Index().
				SetName("idx_user_habit_due_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "habit_id", Value: bson.D{{Key: "$exists", Value: true}}}}),
		},
		// Date-window listing queries.
		{
			Keys: bson.D{
				{Key: "user_email", Value: 1},
				{Key: "due_date", Value: 1},
			},
			Options: options.Index().SetName("idx_user_due"),
		},
	}
	for _, m := range taskIndexes {
		if _, err := DB.Collection("tasks").Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}

	// Habit listing is always scoped by owner.
	_, err := DB.Collection("habits").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_email", Value: 1}},
		Options: options.Index().SetName("idx_user_email"),
	})
	return err
}
