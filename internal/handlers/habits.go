package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studyeasy/studyeasy-backend/internal/database"
	"github.com/studyeasy/studyeasy-backend/internal/models"
	"github.com/studyeasy/studyeasy-backend/internal/timeutil"
)

type CreateHabitRequest struct {
	UserEmail string `json:"userEmail"`
	Name      string `json:"name"`
	Category  string `json:"category"`
}

type UpdateStreakRequest struct {
	Date      string `json:"date"`
	Completed *bool  `json:"completed"`
}

// CreateHabit handles POST /habits.
func CreateHabit(w http.ResponseWriter, r *http.Request) {
	var req CreateHabitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.UserEmail == "" || req.Name == "" || req.Category == "" {
		fieldError(w, http.StatusBadRequest, "server", "All fields are required")
		return
	}
	if !models.ValidCategory(req.Category) {
		fieldError(w, http.StatusBadRequest, "category", "Unknown habit category")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	habit := models.Habit{
		ID:        primitive.NewObjectID(),
		UserEmail: req.UserEmail,
		Name:      req.Name,
		Category:  req.Category,
		Streak:    []models.StreakEntry{},
		CreatedAt: time.Now(),
	}
	if _, err := database.DB.Collection("habits").InsertOne(ctx, habit); err != nil {
		serverError(w, "Habit creation error", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Habit added successfully",
		"habit":   habit,
	})
}

// GetHabits handles GET /habits?userEmail=.
func GetHabits(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("userEmail")
	if userEmail == "" {
		fieldError(w, http.StatusBadRequest, "server", "User email is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("habits").Find(ctx, bson.M{"user_email": userEmail})
	if err != nil {
		serverError(w, "Habit fetch error", err)
		return
	}
	habits := []models.Habit{}
	if err := cursor.All(ctx, &habits); err != nil {
		serverError(w, "Habit fetch error", err)
		return
	}

	writeJSON(w, http.StatusOK, habits)
}

// UpdateStreak handles PUT /habits/{id}: it upserts the streak entry for one
// date, overwriting an existing entry rather than duplicating it. Future
// dates are rejected; the client greys them out, but the server is the
// authority.
func UpdateStreak(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		fieldError(w, http.StatusBadRequest, "server", "Invalid habit id")
		return
	}

	var req UpdateStreakRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Date == "" || req.Completed == nil {
		fieldError(w, http.StatusBadRequest, "server", "Date and completion status are required")
		return
	}
	if _, err := time.ParseInLocation("2006-01-02", req.Date, timeutil.IST); err != nil {
		fieldError(w, http.StatusBadRequest, "date", "Date must be formatted YYYY-MM-DD")
		return
	}
	// ISO date strings compare lexicographically
	if req.Date > timeutil.DateString(time.Now()) {
		fieldError(w, http.StatusBadRequest, "date", "Cannot record a future date")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var habit models.Habit
	err = database.DB.Collection("habits").FindOne(ctx, bson.M{"_id": id}).Decode(&habit)
	if err == mongo.ErrNoDocuments {
		fieldError(w, http.StatusNotFound, "server", "Habit not found")
		return
	}
	if err != nil {
		serverError(w, "Streak update error", err)
		return
	}

	habit.SetStreakEntry(req.Date, *req.Completed)
	_, err = database.DB.Collection("habits").UpdateOne(ctx,
		bson.M{"_id": habit.ID},
		bson.M{"$set": bson.M{"streak": habit.Streak}},
	)
	if err != nil {
		serverError(w, "Streak update error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Streak updated successfully",
		"habit":   habit,
	})
}
