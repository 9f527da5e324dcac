package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studyeasy/studyeasy-backend/internal/database"
	"github.com/studyeasy/studyeasy-backend/internal/models"
	"github.com/studyeasy/studyeasy-backend/internal/timeutil"
)

type CreateTaskRequest struct {
	UserEmail string `json:"userEmail"`
	Title     string `json:"title"`
	DueDate   string `json:"dueDate,omitempty"`
	HabitID   string `json:"habitId,omitempty"`
}

type UpdateTaskRequest struct {
	Completed *bool `json:"completed"`
}

// CreateTask handles POST /tasks.
func CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.UserEmail == "" || req.Title == "" {
		fieldError(w, http.StatusBadRequest, "server", "User email and title are required")
		return
	}

	task := models.Task{
		ID:        primitive.NewObjectID(),
		UserEmail: req.UserEmail,
		Title:     req.Title,
		Completed: false,
		CreatedAt: time.Now(),
	}
	if req.DueDate != "" {
		due, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			fieldError(w, http.StatusBadRequest, "dueDate", "Due date must be an ISO-8601 instant")
			return
		}
		task.DueDate = &due
	}
	if req.HabitID != "" {
		habitID, err := primitive.ObjectIDFromHex(req.HabitID)
		if err != nil {
			fieldError(w, http.StatusBadRequest, "habitId", "Invalid habit id")
			return
		}
		task.HabitID = &habitID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.DB.Collection("tasks").InsertOne(ctx, task); err != nil {
		serverError(w, "Task creation error", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task added successfully",
		"task":    task,
	})
}

// GetTasks handles GET /tasks?userEmail=&{today|dueSoon|month}=. At most one
// date-window intent applies; without one the listing is scoped only by
// owner.
func GetTasks(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("userEmail")
	if userEmail == "" {
		fieldError(w, http.StatusBadRequest, "server", "User email is required")
		return
	}

	filter := bson.M{"user_email": userEmail}
	q := r.URL.Query()
	switch {
	case q.Get("dueSoon") == "true":
		win := timeutil.DueSoon(time.Now())
		filter["due_date"] = bson.M{"$gte": win.Start, "$lte": win.End}
	case q.Get("month") != "":
		year, month, ok := parseMonthParam(q.Get("month"))
		if !ok {
			fieldError(w, http.StatusBadRequest, "month", "Month must be formatted YYYY-M")
			return
		}
		win := timeutil.Month(year, month)
		filter["due_date"] = bson.M{"$gte": win.Start, "$lte": win.End}
	case q.Get("today") == "true":
		win := timeutil.Today(time.Now())
		filter["due_date"] = bson.M{"$gte": win.Start, "$lte": win.End}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("tasks").Find(ctx, filter)
	if err != nil {
		serverError(w, "Task fetch error", err)
		return
	}
	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		serverError(w, "Task fetch error", err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// parseMonthParam parses a "YYYY-M" month query value.
func parseMonthParam(s string) (year, month int, ok bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

// UpdateTask handles PUT /tasks/{id}, toggling completion. Unchecking a
// habit-linked task also forces the habit's streak entry for the task's due
// date to incomplete; checking one deliberately does not touch the streak —
// marking a day complete is an explicit streak click.
func UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		fieldError(w, http.StatusBadRequest, "server", "Invalid task id")
		return
	}

	var req UpdateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Completed == nil {
		fieldError(w, http.StatusBadRequest, "server", "Completion status is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var task models.Task
	err = database.DB.Collection("tasks").FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		fieldError(w, http.StatusNotFound, "server", "Task not found")
		return
	}
	if err != nil {
		serverError(w, "Task update error", err)
		return
	}

	task.Completed = *req.Completed
	_, err = database.DB.Collection("tasks").UpdateOne(ctx,
		bson.M{"_id": task.ID},
		bson.M{"$set": bson.M{"completed": task.Completed}},
	)
	if err != nil {
		serverError(w, "Task update error", err)
		return
	}

	if task.NeedsStreakReset() {
		if err := syncStreakIncomplete(ctx, task); err != nil {
			serverError(w, "Task update error", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task updated successfully",
		"task":    task,
	})
}

// syncStreakIncomplete forces the streak entry for the task's IST due date to
// incomplete, keeping task and habit consistent on the unchecking path. A
// habit deleted after the task was created is not an error.
func syncStreakIncomplete(ctx context.Context, task models.Task) error {
	var habit models.Habit
	err := database.DB.Collection("habits").FindOne(ctx, bson.M{"_id": task.HabitID}).Decode(&habit)
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return err
	}

	habit.SetStreakEntry(timeutil.DateString(*task.DueDate), false)
	_, err = database.DB.Collection("habits").UpdateOne(ctx,
		bson.M{"_id": habit.ID},
		bson.M{"$set": bson.M{"streak": habit.Streak}},
	)
	return err
}
