package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/studyeasy/studyeasy-backend/internal/services"
)

type SyncRequest struct {
	UserEmail string `json:"userEmail"`
}

// SyncHabits handles POST /sync-habits-to-tasks. The habit list view calls
// this on every load; the underlying upsert makes repeats harmless.
func SyncHabits(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserEmail == "" {
		fieldError(w, http.StatusBadRequest, "server", "User email is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := services.SyncHabitsToTasks(ctx, req.UserEmail)
	if err != nil {
		serverError(w, "Sync habits error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Habits synced to tasks",
		"tasks":   created,
	})
}

// CleanupTasks handles POST /cleanup-daily-tasks, a manual trigger for the
// per-user pass the midnight scheduler runs for everyone.
func CleanupTasks(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserEmail == "" {
		fieldError(w, http.StatusBadRequest, "server", "User email is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := services.CleanupDailyTasks(ctx, req.UserEmail); err != nil {
		serverError(w, "Cleanup tasks error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Daily tasks cleaned up"})
}
