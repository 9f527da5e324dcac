package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/studyeasy/studyeasy-backend/internal/handlers"
)

func SetupRoutes(r chi.Router) {
	// Auth routes
	r.Post("/register", handlers.Register)
	r.Post("/login", handlers.Login)
	r.Post("/logout", handlers.Logout)
	r.Get("/session", handlers.GetSession)

	// Habit routes
	r.Post("/habits", handlers.CreateHabit)
	r.Get("/habits", handlers.GetHabits)
	r.Put("/habits/{id}", handlers.UpdateStreak)

	// Task routes
	r.Post("/tasks", handlers.CreateTask)
	r.Get("/tasks", handlers.GetTasks)
	r.Put("/tasks/{id}", handlers.UpdateTask)

	// Habit/task sync and end-of-day cleanup
	r.Post("/sync-habits-to-tasks", handlers.SyncHabits)
	r.Post("/cleanup-daily-tasks", handlers.CleanupTasks)
}
