package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/studyeasy/studyeasy-backend/internal/config"
	"github.com/studyeasy/studyeasy-backend/internal/database"
	"github.com/studyeasy/studyeasy-backend/internal/middleware"
	"github.com/studyeasy/studyeasy-backend/internal/routes"
	"github.com/studyeasy/studyeasy-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Ensure MongoDB indexes (unique user email/phone, unique habit-task triple)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}
	cancel()

	// Midnight-IST cleanup job: marks missed habit days and removes the
	// day's habit-linked tasks, per user, failures isolated per user
	if cfg.DisableCleanupJob {
		log.Println("Daily cleanup job disabled (DISABLE_CLEANUP_JOB set)")
	} else {
		services.StartDailyCleanup()
		log.Println("✅ Daily cleanup job scheduled (midnight IST)")
	}

	r := newRouter(cfg)

	log.Printf("🚀 Study-Easy backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func newRouter(cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check stays outside the rate-limited group so platform
	// liveness probes never eat into a client's request budget.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit)
		routes.SetupRoutes(r)
	})

	return r
}
