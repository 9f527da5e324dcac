package config

import (
	"os"
	"strings"
)

type Config struct {
	MongoURI          string
	RedisURI          string
	Port              string
	AllowedOrigins    []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
	Environment       string   // ENV: production, development, etc.
	DisableCleanupJob bool     // set when multiple replicas run and only one should own the midnight job
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		if u := strings.TrimSpace(getEnv("FRONTEND_URL", "http://localhost:3000")); u != "" {
			allowedOrigins = append(allowedOrigins, u)
		}
	}

	return &Config{
		MongoURI:          getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/studyeasy")),
		RedisURI:          getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Port:              getEnv("PORT", "5000"),
		Environment:       env,
		AllowedOrigins:    allowedOrigins,
		DisableCleanupJob: getEnv("DISABLE_CLEANUP_JOB", "") != "",
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
