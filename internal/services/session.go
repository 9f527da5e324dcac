package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studyeasy/studyeasy-backend/internal/database"
)

const (
	// SessionDuration is 7 days
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping
	UserSessionKeyPrefix = "user_session:"
)

// CreateSession creates a new session for a user and stores it in Redis.
// An existing session for the same user is invalidated first so the 7-day
// timer always resets from the current login. Returns the session token.
func CreateSession(email string) (string, error) {
	InvalidateUserSessions(email)

	token := uuid.NewString()

	ctx := context.Background()
	if err := database.RedisClient.Set(ctx, SessionKeyPrefix+token, email, SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := database.RedisClient.Set(ctx, UserSessionKeyPrefix+email, token, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateSession checks a session token and returns the owning user's email.
func ValidateSession(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	email, err := database.RedisClient.Get(context.Background(), SessionKeyPrefix+token).Result()
	if err != nil {
		return "", false
	}
	return email, true
}

// InvalidateSession removes a session from Redis.
func InvalidateSession(token string) error {
	if token == "" {
		return nil
	}
	ctx := context.Background()
	email, err := database.RedisClient.Get(ctx, SessionKeyPrefix+token).Result()
	if err == nil {
		database.RedisClient.Del(ctx, UserSessionKeyPrefix+email)
	}
	return database.RedisClient.Del(ctx, SessionKeyPrefix+token).Err()
}

// InvalidateUserSessions removes the active session of a user, if any.
func InvalidateUserSessions(email string) {
	ctx := context.Background()
	token, err := database.RedisClient.Get(ctx, UserSessionKeyPrefix+email).Result()
	if err == nil {
		database.RedisClient.Del(ctx, SessionKeyPrefix+token)
	}
	database.RedisClient.Del(ctx, UserSessionKeyPrefix+email)
}
