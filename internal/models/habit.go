package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Habit categories accepted by POST /habits.
var HabitCategories = []string{"Health", "Productivity", "Learning", "Other"}

// ValidCategory reports whether c is one of the known habit categories.
func ValidCategory(c string) bool {
	for _, v := range HabitCategories {
		if v == c {
			return true
		}
	}
	return false
}

// StreakEntry is one day's completion record in a habit's streak log.
// Date is an IST calendar date string ("2006-01-02") and acts as the key
// within the log: at most one entry exists per date.
type StreakEntry struct {
	Date      string `bson:"date" json:"date"`
	Completed bool   `bson:"completed" json:"completed"`
}

// Habit is a named recurring goal owned by a user. The streak log keeps
// insertion order, not calendar order; readers must look entries up by date.
type Habit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail string             `bson:"user_email" json:"userEmail"`
	Name      string             `bson:"name" json:"name"`
	Category  string             `bson:"category" json:"category"`
	Streak    []StreakEntry      `bson:"streak" json:"streak"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// StreakEntryFor returns the streak entry for date, or nil if none exists.
func (h *Habit) StreakEntryFor(date string) *StreakEntry {
	for i := range h.Streak {
		if h.Streak[i].Date == date {
			return &h.Streak[i]
		}
	}
	return nil
}

// SetStreakEntry records completion for date: the existing entry for that
// date is overwritten, otherwise a new entry is appended. Entries are never
// removed.
func (h *Habit) SetStreakEntry(date string, completed bool) {
	if entry := h.StreakEntryFor(date); entry != nil {
		entry.Completed = completed
		return
	}
	h.Streak = append(h.Streak, StreakEntry{Date: date, Completed: completed})
}

// MarkMissed appends a {date, false} entry only when no entry for date exists
// yet, and reports whether it did. An entry the user already recorded is left
// as-is, never overwritten.
func (h *Habit) MarkMissed(date string) bool {
	if h.StreakEntryFor(date) != nil {
		return false
	}
	h.Streak = append(h.Streak, StreakEntry{Date: date, Completed: false})
	return true
}
