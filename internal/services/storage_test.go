package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/studyeasy/studyeasy-backend/internal/models"
	"github.com/studyeasy/studyeasy-backend/internal/timeutil"
)

// memStorage mirrors the Mongo store's contract, including the unique
// (user, habit, due date) constraint for habit-linked tasks.
type memStorage struct {
	habits map[primitive.ObjectID]*models.Habit
	tasks  map[primitive.ObjectID]models.Task
}

func newMemStorage() *memStorage {
	return &memStorage{
		habits: map[primitive.ObjectID]*models.Habit{},
		tasks:  map[primitive.ObjectID]models.Task{},
	}
}

// useMemStorage swaps the package store for an in-memory one for the
// duration of the test.
func useMemStorage(t *testing.T) *memStorage {
	t.Helper()
	mem := newMemStorage()
	prev := store
	store = mem
	t.Cleanup(func() { store = prev })
	return mem
}

func (m *memStorage) addHabit(userEmail, name string) *models.Habit {
	h := &models.Habit{
		ID:        primitive.NewObjectID(),
		UserEmail: userEmail,
		Name:      name,
		Category:  "Learning",
		Streak:    []models.StreakEntry{},
		CreatedAt: time.Now(),
	}
	m.habits[h.ID] = h
	return h
}

func (m *memStorage) addTask(task models.Task) models.Task {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	m.tasks[task.ID] = task
	return task
}

func (m *memStorage) habitsFor(_ context.Context, userEmail string) ([]models.Habit, error) {
	var out []models.Habit
	for _, h := range m.habits {
		if h.UserEmail == userEmail {
			out = append(out, *h)
		}
	}
	return out, nil
}

// habitByID returns a detached copy, the way a decoded Mongo document is;
// only appendMissedDay writes back to the canonical habit.
func (m *memStorage) habitByID(_ context.Context, id primitive.ObjectID) (*models.Habit, error) {
	h, ok := m.habits[id]
	if !ok {
		return nil, nil
	}
	detached := *h
	detached.Streak = append([]models.StreakEntry(nil), h.Streak...)
	return &detached, nil
}

func (m *memStorage) appendMissedDay(_ context.Context, habitID primitive.ObjectID, date string) error {
	h := m.habits[habitID]
	h.Streak = append(h.Streak, models.StreakEntry{Date: date, Completed: false})
	return nil
}

func (m *memStorage) insertTaskIfAbsent(_ context.Context, task models.Task) (bool, error) {
	for _, existing := range m.tasks {
		if existing.UserEmail == task.UserEmail &&
			existing.HabitID != nil && task.HabitID != nil &&
			*existing.HabitID == *task.HabitID &&
			existing.DueDate.Equal(*task.DueDate) {
			return false, nil
		}
	}
	m.tasks[task.ID] = task
	return true, nil
}

func (m *memStorage) incompleteHabitTasks(_ context.Context, userEmail string, win timeutil.Window) ([]models.Task, error) {
	var out []models.Task
	for _, task := range m.tasks {
		if task.UserEmail != userEmail || task.Completed || !task.HabitLinked() || task.DueDate == nil {
			continue
		}
		if task.DueDate.Before(win.Start) || task.DueDate.After(win.End) {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (m *memStorage) deleteTask(_ context.Context, id primitive.ObjectID) error {
	delete(m.tasks, id)
	return nil
}
