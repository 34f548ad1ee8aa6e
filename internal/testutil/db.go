// Package testutil holds database fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskbot-api/internal/config"
	"github.com/yukikurage/taskbot-api/internal/database"
	"github.com/yukikurage/taskbot-api/internal/models"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database that is closed when the test ends.
// The pool holds a single connection so every statement sees the same memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Connect(config.DatabaseConfig{
		Driver:      "sqlite",
		Name:        ":memory:",
		PoolSize:    1,
		MaxOverflow: 0,
		LogLevel:    "error",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t testing.TB, db *gorm.DB, username, fullName string) *models.User {
	t.Helper()

	user := &models.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "hashedpassword",
		FullName:       fullName,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// TaskOption customizes a task created by CreateTask.
type TaskOption func(*models.Task)

// WithStatus sets the task status.
func WithStatus(status models.TaskStatus) TaskOption {
	return func(task *models.Task) { task.Status = status }
}

// WithAssignee sets the task assignee.
func WithAssignee(userID uint64) TaskOption {
	return func(task *models.Task) { task.AssigneeID = &userID }
}

// WithDeadline sets the task deadline.
func WithDeadline(t time.Time) TaskOption {
	return func(task *models.Task) {
		d := models.NewDate(t)
		task.Deadline = &d
	}
}

// WithCreatedAt pins the creation timestamp.
func WithCreatedAt(t time.Time) TaskOption {
	return func(task *models.Task) {
		task.CreatedAt = t
		task.UpdatedAt = t
	}
}

// CreateTask inserts a task owned by creatorID.
func CreateTask(t testing.TB, db *gorm.DB, title string, creatorID uint64, opts ...TaskOption) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:     title,
		Status:    models.TaskStatusTodo,
		CreatedBy: creatorID,
	}
	for _, opt := range opts {
		opt(task)
	}
	require.NoError(t, db.Omit("Assignee", "Creator").Create(task).Error)
	return task
}
