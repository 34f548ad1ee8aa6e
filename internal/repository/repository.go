package repository

import (
	"context"

	"github.com/yukikurage/taskbot-api/internal/models"
)

// TaskRepository defines the interface for task data access.
// Every read returns tasks with Assignee and Creator preloaded.
type TaskRepository interface {
	// Create inserts a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination, plus the filtered total
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// ListAll retrieves every task in ID order
	ListAll(ctx context.Context) ([]models.Task, error)

	// Update persists every column of the task and refreshes updated_at
	Update(ctx context.Context, task *models.Task) error

	// Delete hard deletes a task
	Delete(ctx context.Context, id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status     *models.TaskStatus
	AssigneeID *uint64
	Page       int
	PageSize   int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// List returns every user in ID order
	List(ctx context.Context) ([]models.User, error)

	// Exists reports whether a user with the given ID exists
	Exists(ctx context.Context, id uint64) (bool, error)

	// Count returns the number of users
	Count(ctx context.Context) (int64, error)

	// Delete removes a user, deleting the tasks they created and unassigning the rest
	Delete(ctx context.Context, id uint64) error
}
