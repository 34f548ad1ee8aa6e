// Package seed loads the demo users and tasks into an empty database.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yukikurage/taskbot-api/internal/models"
	"github.com/yukikurage/taskbot-api/internal/repository"
	"github.com/yukikurage/taskbot-api/internal/services"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "password123"

type userSeed struct {
	username string
	fullName string
}

var users = []userSeed{
	{"admin", "Admin User"},
	{"john", "John Doe"},
	{"jane", "Jane Smith"},
	{"bob", "Bob Wilson"},
}

type taskSeed struct {
	title        string
	description  string
	status       models.TaskStatus
	deadlineDays int
	assignee     string
	creator      string
}

var tasks = []taskSeed{
	{"Complete API documentation", "Write comprehensive API documentation for all endpoints", models.TaskStatusInProgress, 7, "john", "admin"},
	{"Fix login bug", "Users are unable to login with special characters in password", models.TaskStatusTodo, 3, "jane", "admin"},
	{"Setup CI/CD pipeline", "Configure GitHub Actions for automated testing and deployment", models.TaskStatusDone, -2, "john", "admin"},
	{"Design new dashboard", "Create mockups for the new admin dashboard", models.TaskStatusInProgress, 14, "bob", "john"},
	{"Database optimization", "Optimize slow queries and add proper indexes", models.TaskStatusTodo, 0, "jane", "admin"},
}

// Result summarizes a seed run.
type Result struct {
	Users   int
	Tasks   int
	Skipped bool
}

// Run inserts the demo data in one transaction. Deadlines are relative to today.
// Nothing is written when any user already exists.
func Run(ctx context.Context, db *gorm.DB, today time.Time) (Result, error) {
	var result Result

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userRepo := repository.NewUserRepository(tx)
		userService := services.NewUserService(userRepo)
		taskService := services.NewTaskService(repository.NewTaskRepository(tx), userRepo)

		count, err := userService.CountUsers(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			result.Skipped = true
			return nil
		}

		ids := make(map[string]uint64, len(users))
		for _, u := range users {
			user, err := userService.CreateUser(ctx, services.CreateUserInput{
				Username: u.username,
				Email:    u.username + "@example.com",
				FullName: u.fullName,
				Password: DefaultPassword,
			})
			if err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.username, err)
			}
			ids[u.username] = user.ID
			result.Users++
		}

		for _, t := range tasks {
			description := t.description
			deadline := models.NewDate(today.AddDate(0, 0, t.deadlineDays))
			assignee := ids[t.assignee]

			if _, err := taskService.CreateTask(ctx, services.CreateTaskInput{
				Title:       t.title,
				Description: &description,
				Status:      t.status,
				Deadline:    &deadline,
				AssigneeID:  &assignee,
				CreatorID:   ids[t.creator],
			}); err != nil {
				return fmt.Errorf("failed to seed task %q: %w", t.title, err)
			}
			result.Tasks++
		}

		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if result.Skipped {
		slog.Info("Database already initialized, skipping seed")
	} else {
		slog.Info("Seed completed", "users", result.Users, "tasks", result.Tasks)
	}
	return result, nil
}

// Reset deletes the seeded users. Their created tasks go with them and
// their assignments are cleared. It returns the number of users removed.
func Reset(ctx context.Context, db *gorm.DB) (int, error) {
	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)

	removed := 0
	for _, u := range users {
		user, err := userRepo.FindByUsername(ctx, u.username)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return removed, err
		}

		if err := userService.DeleteUser(ctx, user.ID); err != nil {
			return removed, fmt.Errorf("failed to delete user %s: %w", u.username, err)
		}
		removed++
	}

	slog.Info("Seed data removed", "users", removed)
	return removed, nil
}
