package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yukikurage/taskbot-api/internal/constants"
	"github.com/yukikurage/taskbot-api/internal/models"
	"github.com/yukikurage/taskbot-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrAssigneeNotFound = errors.New("assignee user not found")
	ErrTitleInvalid     = fmt.Errorf("title must be between %d and %d characters", constants.MinTitleLength, constants.MaxTitleLength)
	ErrInvalidStatus    = errors.New("status must be one of todo, in_progress, done")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status     *models.TaskStatus
	AssigneeID *uint64
	Page       int
	PageSize   int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      models.TaskStatus
	Deadline    *models.Date
	AssigneeID  *uint64
	CreatorID   uint64
}

// UpdateTaskInput represents a partial update. Nil pointers leave a field
// untouched; the Clear flags set the nullable fields to null.
type UpdateTaskInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *models.TaskStatus
	Deadline         *models.Date
	ClearDeadline    bool
	AssigneeID       *uint64
	ClearAssignee    bool
}

// ListTasks returns one page of tasks matching the filters and the total number of matches
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, int64, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}

	tasks, total, err := s.taskRepo.List(ctx, repository.TaskFilter{
		Status:     input.Status,
		AssigneeID: input.AssigneeID,
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with its assignee and creator
func (s *TaskService) GetTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask validates and stores a new task owned by input.CreatorID
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	// Zero means unassigned
	assigneeID := input.AssigneeID
	if assigneeID != nil && *assigneeID == 0 {
		assigneeID = nil
	}
	if assigneeID != nil {
		if err := s.ensureAssigneeExists(ctx, *assigneeID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Deadline:    input.Deadline,
		AssigneeID:  assigneeID,
		CreatedBy:   input.CreatorID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetTask(ctx, task.ID)
}

// UpdateTask applies a partial update to an existing task
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		task.Title = *input.Title
	}
	if input.ClearDescription {
		task.Description = nil
	} else if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.ClearDeadline {
		task.Deadline = nil
	} else if input.Deadline != nil {
		task.Deadline = input.Deadline
	}
	if input.ClearAssignee || (input.AssigneeID != nil && *input.AssigneeID == 0) {
		task.AssigneeID = nil
	} else if input.AssigneeID != nil {
		if err := s.ensureAssigneeExists(ctx, *input.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetTask(ctx, task.ID)
}

// UpdateStatus sets only the status of a task
func (s *TaskService) UpdateStatus(ctx context.Context, taskID uint64, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return s.GetTask(ctx, task.ID)
}

// DeleteTask removes a task permanently
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint64) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ListAllTasks returns every task with its people loaded
func (s *TaskService) ListAllTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) ensureAssigneeExists(ctx context.Context, userID uint64) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	if !exists {
		return ErrAssigneeNotFound
	}
	return nil
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < constants.MinTitleLength || n > constants.MaxTitleLength {
		return ErrTitleInvalid
	}
	return nil
}
