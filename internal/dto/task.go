package dto

import (
	"time"

	"github.com/yukikurage/taskbot-api/internal/models"
)

// TaskResponse represents a task in API responses, with assignee and creator expanded
type TaskResponse struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Deadline    *models.Date      `json:"deadline"`
	AssigneeID  *uint64           `json:"assignee_id"`
	Assignee    *UserSimple       `json:"assignee"`
	CreatedBy   uint64            `json:"created_by"`
	Creator     UserSimple        `json:"creator"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks    []TaskResponse `json:"tasks"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// ListTasksQuery holds the list filters and paging parameters
type ListTasksQuery struct {
	Status     string `form:"status"`
	AssigneeID uint64 `form:"assignee_id"`
	Page       int    `form:"page,default=1" binding:"min=1"`
	PageSize   int    `form:"page_size,default=10" binding:"min=1,max=100"`
}

// CreateTaskRequest is the body of a task creation. Any created_by in the payload is ignored.
type CreateTaskRequest struct {
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Deadline    *models.Date      `json:"deadline"`
	AssigneeID  *uint64           `json:"assignee_id"`
}

// UpdateTaskRequest is a partial update; only fields present in the payload are applied
type UpdateTaskRequest struct {
	Title       Optional[string]            `json:"title"`
	Description Optional[string]            `json:"description"`
	Status      Optional[models.TaskStatus] `json:"status"`
	Deadline    Optional[models.Date]       `json:"deadline"`
	AssigneeID  Optional[uint64]            `json:"assignee_id"`
}

// StatusUpdateRequest is the body of a status-only update
type StatusUpdateRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

// Conversion functions

// ToTaskResponse converts a Task model to TaskResponse.
// Assignee and Creator must be preloaded.
func ToTaskResponse(task models.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Deadline:    task.Deadline,
		AssigneeID:  task.AssigneeID,
		CreatedBy:   task.CreatedBy,
		Creator:     ToUserSimple(task.Creator),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.Assignee != nil {
		assignee := ToUserSimple(*task.Assignee)
		resp.Assignee = &assignee
	}

	return resp
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, total int64) TaskListResponse {
	items := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskResponse(task)
	}

	return TaskListResponse{
		Tasks:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
