package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskbot-api/internal/dto"
	apierrors "github.com/yukikurage/taskbot-api/internal/errors"
	"github.com/yukikurage/taskbot-api/internal/logger"
	"github.com/yukikurage/taskbot-api/internal/middleware"
	"github.com/yukikurage/taskbot-api/internal/models"
	"github.com/yukikurage/taskbot-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns one page of tasks, optionally filtered by status and assignee
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var query dto.ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid query parameters", err.Error())
		return
	}

	input := services.ListTasksInput{
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Status != "" {
		status := models.TaskStatus(query.Status)
		input.Status = &status
	}
	if query.AssigneeID != 0 {
		input.AssigneeID = &query.AssigneeID
	}

	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, query.Page, query.PageSize, total))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := middleware.PathID(c)
	if !ok {
		apierrors.InvalidID(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// CreateTask creates a new task owned by the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Deadline:    req.Deadline,
		AssigneeID:  req.AssigneeID,
		CreatorID:   user.ID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(*task))
}

// UpdateTask applies the fields present in the body to an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := middleware.PathID(c)
	if !ok {
		apierrors.InvalidID(c, "Invalid task ID")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	if req.Title.IsNull() {
		apierrors.BadRequest(c, "title cannot be null")
		return
	}
	if req.Status.IsNull() {
		apierrors.BadRequest(c, "status cannot be null")
		return
	}

	input := services.UpdateTaskInput{
		Title:            req.Title.Value,
		Description:      req.Description.Value,
		ClearDescription: req.Description.IsNull(),
		Status:           req.Status.Value,
		Deadline:         req.Deadline.Value,
		ClearDeadline:    req.Deadline.IsNull(),
		AssigneeID:       req.AssigneeID.Value,
		ClearAssignee:    req.AssigneeID.IsNull(),
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// UpdateTaskStatus sets only the status of a task
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	taskID, ok := middleware.PathID(c)
	if !ok {
		apierrors.InvalidID(c, "Invalid task ID")
		return
	}

	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	task, err := h.taskService.UpdateStatus(c.Request.Context(), taskID, req.Status)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := middleware.PathID(c)
	if !ok {
		apierrors.InvalidID(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.BadRequest(c, "Assignee user not found")
	case errors.Is(err, services.ErrTitleInvalid),
		errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		logger.FromContext(c.Request.Context()).Error("task request failed", "error", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
