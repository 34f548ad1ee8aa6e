package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/taskbot-api/internal/dto"
	"github.com/yukikurage/taskbot-api/internal/middleware"
	"github.com/yukikurage/taskbot-api/internal/models"
	"github.com/yukikurage/taskbot-api/internal/testutil"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	env   *testEnv
	admin *models.User
	john  *models.User
	token string
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.env = setupTestEnv(suite.T())

	handler := NewTaskHandler(suite.env.taskService)
	taskID := middleware.RequireIDParam("id", "task")

	tasks := suite.env.router.Group("/api/tasks", suite.env.requireAuth)
	tasks.GET("", handler.ListTasks)
	tasks.POST("", handler.CreateTask)
	tasks.GET("/:id", taskID, handler.GetTask)
	tasks.PUT("/:id", taskID, handler.UpdateTask)
	tasks.PATCH("/:id/status", taskID, handler.UpdateTaskStatus)
	tasks.DELETE("/:id", taskID, handler.DeleteTask)

	suite.admin = suite.env.createUser(suite.T(), "admin", "Admin User")
	suite.john = suite.env.createUser(suite.T(), "john", "John Doe")
	suite.token = suite.env.tokenFor(suite.T(), suite.admin)
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, opts ...testutil.TaskOption) *models.Task {
	return testutil.CreateTask(suite.T(), suite.env.db, title, suite.admin.ID, opts...)
}

func (suite *TaskHandlerTestSuite) taskURL(id uint64) string {
	return fmt.Sprintf("/api/tasks/%d", id)
}

func (suite *TaskHandlerTestSuite) TestListTasks_Success() {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	suite.createTestTask("Old", testutil.WithCreatedAt(base))
	suite.createTestTask("New", testutil.WithCreatedAt(base.Add(time.Hour)), testutil.WithAssignee(suite.john.ID))

	w := suite.env.do(http.MethodGet, "/api/tasks", suite.token, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.TaskListResponse
	decodeJSON(suite.T(), w, &resp)
	suite.Equal(int64(2), resp.Total)
	suite.Equal(1, resp.Page)
	suite.Equal(10, resp.PageSize)
	suite.Require().Len(resp.Tasks, 2)
	suite.Equal("New", resp.Tasks[0].Title)
	suite.Require().NotNil(resp.Tasks[0].Assignee)
	suite.Equal("john", resp.Tasks[0].Assignee.Username)
	suite.Nil(resp.Tasks[1].Assignee)
	suite.Equal("admin", resp.Tasks[1].Creator.Username)
}

func (suite *TaskHandlerTestSuite) TestListTasks_Filters() {
	suite.createTestTask("Todo")
	suite.createTestTask("Done", testutil.WithStatus(models.TaskStatusDone))
	suite.createTestTask("Assigned", testutil.WithAssignee(suite.john.ID), testutil.WithStatus(models.TaskStatusDone))

	w := suite.env.do(http.MethodGet, "/api/tasks?status=done", suite.token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.TaskListResponse
	decodeJSON(suite.T(), w, &resp)
	suite.Equal(int64(2), resp.Total)

	url := fmt.Sprintf("/api/tasks?status=done&assignee_id=%d", suite.john.ID)
	w = suite.env.do(http.MethodGet, url, suite.token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	decodeJSON(suite.T(), w, &resp)
	suite.Equal(int64(1), resp.Total)
	suite.Equal("Assigned", resp.Tasks[0].Title)
}

func (suite *TaskHandlerTestSuite) TestListTasks_Paging() {
	for i := 0; i < 3; i++ {
		suite.createTestTask(fmt.Sprintf("Task %d", i))
	}

	w := suite.env.do(http.MethodGet, "/api/tasks?page=2&page_size=2", suite.token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.TaskListResponse
	decodeJSON(suite.T(), w, &resp)
	suite.Equal(int64(3), resp.Total)
	suite.Equal(2, resp.Page)
	suite.Equal(2, resp.PageSize)
	suite.Len(resp.Tasks, 1)

	w = suite.env.do(http.MethodGet, "/api/tasks?page=9", suite.token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"tasks":[],"total":3,"page":9,"page_size":10}`, w.Body.String())
}

func (suite *TaskHandlerTestSuite) TestListTasks_InvalidQuery() {
	for _, url := range []string{
		"/api/tasks?page=0",
		"/api/tasks?page_size=101",
		"/api/tasks?page=abc",
		"/api/tasks?status=archived",
	} {
		w := suite.env.do(http.MethodGet, url, suite.token, nil)
		suite.Equal(http.StatusBadRequest, w.Code, url)
	}
}

func (suite *TaskHandlerTestSuite) TestListTasks_Unauthorized() {
	w := suite.env.do(http.MethodGet, "/api/tasks", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTask_Success() {
	task := suite.createTestTask("Write docs", testutil.WithDeadline(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))

	w := suite.env.do(http.MethodGet, suite.taskURL(task.ID), suite.token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp map[string]any
	decodeJSON(suite.T(), w, &resp)
	suite.Equal("Write docs", resp["title"])
	suite.Equal("2025-03-01", resp["deadline"])
	suite.Nil(resp["assignee"])
	suite.Contains(resp, "description")
}

func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	w := suite.env.do(http.MethodGet, suite.taskURL(99999), suite.token, nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "Task not found")
}

func (suite *TaskHandlerTestSuite) TestGetTask_InvalidID() {
	w := suite.env.do(http.MethodGet, "/api/tasks/abc", suite.token, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	w := suite.env.do(http.MethodPost, "/api/tasks", suite.token, map[string]any{
		"title":       "A",
		"assignee_id": suite.john.ID,
		"deadline":    "2025-06-30",
		"created_by":  suite.john.ID,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp dto.TaskResponse
	decodeJSON(suite.T(), w, &resp)
	suite.NotZero(resp.ID)
	suite.Equal(models.TaskStatusTodo, resp.Status)
	suite.Equal(suite.admin.ID, resp.CreatedBy)
	suite.Equal("admin", resp.Creator.Username)
	suite.Require().NotNil(resp.Assignee)
	suite.Equal(suite.john.ID, resp.Assignee.ID)
	suite.Require().NotNil(resp.Deadline)
	suite.Equal("2025-06-30", resp.Deadline.String())
}

func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidRequest() {
	cases := []struct {
		name string
		body any
	}{
		{"missing title", map[string]any{"description": "x"}},
		{"long title", map[string]any{"title": strings.Repeat("x", 201)}},
		{"bad status", map[string]any{"title": "A", "status": "archived"}},
		{"bad deadline", map[string]any{"title": "A", "deadline": "tomorrow"}},
		{"malformed", `{"title":`},
	}

	for _, tc := range cases {
		w := suite.env.do(http.MethodPost, "/api/tasks", suite.token, tc.body)
		suite.Equal(http.StatusBadRequest, w.Code, tc.name)
	}
}

func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownAssignee() {
	w := suite.env.do(http.MethodPost, "/api/tasks", suite.token, map[string]any{
		"title":       "A",
		"assignee_id": 99999,
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Assignee user not found")

	var count int64
	suite.env.db.Model(&models.Task{}).Count(&count)
	suite.Zero(count)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_Success() {
	task := suite.createTestTask("Before", testutil.WithAssignee(suite.john.ID))

	w := suite.env.do(http.MethodPut, suite.taskURL(task.ID), suite.token, map[string]any{
		"title":  "After",
		"status": "in_progress",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.TaskResponse
	decodeJSON(suite.T(), w, &resp)
	suite.Equal("After", resp.Title)
	suite.Equal(models.TaskStatusInProgress, resp.Status)
	suite.Require().NotNil(resp.AssigneeID)
	suite.Equal(suite.john.ID, *resp.AssigneeID)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_NullClearsFields() {
	task := suite.createTestTask("Task",
		testutil.WithAssignee(suite.john.ID),
		testutil.WithDeadline(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	w := suite.env.do(http.MethodPut, suite.taskURL(task.ID), suite.token,
		`{"assignee_id": null, "deadline": null}`)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.TaskResponse
	decodeJSON(suite.T(), w, &resp)
	suite.Nil(resp.AssigneeID)
	suite.Nil(resp.Assignee)
	suite.Nil(resp.Deadline)
	suite.Equal("Task", resp.Title)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_EmptyBody() {
	task := suite.createTestTask("Unchanged")

	w := suite.env.do(http.MethodPut, suite.taskURL(task.ID), suite.token, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.TaskResponse
	decodeJSON(suite.T(), w, &resp)
	suite.Equal("Unchanged", resp.Title)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidRequest() {
	task := suite.createTestTask("Task")

	for _, body := range []string{
		`{"title": null}`,
		`{"status": null}`,
		`{"title": ""}`,
		`{"status": "archived"}`,
		`{"assignee_id": 99999}`,
	} {
		w := suite.env.do(http.MethodPut, suite.taskURL(task.ID), suite.token, body)
		suite.Equal(http.StatusBadRequest, w.Code, body)
	}

	w := suite.env.do(http.MethodPut, suite.taskURL(99999), suite.token, `{"title": "x"}`)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskStatus() {
	task := suite.createTestTask("Task")

	w := suite.env.do(http.MethodPatch, suite.taskURL(task.ID)+"/status", suite.token, map[string]string{"status": "done"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.TaskResponse
	decodeJSON(suite.T(), w, &resp)
	suite.Equal(models.TaskStatusDone, resp.Status)

	w = suite.env.do(http.MethodPatch, suite.taskURL(task.ID)+"/status", suite.token, map[string]string{"status": "archived"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.env.do(http.MethodPatch, suite.taskURL(task.ID)+"/status", suite.token, map[string]string{})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.env.do(http.MethodPatch, suite.taskURL(99999)+"/status", suite.token, map[string]string{"status": "done"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	task := suite.createTestTask("Task")

	w := suite.env.do(http.MethodDelete, suite.taskURL(task.ID), suite.token, nil)
	suite.Equal(http.StatusNoContent, w.Code)
	suite.Empty(w.Body.String())

	w = suite.env.do(http.MethodGet, suite.taskURL(task.ID), suite.token, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.env.do(http.MethodDelete, suite.taskURL(task.ID), suite.token, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

// Any authenticated user may modify any task.
func (suite *TaskHandlerTestSuite) TestDeleteTask_ByOtherUser() {
	task := suite.createTestTask("Task")

	w := suite.env.do(http.MethodDelete, suite.taskURL(task.ID), suite.env.tokenFor(suite.T(), suite.john), nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
