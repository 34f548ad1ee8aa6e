package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskbot-api/internal/config"
	"github.com/yukikurage/taskbot-api/internal/middleware"
	"github.com/yukikurage/taskbot-api/internal/models"
	"github.com/yukikurage/taskbot-api/internal/repository"
	"github.com/yukikurage/taskbot-api/internal/services"
	"github.com/yukikurage/taskbot-api/internal/testutil"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	tokens      *services.TokenService
	authService *services.AuthService
	taskService *services.TaskService
	userService *services.UserService
	requireAuth gin.HandlerFunc
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)

	tokens, err := services.NewTokenService(config.AuthConfig{
		SecretKey:                "handler-test-secret",
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 30,
	})
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	authService := services.NewAuthService(userRepo, tokens)

	return &testEnv{
		db:          db,
		router:      gin.New(),
		tokens:      tokens,
		authService: authService,
		taskService: services.NewTaskService(taskRepo, userRepo),
		userService: services.NewUserService(userRepo),
		requireAuth: middleware.RequireAuth(authService),
	}
}

// createUser stores a user whose password is "password123".
func (e *testEnv) createUser(t *testing.T, username, fullName string) *models.User {
	t.Helper()

	user, err := e.userService.CreateUser(context.Background(), services.CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		FullName: fullName,
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := e.tokens.IssueToken(context.Background(), services.TokenClaims{
		Username: user.Username,
		UserID:   user.ID,
	}, 0)
	require.NoError(t, err)
	return token
}

// do sends a JSON request; a nil body sends no body at all.
func (e *testEnv) do(method, url, token string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			encoded, _ := json.Marshal(body)
			raw = string(encoded)
		}
		req = httptest.NewRequest(method, url, bytes.NewBufferString(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}
