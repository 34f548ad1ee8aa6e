package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskbot-api/internal/dto"
	"github.com/yukikurage/taskbot-api/internal/repository"
	"github.com/yukikurage/taskbot-api/internal/services"
	"github.com/yukikurage/taskbot-api/internal/testutil"
)

type stubGenerator struct {
	reply  string
	err    error
	prompt string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}

func setupChatbotRoutes(t *testing.T, generator services.TextGenerator) *testEnv {
	t.Helper()

	env := setupTestEnv(t)
	chatbot := services.NewChatbotService(repository.NewTaskRepository(env.db), generator, "GEMINI_API_KEY")
	env.router.POST("/api/chatbot/query", env.requireAuth, NewChatbotHandler(chatbot).Query)
	return env
}

func TestChatbotHandler_Answer(t *testing.T) {
	generator := &stubGenerator{reply: "You have one task."}
	env := setupChatbotRoutes(t, generator)
	admin := env.createUser(t, "admin", "Admin User")
	testutil.CreateTask(t, env.db, "Setup project repository", admin.ID)

	w := env.do(http.MethodPost, "/api/chatbot/query", env.tokenFor(t, admin), map[string]string{
		"message": "How many tasks are there?",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":"You have one task.","success":true,"error":null}`, w.Body.String())
	assert.Contains(t, generator.prompt, `Title: "Setup project repository"`)
	assert.Contains(t, generator.prompt, "How many tasks are there?")
}

func TestChatbotHandler_GeneratorFailure(t *testing.T) {
	env := setupChatbotRoutes(t, &stubGenerator{err: errors.New("quota exceeded")})
	admin := env.createUser(t, "admin", "Admin User")

	w := env.do(http.MethodPost, "/api/chatbot/query", env.tokenFor(t, admin), map[string]string{
		"message": "anything due?",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ChatResponse
	decodeJSON(t, w, &resp)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Contains(t, *resp.Error, "quota exceeded")
	assert.Contains(t, resp.Response, "An error occurred while processing your query")
}

func TestChatbotHandler_NotConfigured(t *testing.T) {
	env := setupChatbotRoutes(t, nil)
	admin := env.createUser(t, "admin", "Admin User")

	w := env.do(http.MethodPost, "/api/chatbot/query", env.tokenFor(t, admin), map[string]string{
		"message": "hello",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ChatResponse
	decodeJSON(t, w, &resp)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Response, "GEMINI_API_KEY")
	require.NotNil(t, resp.Error)
	assert.Equal(t, "GEMINI_API_KEY not configured", *resp.Error)
}

func TestChatbotHandler_EmptyMessage(t *testing.T) {
	generator := &stubGenerator{reply: "Ask me about your tasks."}
	env := setupChatbotRoutes(t, generator)
	admin := env.createUser(t, "admin", "Admin User")
	token := env.tokenFor(t, admin)

	for _, body := range []string{`{"message": ""}`, `{"message": "   "}`} {
		w := env.do(http.MethodPost, "/api/chatbot/query", token, body)
		require.Equal(t, http.StatusOK, w.Code, body)
		assert.JSONEq(t, `{"response":"Ask me about your tasks.","success":true,"error":null}`, w.Body.String())
	}

	unconfigured := setupChatbotRoutes(t, nil)
	bob := unconfigured.createUser(t, "bob", "Bob Wilson")
	w := unconfigured.do(http.MethodPost, "/api/chatbot/query", unconfigured.tokenFor(t, bob), `{"message": ""}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ChatResponse
	decodeJSON(t, w, &resp)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "GEMINI_API_KEY not configured", *resp.Error)
}

func TestChatbotHandler_InvalidRequest(t *testing.T) {
	env := setupChatbotRoutes(t, &stubGenerator{reply: "unused"})
	admin := env.createUser(t, "admin", "Admin User")
	token := env.tokenFor(t, admin)

	for _, body := range []string{`{}`, `{"message": null}`, `not json`} {
		w := env.do(http.MethodPost, "/api/chatbot/query", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	w := env.do(http.MethodPost, "/api/chatbot/query", "", map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
