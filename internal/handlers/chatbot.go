package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskbot-api/internal/dto"
	apierrors "github.com/yukikurage/taskbot-api/internal/errors"
	"github.com/yukikurage/taskbot-api/internal/services"
)

// ChatbotHandler serves natural-language questions about tasks.
type ChatbotHandler struct {
	chatbot *services.ChatbotService
}

// NewChatbotHandler creates a new ChatbotHandler.
func NewChatbotHandler(chatbot *services.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{chatbot: chatbot}
}

// Query answers a question. AI failures are reported in the body with status 200.
func (h *ChatbotHandler) Query(c *gin.Context) {
	var req dto.ChatQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "message is required", err.Error())
		return
	}

	result := h.chatbot.ProcessQuery(c.Request.Context(), *req.Message)

	resp := dto.ChatResponse{
		Response: result.Response,
		Success:  result.Success,
	}
	if result.Error != "" {
		resp.Error = &result.Error
	}
	c.JSON(http.StatusOK, resp)
}
