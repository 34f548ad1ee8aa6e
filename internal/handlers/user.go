package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskbot-api/internal/dto"
	apierrors "github.com/yukikurage/taskbot-api/internal/errors"
	"github.com/yukikurage/taskbot-api/internal/logger"
	"github.com/yukikurage/taskbot-api/internal/middleware"
	"github.com/yukikurage/taskbot-api/internal/services"
)

// UserHandler serves the user directory.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns every user in compact form, e.g. for assignee pickers
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserSimpleList(users))
}

// GetUser returns a single user
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := middleware.PathID(c)
	if !ok {
		apierrors.InvalidID(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(*user))
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		logger.FromContext(c.Request.Context()).Error("user request failed", "error", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
