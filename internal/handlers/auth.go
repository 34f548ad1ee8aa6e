package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskbot-api/internal/constants"
	"github.com/yukikurage/taskbot-api/internal/dto"
	apierrors "github.com/yukikurage/taskbot-api/internal/errors"
	"github.com/yukikurage/taskbot-api/internal/logger"
	"github.com/yukikurage/taskbot-api/internal/middleware"
	"github.com/yukikurage/taskbot-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login exchanges credentials for a bearer token.
// Credentials are accepted as form fields or as a JSON body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "username and password are required")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   constants.TokenType,
	})
}

// Logout acknowledges a logout. Tokens are stateless, so the client discards its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeInvalidCredentials, "Incorrect username or password")
	default:
		logger.FromContext(c.Request.Context()).Error("login failed", "error", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
