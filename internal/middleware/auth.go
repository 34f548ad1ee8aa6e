package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskbot-api/internal/constants"
	apierrors "github.com/yukikurage/taskbot-api/internal/errors"
	"github.com/yukikurage/taskbot-api/internal/logger"
	"github.com/yukikurage/taskbot-api/internal/models"
	"github.com/yukikurage/taskbot-api/internal/services"
)

const credentialsMessage = "Could not validate credentials"

// Authenticator resolves the user behind a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// RequireAuth checks the bearer token and stores the resolved user in the context
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidToken),
				errors.Is(err, services.ErrExpiredToken),
				errors.Is(err, services.ErrUserNotFound):
				apierrors.Unauthorized(c, credentialsMessage)
			default:
				logger.FromContext(c.Request.Context()).Error("failed to authenticate request", "error", err)
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from context
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// bearerToken extracts the credentials of a Bearer authorization header. The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
