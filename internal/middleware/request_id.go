package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/taskbot-api/internal/constants"
	"github.com/yukikurage/taskbot-api/internal/logger"
)

const maxRequestIDLength = 128

// RequestID echoes the caller's X-Request-ID or generates one, and scopes the request logger to it
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(constants.HeaderRequestID, requestID)

		log := logger.Get().With("request_id", requestID)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), log))

		c.Next()
	}
}

// GetRequestID returns the request ID assigned by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequestID)
}
