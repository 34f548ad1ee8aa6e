package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/taskbot-api/internal/errors"
)

const contextKeyPathID = "path_id"

// RequireIDParam parses a numeric path parameter and aborts with 400 when it is malformed.
// The parsed value is read back with PathID.
func RequireIDParam(param, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil || id == 0 {
			apierrors.InvalidID(c, "Invalid "+resource+" ID")
			c.Abort()
			return
		}

		c.Set(contextKeyPathID, id)
		c.Next()
	}
}

// PathID retrieves the identifier parsed by RequireIDParam
func PathID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(contextKeyPathID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
