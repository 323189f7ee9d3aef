package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/service"
)

// Identity trusts the gateway: it authenticates callers and forwards the
// verified identity as headers. Requests arriving without one are rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-Id")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
			return
		}
		c.Set("userId", userID)
		c.Set("userName", c.GetHeader("X-User-Name"))
		c.Set("role", c.GetHeader("X-User-Role"))
		c.Next()
	}
}

func callerID(c *gin.Context) string {
	v, _ := c.Get("userId")
	id, _ := v.(string)
	return id
}

func callerName(c *gin.Context) string {
	v, _ := c.Get("userName")
	name, _ := v.(string)
	return name
}

func fail(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrBookingLocked):
		return http.StatusForbidden
	case errors.Is(err, service.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
