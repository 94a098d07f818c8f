// Package middleware holds the gin middleware chain the router wires
// in front of every route: recovery, request ids, CORS, structured
// logging, metrics, rate limiting, and the bearer-token auth guard.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the header a client may supply its own
	// request id on, and the one the response echoes it back on.
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey is the gin context key RequestID stores under.
	RequestIDContextKey = "request_id"
)

// RequestID assigns every request a correlation id, honoring one the
// caller already supplied.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDContextKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID reads the request id RequestID stored in the context.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDContextKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
