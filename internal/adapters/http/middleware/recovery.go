package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// RecoveryConfig configures Recovery.
type RecoveryConfig struct {
	Logger           *slog.Logger
	EnableStackTrace bool
}

// DefaultRecoveryConfig returns sane defaults for Recovery.
func DefaultRecoveryConfig() *RecoveryConfig {
	return &RecoveryConfig{Logger: slog.Default(), EnableStackTrace: true}
}

// Recovery converts a panic in a downstream handler into a 500
// response instead of taking the whole process down.
func Recovery(config *RecoveryConfig) gin.HandlerFunc {
	if config == nil {
		config = DefaultRecoveryConfig()
	}

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				attrs := []slog.Attr{
					slog.String("error", fmt.Sprintf("%v", err)),
					slog.String("path", c.Request.URL.Path),
					slog.String("method", c.Request.Method),
					slog.String("request_id", GetRequestID(c)),
					slog.String("client_ip", c.ClientIP()),
				}
				if config.EnableStackTrace {
					attrs = append(attrs, slog.String("stack", string(debug.Stack())))
				}
				config.Logger.LogAttrs(c.Request.Context(), slog.LevelError, "panic recovered", attrs...)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "an unexpected error occurred",
					},
					"request_id": GetRequestID(c),
					"timestamp":  time.Now().UTC(),
				})
			}
		}()

		c.Next()
	}
}
