// Package common holds the response envelope and domain-error mapper
// shared by every handler. Split out from the handlers package so
// handlers and the router can both import it without a cycle.
package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/prashant0321/wallet-service/internal/domain/errors"
)

// APIResponse is the envelope every JSON response is wrapped in.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Meta      *APIMeta    `json:"meta,omitempty"`
	RequestID string      `json:"request_id"`
	Timestamp time.Time   `json:"timestamp"`
}

// APIMeta carries pagination metadata.
type APIMeta struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
	Total  int `json:"total,omitempty"`
}

// APIError is the shape of the "error" field in APIResponse.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

const RequestIDKey = "request_id"

// GetRequestID returns the request id set by the RequestID middleware.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// Success sends a 2xx response carrying data.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success:   true,
		Data:      data,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC(),
	})
}

// SuccessWithMeta sends a 2xx response carrying data and pagination meta.
func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *APIMeta) {
	c.JSON(statusCode, APIResponse{
		Success:   true,
		Data:      data,
		Meta:      meta,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC(),
	})
}

// Error sends an error response with the given status and code.
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, APIResponse{
		Success:   false,
		Error:     &APIError{Code: code, Message: message},
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC(),
	})
}

// ValidationError sends a 422 for a request that failed boundary
// validation before ever reaching the engine (§7: "yield 422").
func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", message)
}

// HandleEngineError maps an error returned by the facade/engine to the
// HTTP status and code table in spec §7. Anything not recognized falls
// through to 500 INTERNAL_ERROR.
func HandleEngineError(c *gin.Context, err error) {
	switch {
	case domainerrors.IsInsufficientFunds(err):
		Error(c, http.StatusPaymentRequired, "INSUFFICIENT_FUNDS", err.Error())
	case domainerrors.IsWalletNotFound(err):
		Error(c, http.StatusNotFound, "WALLET_NOT_FOUND", err.Error())
	case domainerrors.IsAccountNotFound(err):
		Error(c, http.StatusNotFound, "ACCOUNT_NOT_FOUND", err.Error())
	case domainerrors.IsAssetTypeNotFound(err):
		Error(c, http.StatusNotFound, "ASSET_TYPE_NOT_FOUND", err.Error())
	case domainerrors.IsIdempotencyConflict(err):
		Error(c, http.StatusConflict, "IDEMPOTENCY_CONFLICT", err.Error())
	case domainerrors.IsNegativeBalance(err):
		Error(c, http.StatusInternalServerError, "NEGATIVE_BALANCE", err.Error())
	case domainerrors.IsValidationError(err):
		ValidationError(c, err.Error())
	default:
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
	}
}
