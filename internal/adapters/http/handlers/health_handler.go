package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves GET /health — a bare liveness probe. It never
// touches the store: spec §6 lists no readiness semantics for this
// endpoint, and the container already refuses to start at all when
// the store or the system accounts are unreachable.
type HealthHandler struct {
	service string
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(service, version string) *HealthHandler {
	return &HealthHandler{service: service, version: version}
}

// HealthResponse is the exact shape spec §6 names for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Service: h.service, Version: h.version})
}
