package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/valetd/pkg/api/types"
)

// Connector reports link state.
type Connector interface {
	IsConnected() bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	link Connector
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(link Connector) *HealthHandler {
	return &HealthHandler{link: link}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status of the API and the robot link
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "Service is degraded"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	transportStatus := "disconnected"
	if h.link.IsConnected() {
		transportStatus = "connected"
	}

	status := "healthy"
	httpStatus := http.StatusOK

	if transportStatus != "connected" {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Transport: transportStatus,
		Timestamp: time.Now(),
	})
}
