package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"brandchat/internal/model"
)

const serviceName = "brandchat-api"

// HealthHandler serves GET /api/health.
type HealthHandler struct{}

// NewHealthHandler creates the health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health always reports healthy; upstream availability is not checked.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
	})
}
