package handlers

import (
	"context"
	"net/http"

	"prepquiz-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ReadinessHandler struct {
	Service *service.ReadinessService
}

func NewReadinessHandler(s *service.ReadinessService) *ReadinessHandler {
	return &ReadinessHandler{Service: s}
}

// GetPrediction returns the caller's readiness prediction, served from cache
// when a snapshot younger than a day exists.
func (h *ReadinessHandler) GetPrediction(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	prediction, err := h.Service.GetPrediction(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to compute readiness",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, prediction)
}

// Refresh forces a recomputation regardless of snapshot age.
func (h *ReadinessHandler) Refresh(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	prediction, err := h.Service.Refresh(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to compute readiness",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, prediction)
}
