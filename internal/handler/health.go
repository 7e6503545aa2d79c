package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/railbook/railbook/internal/repository"
)

// HealthHandler handles health and readiness probes
type HealthHandler struct {
	seats repository.SeatInventory
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(seats repository.SeatInventory) *HealthHandler {
	return &HealthHandler{seats: seats}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /ready. The stores are in-process, so readiness reduces
// to the inventory having been bootstrapped.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.seats == nil || h.seats.TotalSeatCount() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "seat inventory not initialized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"seats_free": h.seats.FreeSeatCount(),
		"seats":      h.seats.TotalSeatCount(),
	})
}
