package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	ping       func() error
	queueDepth func() int
}

func NewHealthHandler(ping func() error, queueDepth func() int) *HealthHandler {
	return &HealthHandler{ping: ping, queueDepth: queueDepth}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"
	if err := h.ping(); err != nil {
		status = "degraded"
		dbStatus = "unhealthy: " + err.Error()
	}

	resp := dto.HealthResponse{
		Status:           status,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		DB:               dbStatus,
		NotifyQueueDepth: h.queueDepth(),
	}
	if status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
