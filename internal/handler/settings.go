package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wordstash/api/internal/scheduler"
	"github.com/wordstash/api/internal/settings"
)

type SettingsHandler struct {
	service   *settings.Service
	scheduler *scheduler.CleanupScheduler
}

func NewSettingsHandler(service *settings.Service, sched *scheduler.CleanupScheduler) *SettingsHandler {
	return &SettingsHandler{service: service, scheduler: sched}
}

// Get handles GET /api/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Get())
}

// Update handles PUT /api/settings. A changed cleanup interval takes effect
// on the running scheduler immediately.
func (h *SettingsHandler) Update(c *gin.Context) {
	var next settings.Settings
	if err := c.ShouldBindJSON(&next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), next)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.scheduler != nil {
		h.scheduler.Reset(updated.Cleanup.Interval.Duration())
	}

	c.JSON(http.StatusOK, updated)
}
