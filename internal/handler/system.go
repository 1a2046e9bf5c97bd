package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"prompt-lab/internal/service"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ===== 目录 =====

func (h *Handler) ListArchitectures(c *gin.Context) {
	success(c, h.catalog.Architectures())
}

func (h *Handler) ListScenarios(c *gin.Context) {
	success(c, h.catalog.Scenarios())
}

func (h *Handler) ListProviders(c *gin.Context) {
	success(c, h.catalog.Providers())
}

// ===== Config =====

func (h *Handler) GetConfig(c *gin.Context) {
	values, err := h.settings.All()
	if err != nil {
		h.serverError(c, err, msgInternal)
		return
	}
	success(c, values)
}

func (h *Handler) SaveConfig(c *gin.Context) {
	var input map[string]string
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badBody(c, err)
		return
	}

	if err := h.settings.Save(input); err != nil {
		if errors.Is(err, service.ErrInvalidSetting) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		h.serverError(c, err, msgInternal)
		return
	}

	values, err := h.settings.All()
	if err != nil {
		h.serverError(c, err, msgInternal)
		return
	}
	success(c, values)
}

// ===== Status =====

func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.status.GetSystemStatus()
	if err != nil {
		h.serverError(c, err, msgInternal)
		return
	}

	// 添加定时任务信息
	if h.scheduler != nil {
		status.NextCleanupTime = h.scheduler.GetNextCleanupTime()
	}

	success(c, status)
}
