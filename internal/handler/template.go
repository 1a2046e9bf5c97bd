package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"prompt-lab/internal/service"
)

func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.templates.ListPublic()
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "获取模板失败")
		return
	}
	success(c, templates)
}

func (h *Handler) CreateTemplate(c *gin.Context) {
	var in service.TemplateInput
	if err := bindJSON(c, &in); err != nil {
		h.badBody(c, err)
		return
	}
	if in.Name == "" || in.Category == "" || in.Type == "" || in.Content == "" {
		fail(c, http.StatusBadRequest, "缺少必要参数")
		return
	}

	tpl, err := h.templates.Create(in)
	if errors.Is(err, service.ErrInvalidTemplate) {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "创建模板失败")
		return
	}
	success(c, tpl)
}
