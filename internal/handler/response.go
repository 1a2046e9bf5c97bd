package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	msgBadBody  = "请求体格式错误"
	msgInternal = "服务器内部错误"
)

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// bindJSON 空请求体按空对象处理, 由调用方报告缺失字段
func bindJSON(c *gin.Context, obj interface{}) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (h *Handler) badBody(c *gin.Context, err error) {
	_ = c.Error(err)
	fail(c, http.StatusBadRequest, msgBadBody+": "+err.Error())
}

// serverError 返回原始错误信息, fallback 用于无信息的错误
func (h *Handler) serverError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	msg := err.Error()
	if msg == "" {
		msg = fallback
	}
	fail(c, http.StatusInternalServerError, msg)
}
