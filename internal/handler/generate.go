package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"prompt-lab/internal/service"
	"prompt-lab/internal/sse"
)

const msgMissingPrompt = "缺少必要的prompt参数"

type generateRequest struct {
	Prompt     string                  `json:"prompt"`
	Config     *service.ConfigOverride `json:"config"`
	TemplateID *string                 `json:"templateId"`
}

// Generate 完整生成并保存会话记录
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := bindJSON(c, &req); err != nil {
		h.badBody(c, err)
		return
	}
	if req.Prompt == "" {
		fail(c, http.StatusBadRequest, msgMissingPrompt)
		return
	}

	cfg, err := h.llm.Resolve(req.Config, service.Preset{})
	if err != nil {
		h.serverError(c, err, msgInternal)
		return
	}

	res, err := h.llm.Generate(c.Request.Context(), req.Prompt, cfg)
	if err != nil {
		h.serverError(c, err, msgInternal)
		return
	}

	session, err := h.sessions.Record(req.TemplateID, req.Prompt, res)
	if err != nil {
		h.serverError(c, err, msgInternal)
		return
	}

	success(c, gin.H{
		"sessionId": session.ID,
		"response":  res.Text,
		"metadata":  session.Metadata,
	})
}

// ListSessions 会话历史
func (h *Handler) ListSessions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	sessions, err := h.sessions.List(limit, offset)
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "获取会话记录失败")
		return
	}
	success(c, sessions)
}

// GenerateStream 以 SSE 转发生成片段. 流开始前的错误返回纯文本,
// 开始后的错误以 error 事件结束流
func (h *Handler) GenerateStream(c *gin.Context) {
	var req generateRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		c.String(http.StatusBadRequest, msgBadBody)
		return
	}
	if req.Prompt == "" {
		c.String(http.StatusBadRequest, msgMissingPrompt)
		return
	}

	cfg, err := h.llm.Resolve(req.Config, service.Preset{})
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, msgInternal)
		return
	}

	sse.SetHeaders(c.Writer.Header())
	c.Status(http.StatusOK)
	relay := sse.NewRelay(c.Writer)

	ctx := c.Request.Context()
	_, err = h.llm.GenerateStream(ctx, req.Prompt, cfg, relay.Chunk)
	if ctx.Err() != nil {
		// 客户端已断开, 不再写终止事件
		h.log.Debug("Stream cancelled by client", "error", ctx.Err())
		return
	}
	if err != nil {
		_ = c.Error(err)
	}
	if ferr := relay.Finish(err); ferr != nil {
		// 写入失败, 连接多半已不可用
		h.log.Debug("Stream closed before terminal event", "error", ferr)
	}
}
