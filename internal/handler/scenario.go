package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"prompt-lab/internal/service"
)

const defaultTestPrompt = `你好，请回复"连接测试成功"`

type codeReviewRequest struct {
	Code     string                  `json:"code"`
	Language string                  `json:"language"`
	Config   *service.ConfigOverride `json:"config"`
}

func (h *Handler) CodeReview(c *gin.Context) {
	var req codeReviewRequest
	if err := bindJSON(c, &req); err != nil {
		h.badBody(c, err)
		return
	}
	if req.Code == "" {
		fail(c, http.StatusBadRequest, "缺少必要的code参数")
		return
	}
	if req.Language == "" {
		req.Language = "javascript"
	}

	res, err := h.llm.ReviewCode(c.Request.Context(), req.Code, req.Language, req.Config)
	if err != nil {
		h.serverError(c, err, "代码审查失败")
		return
	}

	success(c, gin.H{
		"review":       res.Text,
		"originalCode": req.Code,
		"language":     req.Language,
		"reviewedAt":   time.Now().UTC(),
	})
}

type debugRequest struct {
	Error   string                  `json:"error"`
	Code    string                  `json:"code"`
	Context string                  `json:"context"`
	Config  *service.ConfigOverride `json:"config"`
}

func (h *Handler) Debug(c *gin.Context) {
	var req debugRequest
	if err := bindJSON(c, &req); err != nil {
		h.badBody(c, err)
		return
	}
	if req.Error == "" {
		fail(c, http.StatusBadRequest, "缺少必要的error参数")
		return
	}

	res, err := h.llm.DebugError(c.Request.Context(), req.Error, req.Code, req.Context, req.Config)
	if err != nil {
		h.serverError(c, err, "错误分析失败")
		return
	}

	success(c, gin.H{
		"analysis":      res.Text,
		"originalError": req.Error,
		"code":          req.Code,
		"context":       req.Context,
		"analyzedAt":    time.Now().UTC(),
	})
}

type prdRequest struct {
	Requirements string                  `json:"requirements"`
	Context      string                  `json:"context"`
	ProjectName  string                  `json:"projectName"`
	Config       *service.ConfigOverride `json:"config"`
}

func (h *Handler) GeneratePRD(c *gin.Context) {
	var req prdRequest
	if err := bindJSON(c, &req); err != nil {
		h.badBody(c, err)
		return
	}
	if req.Requirements == "" {
		fail(c, http.StatusBadRequest, "缺少必要的requirements参数")
		return
	}
	if req.ProjectName == "" {
		req.ProjectName = "新产品项目"
	}

	res, err := h.llm.GeneratePRD(c.Request.Context(), req.Requirements, req.Context, req.Config)
	if err != nil {
		h.serverError(c, err, "PRD生成失败")
		return
	}

	success(c, gin.H{
		"prd":          res.Text,
		"projectName":  req.ProjectName,
		"requirements": req.Requirements,
		"context":      req.Context,
		"generatedAt":  time.Now().UTC(),
	})
}

type metaPromptRequest struct {
	Scenario   string                  `json:"scenario"`
	Domain     string                  `json:"domain"`
	Complexity string                  `json:"complexity" binding:"omitempty,oneof=basic intermediate advanced"`
	Config     *service.ConfigOverride `json:"config"`
}

func (h *Handler) MetaPrompt(c *gin.Context) {
	var req metaPromptRequest
	if err := bindJSON(c, &req); err != nil {
		h.badBody(c, err)
		return
	}
	if req.Scenario == "" || req.Domain == "" {
		fail(c, http.StatusBadRequest, "缺少必要的scenario和domain参数")
		return
	}
	if req.Complexity == "" {
		req.Complexity = "intermediate"
	}

	res, err := h.llm.GenerateMetaPrompt(c.Request.Context(), req.Scenario, req.Domain, req.Config)
	if err != nil {
		h.serverError(c, err, "元Prompt生成失败")
		return
	}

	success(c, gin.H{
		"metaPrompt":  res.Text,
		"scenario":    req.Scenario,
		"domain":      req.Domain,
		"complexity":  req.Complexity,
		"generatedAt": time.Now().UTC(),
	})
}

type testConnectionRequest struct {
	Config     *service.ConfigOverride `json:"config"`
	TestPrompt string                  `json:"testPrompt"`
}

// TestConnection 使用请求中的配置测试服务商连通性
func (h *Handler) TestConnection(c *gin.Context) {
	var req testConnectionRequest
	if err := bindJSON(c, &req); err != nil {
		h.badBody(c, err)
		return
	}
	if req.Config == nil || req.Config.APIKey == "" || req.Config.Model == "" {
		fail(c, http.StatusBadRequest, "缺少必要的配置参数")
		return
	}
	if req.TestPrompt == "" {
		req.TestPrompt = defaultTestPrompt
	}

	res, err := h.llm.TestConnection(c.Request.Context(), req.Config, req.TestPrompt)
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, service.DescribeConnectionError(err))
		return
	}

	success(c, gin.H{
		"response": res.Text,
		"message":  "连接测试成功",
		"config": gin.H{
			"provider": res.Config.Provider,
			"model":    res.Config.Model,
			"baseURL":  req.Config.BaseURL,
		},
	})
}
