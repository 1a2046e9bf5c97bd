// Package client talks to a running prompt-lab server.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"prompt-lab/internal/appstate"
	"prompt-lab/internal/logger"
	"prompt-lab/internal/model"
	"prompt-lab/internal/sse"
)

type Client struct {
	http *resty.Client
	log  *logger.Logger
}

// APIError 服务端返回的非 2xx 响应
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type GenerateRequest struct {
	Prompt     string             `json:"prompt"`
	Config     *appstate.AIConfig `json:"config,omitempty"`
	TemplateID string             `json:"templateId,omitempty"`
}

type GenerateResult struct {
	SessionID string                `json:"sessionId"`
	Response  string                `json:"response"`
	Metadata  model.SessionMetadata `json:"metadata"`
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// New 流式响应没有总超时, 由 ctx 控制
func New(baseURL string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetHeader("Content-Type", "application/json")

	return &Client{http: client, log: log.With("component", "client")}
}

// Stream 请求流式生成, onUpdate 收到累计内容
func (c *Client) Stream(ctx context.Context, req GenerateRequest, onUpdate func(content string)) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "text/event-stream").
		SetBody(req).
		SetDoNotParseResponse(true).
		Post("/api/generate-stream")
	if err != nil {
		return "", fmt.Errorf("stream request: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(body, 4096))
		return "", &APIError{Status: resp.StatusCode(), Message: strings.TrimSpace(string(msg))}
	}

	return sse.NewConsumer(c.log, onUpdate).Consume(body)
}

// Generate 非流式生成, 服务端会保存会话
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	out, err := call[GenerateResult](c.http.R().SetContext(ctx).SetBody(req), http.MethodPost, "/api/generate")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Templates(ctx context.Context) ([]model.PromptTemplate, error) {
	return call[[]model.PromptTemplate](c.http.R().SetContext(ctx), http.MethodGet, "/api/templates")
}

// call 发送请求并拆开 {success, data, error} 信封
func call[T any](req *resty.Request, method, path string) (T, error) {
	var out envelope[T]
	resp, err := req.SetResult(&out).SetError(&out).Execute(method, path)
	if err != nil {
		return out.Data, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsSuccess() && out.Success {
		return out.Data, nil
	}

	msg := out.Error
	if msg == "" {
		msg = strings.TrimSpace(resp.String())
	}
	return out.Data, &APIError{Status: resp.StatusCode(), Message: msg}
}
