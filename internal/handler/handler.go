package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"prompt-lab/internal/logger"
	"prompt-lab/internal/middleware"
	"prompt-lab/internal/provider"
	"prompt-lab/internal/service"
)

type Handler struct {
	llm       *service.LLMService
	sessions  *service.SessionService
	templates *service.TemplateService
	settings  *service.SettingsService
	catalog   *service.CatalogService
	status    *service.StatusService
	log       *logger.Logger
	scheduler interface {
		GetNextCleanupTime() time.Time
	}
}

func NewHandler(db *gorm.DB, registry *provider.Registry, log *logger.Logger) *Handler {
	settings := service.NewSettingsService(db)
	return &Handler{
		llm:       service.NewLLMService(registry, settings, log),
		sessions:  service.NewSessionService(db),
		templates: service.NewTemplateService(db),
		settings:  settings,
		catalog:   service.NewCatalogService(registry),
		status:    service.NewStatusService(db, registry),
		log:       log.With("component", "Handler"),
	}
}

// SetScheduler 设置调度器引用
func (h *Handler) SetScheduler(scheduler interface {
	GetNextCleanupTime() time.Time
}) {
	h.scheduler = scheduler
}

// NewRouter 创建带中间件的 gin 引擎
func NewRouter(h *Handler, log *logger.Logger, serviceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		// 生成
		api.POST("/generate", h.Generate)
		api.GET("/generate", h.ListSessions)
		api.POST("/generate-stream", h.GenerateStream)

		// 场景
		api.POST("/code-review", h.CodeReview)
		api.POST("/debug", h.Debug)
		api.POST("/generate-prd", h.GeneratePRD)
		api.POST("/meta-prompt", h.MetaPrompt)
		api.POST("/test-connection", h.TestConnection)

		// 模板
		api.GET("/templates", h.ListTemplates)
		api.POST("/templates", h.CreateTemplate)

		// 目录
		api.GET("/architectures", h.ListArchitectures)
		api.GET("/scenarios", h.ListScenarios)
		api.GET("/providers", h.ListProviders)

		// Config
		api.GET("/config", h.GetConfig)
		api.POST("/config", h.SaveConfig)

		// Status
		api.GET("/status", h.GetStatus)
	}
}
