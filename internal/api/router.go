// internal/api/router.go
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"report-writer/internal/common/logger"
	"report-writer/internal/common/observability"
)

type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
	Logger         logger.Logger
	Observability  *observability.Observability

	HealthHandler   *HealthHandler
	TemplateHandler *TemplateHandler
	GenerateHandler *GenerateHandler
	SessionHandler  *SessionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(Metrics(cfg.Observability))
	if cfg.Logger != nil {
		r.Use(RequestLogger(cfg.Logger))
	}
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(CORS(cfg.AllowedOrigins))
	}

	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.Health)
		r.GET("/ready", cfg.HealthHandler.Ready)
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		if cfg.TemplateHandler != nil {
			api.GET("/templates", cfg.TemplateHandler.List)
			api.GET("/templates/:id/schema", cfg.TemplateHandler.Schema)
			api.POST("/prompt", cfg.TemplateHandler.Prompt)
		}

		if cfg.GenerateHandler != nil {
			api.POST("/generate-report", cfg.GenerateHandler.GenerateReport)
		}

		if cfg.SessionHandler != nil {
			sessions := api.Group("/sessions")
			sessions.POST("", cfg.SessionHandler.Create)
			sessions.GET("/:id", cfg.SessionHandler.Get)
			sessions.DELETE("/:id", cfg.SessionHandler.Delete)
			sessions.PUT("/:id/template", cfg.SessionHandler.SelectTemplate)
			sessions.PATCH("/:id/fields", cfg.SessionHandler.PatchFields)
			sessions.PUT("/:id/notes", cfg.SessionHandler.PutNotes)
			sessions.GET("/:id/prompt", cfg.SessionHandler.Prompt)
			sessions.POST("/:id/generate", cfg.SessionHandler.Generate)
			sessions.POST("/:id/copy", cfg.SessionHandler.Copy)
			sessions.GET("/:id/clipboard", cfg.SessionHandler.Clipboard)
		}
	}

	return r
}
