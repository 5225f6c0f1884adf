package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/wrongnotebook/notebook-backend/internal/http/handlers"
	httpMW "github.com/wrongnotebook/notebook-backend/internal/http/middleware"
	"github.com/wrongnotebook/notebook-backend/internal/observability"
	"github.com/wrongnotebook/notebook-backend/internal/platform/logger"
)

type RouterConfig struct {
	Logger      *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	TagHandler        *httpH.TagHandler
	CurriculumHandler *httpH.CurriculumHandler
	CustomTagHandler  *httpH.CustomTagHandler
	ErrorItemHandler  *httpH.ErrorItemHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Logger != nil {
		r.Use(httpMW.RequestLogger(cfg.Logger))
	}
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")

	// Curriculum reference data is public.
	if cfg.CurriculumHandler != nil {
		api.GET("/curriculum/math", cfg.CurriculumHandler.MathCurriculum)
		api.GET("/curriculum/math/tags", cfg.CurriculumHandler.MathTags)
		api.GET("/curriculum/math/tags/:name", cfg.CurriculumHandler.MathTagInfo)
		api.GET("/curriculum/grade", cfg.CurriculumHandler.CurrentGrade)
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Tags
		if cfg.TagHandler != nil {
			protected.GET("/tags/stats", cfg.TagHandler.Stats)
			protected.GET("/tags/suggestions", cfg.TagHandler.Suggestions)
			protected.POST("/tags/normalize", cfg.TagHandler.Normalize)
		}

		// Error items
		if cfg.ErrorItemHandler != nil {
			protected.PUT("/error-items/:id/knowledge-points", cfg.ErrorItemHandler.UpdateKnowledgePoints)
		}

		// Custom tags
		if cfg.CustomTagHandler != nil {
			protected.GET("/custom-tags", cfg.CustomTagHandler.List)
			protected.POST("/custom-tags", cfg.CustomTagHandler.Add)
			protected.DELETE("/custom-tags", cfg.CustomTagHandler.Clear)
			protected.GET("/custom-tags/export", cfg.CustomTagHandler.Export)
			protected.POST("/custom-tags/import", cfg.CustomTagHandler.Import)
			protected.GET("/custom-tags/stats", cfg.CustomTagHandler.Stats)
			protected.DELETE("/custom-tags/:subject/:name", cfg.CustomTagHandler.Remove)
		}
	}

	return r
}
