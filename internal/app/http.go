package app

import (
	"github.com/wrongnotebook/notebook-backend/internal/http"
	httpH "github.com/wrongnotebook/notebook-backend/internal/http/handlers"
	httpMW "github.com/wrongnotebook/notebook-backend/internal/http/middleware"
	"github.com/wrongnotebook/notebook-backend/internal/observability"
	"github.com/wrongnotebook/notebook-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	Tag        *httpH.TagHandler
	Curriculum *httpH.CurriculumHandler
	CustomTag  *httpH.CustomTagHandler
	ErrorItem  *httpH.ErrorItemHandler
}

func wireHandlers(log *logger.Logger, clients Clients, services Services) Handlers {
	log.Info("Wiring handlers...")
	deps := map[string]httpH.Pinger{"db": clients.DB}
	if clients.Redis != nil {
		deps["redis"] = clients.Redis
	}
	return Handlers{
		Health:     httpH.NewHealthHandler(deps),
		Tag:        httpH.NewTagHandler(services.Tags),
		Curriculum: httpH.NewCurriculumHandler(clients.Catalog, services.Tags),
		CustomTag:  httpH.NewCustomTagHandler(services.CustomTags),
		ErrorItem:  httpH.NewErrorItemHandler(services.Tags),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *http.Server {
	routerCfg := http.RouterConfig{
		Logger:            log,
		Metrics:           metrics,
		CORSOrigins:       cfg.CORSOrigins,
		AuthMiddleware:    middleware.Auth,
		HealthHandler:     handlers.Health,
		TagHandler:        handlers.Tag,
		CurriculumHandler: handlers.Curriculum,
		CustomTagHandler:  handlers.CustomTag,
		ErrorItemHandler:  handlers.ErrorItem,
	}
	if cfg.Otel.Enabled {
		routerCfg.ServiceName = cfg.Otel.ServiceName
	}
	return http.NewServer(routerCfg)
}
