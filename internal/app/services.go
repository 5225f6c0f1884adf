package app

import (
	"fmt"

	"github.com/wrongnotebook/notebook-backend/internal/observability"
	"github.com/wrongnotebook/notebook-backend/internal/platform/logger"
	"github.com/wrongnotebook/notebook-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Tags       services.TagService
	CustomTags services.CustomTagService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, reposet Repos, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")
	if cfg.JWTSecretKey == "" {
		return Services{}, fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if cfg.JWTSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY is the development default")
	}

	customTags := services.NewCustomTagService(log, clients.KV, metrics)
	return Services{
		Auth:       services.NewAuthService(log, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		CustomTags: customTags,
		Tags:       services.NewTagService(log, clients.Catalog, reposet.ErrorItem, customTags, metrics),
	}, nil
}
