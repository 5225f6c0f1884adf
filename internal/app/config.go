package app

import (
	"time"

	"github.com/wrongnotebook/notebook-backend/internal/data/db"
	"github.com/wrongnotebook/notebook-backend/internal/data/kv"
	"github.com/wrongnotebook/notebook-backend/internal/http/middleware"
	"github.com/wrongnotebook/notebook-backend/internal/observability"
	"github.com/wrongnotebook/notebook-backend/internal/platform/envutil"
	"github.com/wrongnotebook/notebook-backend/internal/platform/logger"
)

const serviceName = "wrongnotebook-api"

type Config struct {
	Port        string
	Environment string

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	DB    db.Config
	Redis kv.RedisConfig

	// CatalogPath overrides the embedded curriculum when set.
	CatalogPath string

	CORSOrigins       []string
	Otel              observability.OtelConfig
	DBMetricsInterval time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	environment := envutil.String("APP_ENV", "development", log)
	return Config{
		Port:           envutil.String("PORT", "8080", log),
		Environment:    environment,
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL: time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600, log)) * time.Second,
		DB:             db.ConfigFromEnv(log),
		Redis: kv.RedisConfig{
			Addr:      envutil.String("REDIS_ADDR", "", log),
			Password:  envutil.String("REDIS_PASSWORD", "", log),
			DB:        envutil.Int("REDIS_DB", 0, log),
			KeyPrefix: envutil.String("REDIS_KEY_PREFIX", "wrongnotebook", log),
		},
		CatalogPath:       envutil.String("KNOWLEDGE_CATALOG_YAML", "", log),
		CORSOrigins:       envutil.List("CORS_ALLOWED_ORIGINS", middleware.DefaultAllowedOrigins),
		Otel:              observability.OtelConfigFromEnv(serviceName, environment),
		DBMetricsInterval: time.Duration(envutil.Int("DB_METRICS_INTERVAL_SECONDS", 15, log)) * time.Second,
	}
}
