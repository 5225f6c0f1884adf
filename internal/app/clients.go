package app

import (
	"fmt"

	"github.com/wrongnotebook/notebook-backend/internal/data/db"
	"github.com/wrongnotebook/notebook-backend/internal/data/kv"
	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
	"github.com/wrongnotebook/notebook-backend/internal/platform/logger"
)

type Clients struct {
	DB      *db.Service
	Redis   *kv.Redis
	KV      kv.Store
	Catalog *knowledge.Catalog
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Database
	database, err := db.Open(log, cfg.DB)
	if err != nil {
		return Clients{}, fmt.Errorf("init database: %w", err)
	}
	if err := database.AutoMigrate(); err != nil {
		_ = database.Close()
		return Clients{}, fmt.Errorf("database automigrate: %w", err)
	}

	// Custom-tag KV
	rdb, store := wireCustomTagStore(log, cfg.Redis)

	// Catalog
	catalog := knowledge.Default()
	if cfg.CatalogPath != "" {
		loaded, err := knowledge.LoadFile(cfg.CatalogPath)
		if err != nil {
			log.Warn("Falling back to embedded curriculum", "path", cfg.CatalogPath, "error", err)
		} else {
			catalog = loaded
			log.Info("Loaded curriculum", "path", cfg.CatalogPath)
		}
	}

	return Clients{
		DB:      database,
		Redis:   rdb,
		KV:      store,
		Catalog: catalog,
	}, nil
}

// wireCustomTagStore connects to Redis when configured. An unset or
// unreachable Redis falls back to an in-process store; rdb is nil then.
func wireCustomTagStore(log *logger.Logger, cfg kv.RedisConfig) (*kv.Redis, kv.Store) {
	if cfg.Addr == "" {
		log.Warn("REDIS_ADDR not set; custom tags are kept in memory")
		return nil, kv.NewMemory()
	}
	rdb, err := kv.NewRedis(log, cfg)
	if err != nil {
		log.Warn("Redis unavailable; custom tags are kept in memory", "addr", cfg.Addr, "error", err)
		return nil, kv.NewMemory()
	}
	return rdb, rdb
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}
}
