package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/wrongnotebook/notebook-backend/internal/data/db"
	"github.com/wrongnotebook/notebook-backend/internal/data/kv"
	"github.com/wrongnotebook/notebook-backend/internal/data/repos"
	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
	"github.com/wrongnotebook/notebook-backend/internal/platform/logger"
	"github.com/wrongnotebook/notebook-backend/internal/services"
)

// commandContext lazily opens the backends a command needs. Catalog-only
// commands never touch the database or Redis.
type commandContext struct {
	configFlag  string
	verboseFlag bool

	configOnce sync.Once
	config     cliConfig
	configErr  error

	log     *logger.Logger
	catalog *knowledge.Catalog
	db      *db.Service
	kv      kv.Store
	redis   *kv.Redis
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) logger() *logger.Logger {
	if c.log != nil {
		return c.log
	}
	mode := "test"
	if c.verboseFlag {
		mode = "development"
	}
	l, err := logger.New(mode)
	if err != nil {
		l = logger.Nop()
	}
	c.log = l
	return l
}

func (c *commandContext) ensureConfig() (cliConfig, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = loadConfig(c.configFlag)
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureCatalog() (*knowledge.Catalog, error) {
	if c.catalog != nil {
		return c.catalog, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if cfg.CatalogPath == "" {
		c.catalog = knowledge.Default()
		return c.catalog, nil
	}
	cat, err := knowledge.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	c.catalog = cat
	return cat, nil
}

func (c *commandContext) ensureDB() (*db.Service, error) {
	if c.db != nil {
		return c.db, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	svc, err := db.Open(c.logger(), cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := svc.AutoMigrate(); err != nil {
		_ = svc.Close()
		return nil, err
	}
	c.db = svc
	return svc, nil
}

func (c *commandContext) ensureKV() (kv.Store, error) {
	if c.kv != nil {
		return c.kv, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis is not configured; set REDIS_ADDR or [redis] addr")
	}
	rdb, err := kv.NewRedis(c.logger(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	c.redis = rdb
	c.kv = rdb
	return rdb, nil
}

func (c *commandContext) customTagService() (services.CustomTagService, error) {
	store, err := c.ensureKV()
	if err != nil {
		return nil, err
	}
	return services.NewCustomTagService(c.logger(), store, nil), nil
}

func (c *commandContext) tagService() (services.TagService, error) {
	cat, err := c.ensureCatalog()
	if err != nil {
		return nil, err
	}
	database, err := c.ensureDB()
	if err != nil {
		return nil, err
	}
	items := repos.NewErrorItemRepo(database.DB(), c.logger())
	return services.NewTagService(c.logger(), cat, items, nil, nil), nil
}

func (c *commandContext) close() {
	if c.redis != nil {
		_ = c.redis.Close()
		c.redis = nil
	}
	if c.db != nil {
		_ = c.db.Close()
		c.db = nil
	}
}

// parseUser accepts a UUID; blank means every user.
func parseUser(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --user %q: %w", raw, err)
	}
	return id, nil
}
