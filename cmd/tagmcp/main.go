package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/wrongnotebook/notebook-backend/internal/data/db"
	"github.com/wrongnotebook/notebook-backend/internal/data/kv"
	"github.com/wrongnotebook/notebook-backend/internal/data/repos"
	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
	"github.com/wrongnotebook/notebook-backend/internal/mcptools"
	"github.com/wrongnotebook/notebook-backend/internal/platform/envutil"
	"github.com/wrongnotebook/notebook-backend/internal/platform/logger"
	"github.com/wrongnotebook/notebook-backend/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run serves the catalog tools over stdio. Logs go to stderr so they never
// interleave with the protocol on stdout.
func run() error {
	log, err := logger.New(envutil.String("LOG_MODE", "production", nil))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	catalog := knowledge.Default()
	if path := envutil.String("KNOWLEDGE_CATALOG_YAML", "", log); path != "" {
		loaded, err := knowledge.LoadFile(path)
		if err != nil {
			log.Warn("Falling back to embedded curriculum", "path", path, "error", err)
		} else {
			catalog = loaded
		}
	}

	var customTags services.CustomTagService
	if addr := envutil.String("REDIS_ADDR", "", log); addr != "" {
		rdb, err := kv.NewRedis(log, kv.RedisConfig{
			Addr:      addr,
			Password:  envutil.String("REDIS_PASSWORD", "", log),
			DB:        envutil.Int("REDIS_DB", 0, log),
			KeyPrefix: envutil.String("REDIS_KEY_PREFIX", "wrongnotebook", log),
		})
		if err != nil {
			log.Warn("Custom tags unavailable; suggest_tags will use the catalog only", "error", err)
		} else {
			defer rdb.Close()
			customTags = services.NewCustomTagService(log, rdb, nil)
		}
	}

	// Item tags join the suggestion pool only when a database is configured.
	var tags services.TagService
	if envutil.String("DB_DRIVER", "", log) != "" {
		database, err := db.Open(log, db.ConfigFromEnv(log))
		if err != nil {
			log.Warn("Item storage unavailable; suggest_tags will skip item tags", "error", err)
		} else {
			defer database.Close()
			items := repos.NewErrorItemRepo(database.DB(), log)
			tags = services.NewTagService(log, catalog, items, customTags, nil)
		}
	}

	return server.ServeStdio(mcptools.NewServer(catalog, customTags, tags))
}
