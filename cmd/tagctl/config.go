package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/wrongnotebook/notebook-backend/internal/data/db"
	"github.com/wrongnotebook/notebook-backend/internal/data/kv"
	"github.com/wrongnotebook/notebook-backend/internal/platform/envutil"
)

// fileConfig mirrors the optional --config TOML file. Blank values keep the
// environment-derived defaults.
type fileConfig struct {
	Database struct {
		Driver           string `toml:"driver"`
		SQLitePath       string `toml:"sqlite_path"`
		PostgresHost     string `toml:"postgres_host"`
		PostgresPort     string `toml:"postgres_port"`
		PostgresUser     string `toml:"postgres_user"`
		PostgresPassword string `toml:"postgres_password"`
		PostgresName     string `toml:"postgres_name"`
		PostgresSSLMode  string `toml:"postgres_sslmode"`
	} `toml:"database"`
	Redis struct {
		Addr      string `toml:"addr"`
		Password  string `toml:"password"`
		DB        int    `toml:"db"`
		KeyPrefix string `toml:"key_prefix"`
	} `toml:"redis"`
	Catalog struct {
		Path string `toml:"path"`
	} `toml:"catalog"`
}

type cliConfig struct {
	DB          db.Config
	Redis       kv.RedisConfig
	CatalogPath string
}

func loadConfig(path string) (cliConfig, error) {
	cfg := cliConfig{
		DB: db.ConfigFromEnv(nil),
		Redis: kv.RedisConfig{
			Addr:      envutil.String("REDIS_ADDR", "", nil),
			Password:  envutil.String("REDIS_PASSWORD", "", nil),
			DB:        envutil.Int("REDIS_DB", 0, nil),
			KeyPrefix: envutil.String("REDIS_KEY_PREFIX", "wrongnotebook", nil),
		},
		CatalogPath: envutil.String("KNOWLEDGE_CATALOG_YAML", "", nil),
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	override(&cfg.DB.Driver, strings.ToLower(fc.Database.Driver))
	override(&cfg.DB.SQLitePath, fc.Database.SQLitePath)
	override(&cfg.DB.PostgresHost, fc.Database.PostgresHost)
	override(&cfg.DB.PostgresPort, fc.Database.PostgresPort)
	override(&cfg.DB.PostgresUser, fc.Database.PostgresUser)
	override(&cfg.DB.PostgresPassword, fc.Database.PostgresPassword)
	override(&cfg.DB.PostgresName, fc.Database.PostgresName)
	override(&cfg.DB.PostgresSSLMode, fc.Database.PostgresSSLMode)
	override(&cfg.Redis.Addr, fc.Redis.Addr)
	override(&cfg.Redis.Password, fc.Redis.Password)
	override(&cfg.Redis.KeyPrefix, fc.Redis.KeyPrefix)
	if fc.Redis.DB != 0 {
		cfg.Redis.DB = fc.Redis.DB
	}
	override(&cfg.CatalogPath, fc.Catalog.Path)
	return cfg, nil
}

func override(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
