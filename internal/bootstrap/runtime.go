// Package bootstrap establishes the runtime dependencies the server is
// built from.
package bootstrap

import (
	"fmt"
	"log"
	"time"

	"nexcos/internal/cache"
	"nexcos/internal/config"
	"nexcos/internal/database"
	"nexcos/internal/identity"
	"nexcos/internal/models"
	"nexcos/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Runtime is everything NewServerWithDeps needs.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client
	Seed  *seed.Data
	// Demo holds generated resources added on top of the seed catalog.
	Demo []models.ResourceInput
}

// InitRuntime connects to the account database and Redis and loads the
// seed data. A nil Redis client is not an error; events then stay local.
func InitRuntime(cfg *config.Config) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.Migrate(db, &identity.Account{}); err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	rdb := cache.GetClient()
	if rdb == nil {
		log.Printf("Redis unavailable at %q; events will not leave this process", cfg.RedisURL)
	}

	data, err := seed.Default(time.Now())
	if err != nil {
		return nil, fmt.Errorf("load seed data: %w", err)
	}

	rt := &Runtime{DB: db, Redis: rdb, Seed: data}
	if cfg.DemoResources > 0 {
		rt.Demo = seed.NewFactory(0).DemoResources(cfg.DemoResources)
		log.Printf("Generated %d demo resources", len(rt.Demo))
	}
	return rt, nil
}
