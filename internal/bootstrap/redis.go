package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/appli-farm/applifarm-backend/config"
)

// OpenRedis connects to Redis for the facet cache. Redis is optional: a
// missing address or a failed ping returns nil and the API runs uncached.
func OpenRedis(ctx context.Context, cfg *config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		log.Println("REDIS_ADDR not set, facet cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		log.Printf("redis ping failed, facet cache disabled: %v", err)
		_ = client.Close()
		return nil
	}

	return client
}
