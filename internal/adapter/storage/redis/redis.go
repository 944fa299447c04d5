package redis

import (
	"context"
	"fmt"

	"ecommerce-transactions/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Connect opens the Redis client backing the payment request info cache and
// the rate limiter. Zero timeouts and pool size keep the go-redis defaults.
func Connect(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		ClientName:  cfg.ClientName,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", cfg.Addr(), err)
	}

	log.Info().
		Str("redis_addr", cfg.Addr()).
		Str("client_name", cfg.ClientName).
		Int("pool_size", client.Options().PoolSize).
		Msg("Payment request cache connected")

	return client, nil
}
