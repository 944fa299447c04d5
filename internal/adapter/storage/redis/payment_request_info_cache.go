package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecommerce-transactions/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// PaymentRequestInfoCache implements ports.PaymentRequestInfoCache using Redis.
// Entries are keyed by RptId.
type PaymentRequestInfoCache struct {
	client *goredis.Client
	prefix string
}

// NewPaymentRequestInfoCache creates a new Redis-backed payment request info cache.
func NewPaymentRequestInfoCache(client *goredis.Client) *PaymentRequestInfoCache {
	return &PaymentRequestInfoCache{
		client: client,
		prefix: "payment_request_info:",
	}
}

// Get returns the cached info for rptID, or nil, nil when absent.
func (c *PaymentRequestInfoCache) Get(ctx context.Context, rptID string) (*domain.PaymentRequestInfo, error) {
	val, err := c.client.Get(ctx, c.prefix+rptID).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis payment request info get: %w", err)
	}

	var info domain.PaymentRequestInfo
	if err := json.Unmarshal(val, &info); err != nil {
		return nil, fmt.Errorf("decoding payment request info: %w", err)
	}
	return &info, nil
}

// Set stores info under its RptId with TTL.
func (c *PaymentRequestInfoCache) Set(ctx context.Context, info *domain.PaymentRequestInfo, ttl time.Duration) error {
	val, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encoding payment request info: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+info.RptID, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis payment request info set: %w", err)
	}
	return nil
}
