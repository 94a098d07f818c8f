// Package cache wraps the Postgres idempotency store with an optional
// Redis read-through layer. Redis only ever speeds up a Hit; it is
// never the source of truth and correctness never depends on it being
// reachable (DOMAIN STACK: "read-path enrichment").
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prashant0321/wallet-service/internal/application/ports"
	"github.com/prashant0321/wallet-service/internal/domain/entities"
)

var _ ports.IdempotencyRepository = (*RedisIdempotencyCache)(nil)

// redisRecord is the JSON shape cached in Redis — a copy of the
// fields entities.IdempotencyRecord carries, since the entity's own
// ResponseBody field is already opaque JSON and round-trips cleanly.
type redisRecord struct {
	Key          string    `json:"key"`
	Endpoint     string    `json:"endpoint"`
	ResponseBody []byte    `json:"response_body"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// RedisIdempotencyCache decorates a Postgres-backed
// ports.IdempotencyRepository with a best-effort Redis front.
type RedisIdempotencyCache struct {
	inner  ports.IdempotencyRepository
	client *redis.Client
	log    *slog.Logger
}

// NewRedisIdempotencyCache wraps inner with a Redis read-through layer.
// client may be nil (Redis disabled); every method falls back to inner
// unconditionally in that case.
func NewRedisIdempotencyCache(inner ports.IdempotencyRepository, client *redis.Client, log *slog.Logger) *RedisIdempotencyCache {
	return &RedisIdempotencyCache{inner: inner, client: client, log: log}
}

func redisKey(key string) string {
	return "idempotency:" + key
}

// Find checks Redis first; a miss or a disabled/unreachable Redis
// falls through to Postgres, the source of truth.
func (c *RedisIdempotencyCache) Find(ctx context.Context, key string) (*entities.IdempotencyRecord, error) {
	if c.client != nil {
		raw, err := c.client.Get(ctx, redisKey(key)).Bytes()
		if err == nil {
			var rec redisRecord
			if jsonErr := json.Unmarshal(raw, &rec); jsonErr == nil {
				return &entities.IdempotencyRecord{
					Key: rec.Key, Endpoint: rec.Endpoint, ResponseBody: rec.ResponseBody,
					CreatedAt: rec.CreatedAt, ExpiresAt: rec.ExpiresAt,
				}, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			c.log.WarnContext(ctx, "idempotency redis read failed, falling back to postgres", "error", err)
		}
	}

	record, err := c.inner.Find(ctx, key)
	if err != nil || record == nil {
		return record, err
	}

	c.populate(ctx, record)
	return record, nil
}

// Insert always writes Postgres first — it alone enforces the
// uniqueness guarantee a DuplicateRaceError depends on — then
// best-effort mirrors the record into Redis.
func (c *RedisIdempotencyCache) Insert(ctx context.Context, record *entities.IdempotencyRecord) error {
	if err := c.inner.Insert(ctx, record); err != nil {
		return err
	}
	c.populate(ctx, record)
	return nil
}

func (c *RedisIdempotencyCache) populate(ctx context.Context, record *entities.IdempotencyRecord) {
	if c.client == nil {
		return
	}
	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(redisRecord{
		Key: record.Key, Endpoint: record.Endpoint, ResponseBody: record.ResponseBody,
		CreatedAt: record.CreatedAt, ExpiresAt: record.ExpiresAt,
	})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, redisKey(record.Key), raw, ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "idempotency redis populate failed", "error", err)
	}
}
