package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"

	"petstock/internal/domain/invoice"
	"petstock/pkg/logger"
)

// Compile-time check.
var _ invoice.HistoryCache = (*RedisHistory)(nil)

const historyKeyPrefix = "petstock:history:"

// RedisHistory stores month payloads in Redis so the cache survives
// restarts and is shared across instances. Payloads are JSON compressed
// with zstd; a month of invoices compresses well.
type RedisHistory struct {
	client  *redis.Client
	ttl     time.Duration
	encoder *zstd.Encoder
	decoder *zstd.Decoder

	// keys tracks what we wrote, so Invalidate can delete without a
	// SCAN.
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewRedisHistory creates a Redis-backed history cache. A zero ttl
// means entries live until invalidated.
func NewRedisHistory(client *redis.Client, ttl time.Duration) (*RedisHistory, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &RedisHistory{
		client:  client,
		ttl:     ttl,
		encoder: encoder,
		decoder: decoder,
		keys:    make(map[string]struct{}),
	}, nil
}

// Get returns the cached invoices for a month key.
func (c *RedisHistory) Get(ctx context.Context, monthKey string) ([]*invoice.Invoice, bool, error) {
	data, err := c.client.Get(ctx, historyKeyPrefix+monthKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	raw, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, false, fmt.Errorf("decompress payload: %w", err)
	}

	var invoices []*invoice.Invoice
	if err := json.Unmarshal(raw, &invoices); err != nil {
		return nil, false, fmt.Errorf("unmarshal payload: %w", err)
	}
	return invoices, true, nil
}

// Set stores the invoices for a month key.
func (c *RedisHistory) Set(ctx context.Context, monthKey string, invoices []*invoice.Invoice) error {
	raw, err := json.Marshal(invoices)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	payload := c.encoder.EncodeAll(raw, nil)
	if err := c.client.Set(ctx, historyKeyPrefix+monthKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	c.mu.Lock()
	c.keys[monthKey] = struct{}{}
	c.mu.Unlock()
	return nil
}

// Invalidate deletes every month we wrote. Deletion runs against a
// fresh context so cache consistency does not depend on the lifetime of
// the request that triggered it.
func (c *RedisHistory) Invalidate() {
	c.mu.Lock()
	keys := make([]string, 0, len(c.keys))
	for k := range c.keys {
		keys = append(keys, historyKeyPrefix+k)
	}
	c.keys = make(map[string]struct{})
	c.mu.Unlock()

	if len(keys) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn(ctx, "history cache invalidation failed", "keys", len(keys), "error", err)
	}
}
