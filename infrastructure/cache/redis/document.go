// ABOUTME: JSON document cache on top of RedisJSON via go-rejson
// ABOUTME: Stores trends result payloads as queryable JSON documents

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nitishm/go-rejson/v4"
	goredis "github.com/redis/go-redis/v9"
)

// DocumentCache implements interfaces.DocumentCache using the RedisJSON
// module. It shares the connection of an existing RedisCache.
type DocumentCache struct {
	client *goredis.Client
}

// NewDocumentCache creates a document cache over the given Redis cache.
func NewDocumentCache(cache *RedisCache) *DocumentCache {
	return &DocumentCache{client: cache.client}
}

// SetDocument stores a document under key with a TTL.
// A ttl of 0 stores the document indefinitely.
func (d *DocumentCache) SetDocument(ctx context.Context, key string, doc interface{}, ttl time.Duration) error {
	handler := d.handler(ctx)

	if _, err := handler.JSONSet(key, ".", doc); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}

	if ttl > 0 {
		if err := d.client.Expire(ctx, key, ttl).Err(); err != nil {
			return fmt.Errorf("failed to set document TTL: %w", err)
		}
	}

	return nil
}

// GetDocument retrieves a document by key and unmarshals it into dest.
func (d *DocumentCache) GetDocument(ctx context.Context, key string, dest interface{}) error {
	handler := d.handler(ctx)

	raw, err := handler.JSONGet(key, ".")
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("failed to read document: %w", err)
	}

	data, err := documentBytes(raw)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// DeleteDocument removes a document by key.
func (d *DocumentCache) DeleteDocument(ctx context.Context, key string) error {
	handler := d.handler(ctx)

	if _, err := handler.JSONDel(key, "."); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

func (d *DocumentCache) handler(ctx context.Context) *rejson.Handler {
	handler := rejson.NewReJSONHandler()
	handler.SetGoRedisClientWithContext(ctx, d.client)
	return handler
}

// documentBytes normalizes the driver's reply into raw JSON bytes.
func documentBytes(raw interface{}) ([]byte, error) {
	switch v := raw.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unexpected document reply type %T", raw)
	}
}
