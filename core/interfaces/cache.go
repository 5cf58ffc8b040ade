// Package interfaces defines the core interfaces shared by the trends
// microservices. These interfaces allow for dependency injection and make
// the code testable.
package interfaces

import (
	"context"
	"time"
)

// Cache defines the interface for cache operations.
// Implementations can be Redis, in-memory, or any other caching solution.
//
// Example usage:
//
//	cache := someCache // implements Cache interface
//
//	// Store a value
//	err := cache.Set(ctx, "trends:US:7d", payload, 1*time.Hour)
//
//	// Retrieve a value
//	data, err := cache.Get(ctx, "trends:US:7d")
//	if err != nil {
//		// handle error or cache miss
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns the cached data as []byte or an error if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}

// DocumentCache stores structured JSON documents, such as trends result
// payloads, without the caller marshalling them by hand.
type DocumentCache interface {
	// SetDocument stores a document under the given key with a TTL.
	// A ttl of 0 stores the document indefinitely.
	SetDocument(ctx context.Context, key string, doc interface{}, ttl time.Duration) error

	// GetDocument retrieves a document by key and unmarshals it into dest.
	GetDocument(ctx context.Context, key string, dest interface{}) error

	// DeleteDocument removes a document by key.
	DeleteDocument(ctx context.Context, key string) error
}
