// ABOUTME: Configuration management for the trends services with environment variable support
// ABOUTME: Defines settings for the database, user service, cache, and rate limiting

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	coreerrors "trends-shared/core/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Settings holds all shared configuration for a trends microservice.
type Settings struct {
	// Database contains database connection configuration
	Database DatabaseConfig

	// UserService contains the external user service endpoints
	UserService UserServiceConfig

	// Cache contains cache backend configuration
	Cache CacheConfig

	// RateLimit contains API rate limiting configuration
	RateLimit RateLimitConfig
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// URL is the database connection string (DSN)
	URL string
}

// UserServiceConfig holds the endpoints used to authenticate requests
type UserServiceConfig struct {
	// AuthURL is the endpoint that validates a bearer token and returns
	// the current user
	AuthURL string `validate:"omitempty,url"`

	// InfoURL is the endpoint that returns a user by ID. It contains a
	// {user_id} placeholder that is substituted per request.
	InfoURL string

	// RequestTimeout bounds each call to the user service
	RequestTimeout time.Duration `validate:"gte=0"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string `validate:"oneof=memory redis"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// RateLimitConfig holds API rate limiting configuration
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained per-client request rate (0 disables limiting)
	RequestsPerSecond int `validate:"gte=0"`

	// Burst is the number of requests a client may send above the sustained rate
	Burst int `validate:"gte=0"`
}

// DefaultUserRequestTimeout is applied when USER_REQUEST_TIMEOUT is not set.
const DefaultUserRequestTimeout = 10 * time.Second

// LoadFromEnv loads settings from environment variables.
func LoadFromEnv() (*Settings, error) {
	cfg := &Settings{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		UserService: UserServiceConfig{
			AuthURL:        os.Getenv("USER_AUTH_URL"),
			InfoURL:        os.Getenv("USER_INFO_URL"),
			RequestTimeout: time.Duration(getEnvAsIntOrDefault("USER_REQUEST_TIMEOUT", 10)) * time.Second,
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsIntOrDefault("RATE_LIMIT_RPS", 0),
			Burst:             getEnvAsIntOrDefault("RATE_LIMIT_BURST", 0),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the settings are valid.
func (c *Settings) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &coreerrors.ValidationError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			}
		}
		return err
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	return nil
}

// Update applies the given field values, keyed by their environment variable
// names. Unknown fields and values that fail validation are rejected, and in
// either case no field is changed.
func (c *Settings) Update(values map[string]string) error {
	updated := *c

	for key, value := range values {
		if err := updated.set(key, value); err != nil {
			return err
		}
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	*c = updated
	return nil
}

// set assigns a single field by its environment variable name.
func (c *Settings) set(key, value string) error {
	switch key {
	case "DATABASE_URL":
		c.Database.URL = value
	case "USER_AUTH_URL":
		c.UserService.AuthURL = value
	case "USER_INFO_URL":
		c.UserService.InfoURL = value
	case "USER_REQUEST_TIMEOUT":
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("USER_REQUEST_TIMEOUT must be an integer: %w", err)
		}
		c.UserService.RequestTimeout = time.Duration(seconds) * time.Second
	case "CACHE_TYPE":
		c.Cache.Type = value
	case "REDIS_ADDRESS":
		c.Cache.Redis.Address = value
	case "REDIS_PASSWORD":
		c.Cache.Redis.Password = value
	case "REDIS_DB":
		db, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("REDIS_DB must be an integer: %w", err)
		}
		c.Cache.Redis.DB = db
	case "MEMORY_CACHE_EXPIRATION":
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("MEMORY_CACHE_EXPIRATION must be an integer: %w", err)
		}
		c.Cache.Memory.DefaultExpiration = seconds
	case "RATE_LIMIT_RPS":
		rps, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS must be an integer: %w", err)
		}
		c.RateLimit.RequestsPerSecond = rps
	case "RATE_LIMIT_BURST":
		burst, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_BURST must be an integer: %w", err)
		}
		c.RateLimit.Burst = burst
	default:
		return fmt.Errorf("field '%s' does not exist in settings", key)
	}

	return nil
}
