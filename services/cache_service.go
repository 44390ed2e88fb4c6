package services

import (
	"aureliaskin_server/config"
	"aureliaskin_server/structs"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

// CacheService provides Redis caching for receipts and rate-limit counters
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

// getRedisClient returns a singleton Redis client with proper connection pooling
func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			// Connection pool settings
			PoolSize:        cfg.Cache.PoolSize,
			MinIdleConns:    cfg.Cache.MinIdleConns,
			MaxIdleConns:    cfg.Cache.MaxIdleConns,
			PoolTimeout:     cfg.Cache.PoolTimeout,
			ConnMaxIdleTime: cfg.Cache.IdleTimeout,

			// Timeouts
			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			// Retry settings
			MaxRetries:      cfg.Cache.MaxRetries,
			MinRetryBackoff: cfg.Cache.MinRetryBackoff,
			MaxRetryBackoff: cfg.Cache.MaxRetryBackoff,
		})
	})
	return redisClient
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// isTransientCacheError reports whether a Redis error is worth retrying
func isTransientCacheError(err error) bool {
	if err == nil || err == redis.Nil {
		return false
	}

	errStr := err.Error()
	transient := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, s := range transient {
		if strings.Contains(errStr, s) {
			return true
		}
	}
	return false
}

// withRetry executes a Redis operation with linear backoff retry logic
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == maxRetries || !isTransientCacheError(err) {
			break
		}

		time.Sleep(time.Duration(100*(attempt+1)) * time.Millisecond)
	}

	if !isTransientCacheError(lastErr) {
		return lastErr
	}
	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// Set sets a key with TTL and automatic retry logic
func (cs *CacheService) Set(key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key with automatic retry logic. A missing key returns ""
// with a nil error.
func (cs *CacheService) Get(key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(redisCtx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	return result, err
}

// Delete removes a key with automatic retry logic
func (cs *CacheService) Delete(key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, key).Err()
	}, 3)
}

func receiptCacheKey(orderNumber string) string {
	return fmt.Sprintf("receipt:%s", orderNumber)
}

// GetReceipt returns a cached receipt, or nil on a cache miss
func (cs *CacheService) GetReceipt(orderNumber string) (*structs.Receipt, error) {
	raw, err := cs.Get(receiptCacheKey(orderNumber))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var receipt structs.Receipt
	if err := json.Unmarshal([]byte(raw), &receipt); err != nil {
		// Drop the poisoned entry and treat it as a miss
		cs.logger.Warn("Corrupt receipt cache entry, evicting",
			gecho.Field("error", err),
			gecho.Field("order_number", orderNumber))
		_ = cs.Delete(receiptCacheKey(orderNumber))
		return nil, nil
	}

	return &receipt, nil
}

// SetReceipt caches a composed receipt with the configured TTL
func (cs *CacheService) SetReceipt(orderNumber string, receipt *structs.Receipt) error {
	raw, err := json.Marshal(receipt)
	if err != nil {
		return err
	}
	return cs.Set(receiptCacheKey(orderNumber), raw, cs.config.Cache.ReceiptTTL)
}

// IncrementRateLimit increments the request counter for an ip/endpoint pair
// and returns the count within the current window
func (cs *CacheService) IncrementRateLimit(ip, endpoint string, window time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var count int64
	err := cs.withRetry(func() error {
		pipe := cs.client.TxPipeline()
		incr := pipe.Incr(redisCtx, key)
		pipe.ExpireNX(redisCtx, key, window)
		if _, err := pipe.Exec(redisCtx); err != nil {
			return err
		}
		count = incr.Val()
		return nil
	}, 2)

	return int(count), err
}
