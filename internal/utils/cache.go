package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // String conversion for key building
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache lifetimes. Balance and profile entries are invalidated explicitly on
// every mutation, so the TTLs only bound staleness after an external write;
// the service catalog is seed data and tolerates a longer window.
const (
	BalanceTTL = 60 * time.Second // Balance read cache
	ProfileTTL = 60 * time.Second // Profile read cache
	CatalogTTL = 5 * time.Minute  // Service catalog cache
)

// CatalogKey is the cache key for the service catalog (one entry, all users)
const CatalogKey = "services:catalog"

// BalanceKey builds the cache key for a user's balance
func BalanceKey(userID uint) string {
	return "balance:user:" + strconv.Itoa(int(userID))
}

// ProfileKey builds the cache key for a user's profile
func ProfileKey(userID uint) string {
	return "profile:user:" + strconv.Itoa(int(userID))
}

// GetCache looks a key up in Redis and unmarshals the stored JSON into dest.
// The bool reports whether the key existed
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache stores a value in Redis as JSON under the given key and TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache invalidates a key, used after balance and profile mutations
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}
