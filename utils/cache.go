// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"medibook/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated client for authorization caching.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// CacheAuthToken stores the hash of an issued token under the principal's cache key.
func CacheAuthToken(principal, id, token string) {
	client := GetAuthCacheClient()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Set(ctx, AuthCachePrefix+principal+":"+id, HashToken(token), AuthCacheTTL).Err(); err != nil {
		GetLogger().Sugar().Warnf("failed to cache auth token for %s %s: %v", principal, id, err)
	}
}
