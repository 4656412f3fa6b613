package utils

import (
	"context"
	"log"
	"time"

	"tempo/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (day-schedule caching).
	CacheClient *redis.Client
	// AssistantContextClient holds assistant conversation contexts.
	AssistantContextClient *redis.Client
	// TokenClient holds per-user Google OAuth tokens.
	TokenClient *redis.Client
)

func newRedisClient(db int, label string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", label, err)
	}
	return client
}

// InitRedis initializes all Redis clients.
func InitRedis() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "cache")
	AssistantContextClient = newRedisClient(config.AppConfig.RedisAssistantDB, "assistant")
	TokenClient = newRedisClient(config.AppConfig.RedisTokenDB, "tokens")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "cache")
	}
	return CacheClient
}

// GetAssistantContextClient returns the assistant context client.
func GetAssistantContextClient() *redis.Client {
	if AssistantContextClient == nil {
		AssistantContextClient = newRedisClient(config.AppConfig.RedisAssistantDB, "assistant")
	}
	return AssistantContextClient
}

// GetTokenClient returns the OAuth token client.
func GetTokenClient() *redis.Client {
	if TokenClient == nil {
		TokenClient = newRedisClient(config.AppConfig.RedisTokenDB, "tokens")
	}
	return TokenClient
}
