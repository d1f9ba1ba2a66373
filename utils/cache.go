// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"staywise/config"

	"github.com/go-redis/redis/v8"
)

var (
	// AuthCacheClient is the dedicated client for the token whitelist.
	AuthCacheClient *redis.Client
)

// WhitelistPrefix namespaces whitelist keys; one currently-valid token per email.
const WhitelistPrefix = "jwt_whitelist:"

// InitAuthCache initializes the Redis client for the token whitelist.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AuthCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for the token whitelist.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// WhitelistToken stores the token for an email with the token's lifetime as TTL.
// Logging in again overwrites the previous entry, revoking the old token.
func WhitelistToken(ctx context.Context, client *redis.Client, email, token string, ttl time.Duration) error {
	return client.Set(ctx, WhitelistPrefix+email, token, ttl).Err()
}

// IsTokenWhitelisted reports whether the presented token is the currently
// valid one for the email.
func IsTokenWhitelisted(ctx context.Context, client *redis.Client, email, token string) bool {
	stored, err := client.Get(ctx, WhitelistPrefix+email).Result()
	if err != nil {
		return false
	}
	return stored == token
}

// RevokeToken drops the whitelist entry for an email (logout, password change,
// account deletion).
func RevokeToken(ctx context.Context, client *redis.Client, email string) error {
	return client.Del(ctx, WhitelistPrefix+email).Err()
}
