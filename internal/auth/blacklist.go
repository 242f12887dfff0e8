package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// package-level Redis client used for the access-token blacklist (optional)
var blacklistClient *redis.Client

// SetBlacklistClient configures the Redis client used for blacklist operations.
// Safe to call with nil to disable blacklist features.
func SetBlacklistClient(c *redis.Client) {
	blacklistClient = c
}

// BlacklistToken stores the given token in the Redis blacklist with TTL.
// Without a configured Redis client this is a no-op: tokens then stay valid
// until they expire, which matches the stateless-session model.
func BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if blacklistClient == nil {
		return nil
	}
	return blacklistClient.Set(ctx, "blacklist:access:"+token, "1", ttl).Err()
}

// IsTokenBlacklisted returns true when the token exists in the Redis blacklist.
// If no Redis client is configured, returns (false, nil).
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if blacklistClient == nil {
		return false, nil
	}
	exists, err := blacklistClient.Exists(ctx, "blacklist:access:"+token).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
