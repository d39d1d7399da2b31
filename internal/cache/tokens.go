package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoked JWTs are tracked by jti until their natural expiry. This is session
// state for logout, not a read cache; timeline and graph reads always hit the
// database.

func revokedKey(jti string) string {
	return "revoked:jti:" + jti
}

// RevokeToken marks a token's jti as revoked for the given TTL (the token's
// remaining lifetime). A nil Redis client makes this a no-op: logout then
// degrades to client-side token disposal.
func RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return client.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

// IsTokenRevoked reports whether a token's jti has been revoked. Redis being
// unavailable fails open so a cache outage does not lock every user out.
func IsTokenRevoked(ctx context.Context, jti string) bool {
	if client == nil || jti == "" {
		return false
	}
	_, err := client.Get(ctx, revokedKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return false
	}
	return err == nil
}
