package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/usss-rp/portal/internal/config"
)

const denylistKeyPrefix = "auth:denylist:"

// Denylist stores revoked session tokens in redis until they would have
// expired anyway. Tokens are keyed by hash so raw JWTs never land in redis.
type Denylist struct {
	client *redis.Client
}

// NewDenylist creates a denylist backed by the given redis client.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// NewRedisClient builds a redis client from configuration and verifies
// connectivity.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// Revoke marks a token as logged out for the remainder of its lifetime.
func (d *Denylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired tokens need no entry.
		return nil
	}
	if err := d.client.Set(ctx, denylistKeyPrefix+tokenKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token has been logged out.
func (d *Denylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, err := d.client.Get(ctx, denylistKeyPrefix+tokenKey(token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
