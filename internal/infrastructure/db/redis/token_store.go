package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRefreshTTL = 7 * 24 * time.Hour

// TokenStore keeps refresh tokens in Redis with a TTL.
// Key format: refresh:<token> -> user id
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
// A non-positive ttl falls back to seven days.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = defaultRefreshTTL
	}
	return &TokenStore{client: client, ttl: ttl}
}

func (s *TokenStore) Save(ctx context.Context, token, userID string) error {
	if err := s.client.Set(ctx, s.key(token), userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Lookup resolves the user id behind a token. An unknown or expired token
// yields an empty id, not an error.
func (s *TokenStore) Lookup(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("lookup refresh token: %w", err)
	}
	return userID, nil
}

func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *TokenStore) key(token string) string {
	return "refresh:" + token
}
