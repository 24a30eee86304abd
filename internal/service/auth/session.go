package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petcareapp/portal-api/pkg/errors"
)

// SessionStore keeps the mapping from portal session IDs to backend API
// tokens. Only the store ever sees the backend token; portal clients carry
// a JWT referencing the session.
type SessionStore interface {
	Save(ctx context.Context, sessionID, backendToken string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

const sessionKeyPrefix = "portal:session:"

type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(redisURL string) (*RedisSessionStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return &RedisSessionStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sessionID, backendToken string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKeyPrefix+sessionID, backendToken, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (string, error) {
	token, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", errors.NewUnauthorized(fmt.Errorf("session expired or revoked"))
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return token, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Ping verifies connectivity at startup.
func (s *RedisSessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
