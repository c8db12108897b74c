// Copyright (c) 2026 Porchlight. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/averyclark/porchlight/internal/platform/constants"
)

// RedisSessionRepository stores session records as JSON values under the
// admin session prefix. Redis TTL handles expiry; there is no cleanup job.
type RedisSessionRepository struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(sessionID string) string {
	return constants.RedisPrefixAdminSession + sessionID
}

func (repository *RedisSessionRepository) Save(ctx context.Context, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis: failed to marshal session: %w", err)
	}

	if err := repository.client.Set(ctx, sessionKey(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to save session: %w", err)
	}
	return nil
}

func (repository *RedisSessionRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	count, err := repository.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis: failed to check session: %w", err)
	}
	return count > 0, nil
}

func (repository *RedisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := repository.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis: failed to delete session: %w", err)
	}
	return nil
}
