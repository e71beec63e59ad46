// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/campusshare/internal/platform/sec"
)

// RedisStore keeps the token under a single Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed [Store].
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key, now: time.Now}
}

/*
Load retrieves the persisted token.

Returns:
  - string: The token, or "" when the key is absent or expired
  - error: Connectivity errors
*/
func (store *RedisStore) Load(ctx context.Context) (string, error) {
	token, err := store.client.Get(ctx, store.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis_token_get_failed: %w", err)
	}
	return token, nil
}

/*
Save stores the token.

Description: When the token is a JWT with an expiry, the key expires with it;
opaque tokens are kept until cleared.
*/
func (store *RedisStore) Save(ctx context.Context, token string) error {
	var ttl time.Duration
	if expiry, ok := sec.ExpiresAt(token); ok {
		ttl = expiry.Sub(store.now())
		if ttl <= 0 {
			return store.Clear(ctx)
		}
	}

	if err := store.client.Set(ctx, store.key, token, ttl).Err(); err != nil {
		return fmt.Errorf("redis_token_set_failed: %w", err)
	}
	return nil
}

// Clear removes the token key.
func (store *RedisStore) Clear(ctx context.Context) error {
	if err := store.client.Del(ctx, store.key).Err(); err != nil {
		return fmt.Errorf("redis_token_delete_failed: %w", err)
	}
	return nil
}
