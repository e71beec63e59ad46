// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tokenstore persists the session token across process restarts.

It is the durable client storage behind the session controller: the token is
written on login or registration, read once at startup, and removed on logout
or when the backend rejects it.

Implementations:

  - [FileStore]: a 0600 file under the user's home directory (default).
  - [RedisStore]: a shared key with a TTL following the token's own expiry.
  - [MemoryStore]: process-local, for tests and throwaway sessions.
*/
package tokenstore

import (
	"context"
	"sync"
)

// Store is the durable home of the opaque session token.
//
// Load returns an empty string, not an error, when no token is persisted.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// # Memory Store

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore returns a store optionally seeded with a token.
func NewMemoryStore(seed string) *MemoryStore {
	return &MemoryStore{token: seed}
}

// Load implements [Store].
func (store *MemoryStore) Load(context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token, nil
}

// Save implements [Store].
func (store *MemoryStore) Save(_ context.Context, token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = token
	return nil
}

// Clear implements [Store].
func (store *MemoryStore) Clear(context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = ""
	return nil
}
