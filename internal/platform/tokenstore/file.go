// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// FileStore keeps the token in a single owner-only file.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path. The parent directory is
// created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load implements [Store].
func (store *FileStore) Load(context.Context) (string, error) {
	data, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("tokenstore: read %s: %w", store.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save implements [Store].
//
// The token is written to a temporary sibling and renamed into place.
func (store *FileStore) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(store.path), dirPerm); err != nil {
		return fmt.Errorf("tokenstore: create directory: %w", err)
	}

	tmp := store.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), filePerm); err != nil {
		return fmt.Errorf("tokenstore: write token: %w", err)
	}
	if err := os.Rename(tmp, store.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("tokenstore: replace token: %w", err)
	}
	return nil
}

// Clear implements [Store]. Clearing an absent token is not an error.
func (store *FileStore) Clear(context.Context) error {
	if err := os.Remove(store.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokenstore: remove token: %w", err)
	}
	return nil
}
