package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cristianoliveira/camtray/internal/config"
)

const valueFileExt = ".value"

// FileStore keeps each key in its own file under a directory.
// Writes go to a temp file that is renamed into place under a directory lock.
type FileStore struct {
	dir  string
	lock *Lock
}

// NewFileStore creates the directory if needed and returns a FileStore rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: directory cannot be empty")
	}
	if err := os.MkdirAll(dir, config.FileModeDir); err != nil {
		return nil, fmt.Errorf("file store: create directory: %w", err)
	}
	return &FileStore{dir: dir, lock: NewLock(filepath.Join(dir, ".lock"))}, nil
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+valueFileExt)
}

// Get reads the value stored under key.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("file store: read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set atomically replaces the value stored under key.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}
	return withLock(s.lock, func() error {
		tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
		if err != nil {
			return fmt.Errorf("file store: create temp file: %w", err)
		}
		tmpName := tmp.Name()
		if _, err := tmp.WriteString(value); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("file store: write %s: %w", key, err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("file store: close %s: %w", key, err)
		}
		if err := os.Chmod(tmpName, config.FileModeFile); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("file store: chmod %s: %w", key, err)
		}
		if err := os.Rename(tmpName, s.path(key)); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("file store: replace %s: %w", key, err)
		}
		return nil
	})
}

// Remove deletes the file for key.
func (s *FileStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}
	return withLock(s.lock, func() error {
		if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("file store: remove %s: %w", key, err)
		}
		return nil
	})
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}
