// Package kv provides the local key-value persistence used by the gallery.
package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/camtray/internal/colors"
	"github.com/cristianoliveira/camtray/internal/config"
	"github.com/cristianoliveira/camtray/internal/kv/sqlite"
)

const (
	// BackendFile selects one-file-per-key storage.
	BackendFile = "file"
	// BackendSQLite selects SQLite-backed storage.
	BackendSQLite = "sqlite"
	// BackendMemory selects process-local storage that is lost on exit.
	BackendMemory = "memory"

	kvDirName    = "kv"
	kvDBFileName = "camtray.db"
)

// ErrInvalidKey indicates an empty or malformed key.
var ErrInvalidKey = errors.New("invalid key")

// Store is a string key-value store.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
	_ Store = (*sqlite.Store)(nil)
)

var newSQLiteStore = func(path string) (Store, error) {
	return sqlite.New(path)
}

// GetStateDir returns the configured state directory.
func GetStateDir() string {
	if dir := config.Get("state_dir", ""); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "camtray")
}

// NewFromConfig creates a store based on the storage_backend setting.
func NewFromConfig() (Store, error) {
	return NewForBackend(config.Get("storage_backend", BackendFile))
}

// NewForBackend creates a store for the named backend. Unknown names and
// sqlite open failures fall back to the file backend with a warning.
func NewForBackend(backend string) (Store, error) {
	stateDir := GetStateDir()
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStore(filepath.Join(stateDir, kvDirName))
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		store, err := newSQLiteStore(filepath.Join(stateDir, kvDBFileName))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to file: %v", err))
			return NewFileStore(filepath.Join(stateDir, kvDirName))
		}
		return store, nil
	default:
		colors.Warning(fmt.Sprintf("unknown storage backend '%s', falling back to file", backend))
		return NewFileStore(filepath.Join(stateDir, kvDirName))
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
