// Package gallery persists the most-recent-first list of captured image references.
//
// Persistence is best-effort: a missing or unreadable entry loads as an empty
// gallery and write failures are logged, never returned.
package gallery

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/cristianoliveira/camtray/internal/kv"
	"github.com/cristianoliveira/camtray/internal/logging"
)

// StorageKey is the key the gallery blob is stored under.
const StorageKey = "photo_gallery"

// Gallery is an ordered list of unique image references, newest first.
type Gallery []string

// Contains reports whether ref is in the gallery.
func (g Gallery) Contains(ref string) bool {
	return g.IndexOf(ref) >= 0
}

// IndexOf returns the position of ref, or -1.
func (g Gallery) IndexOf(ref string) int {
	for i, r := range g {
		if r == ref {
			return i
		}
	}
	return -1
}

// Clone returns a copy that does not share backing storage with g.
func (g Gallery) Clone() Gallery {
	if g == nil {
		return Gallery{}
	}
	out := make(Gallery, len(g))
	copy(out, g)
	return out
}

// Hook points fired after a gallery change.
const (
	HookPostAdd    = "post-add"
	HookPostRemove = "post-remove"
	HookPostClear  = "post-clear"
)

// HookRunner runs user hooks for a gallery change. Failures never affect the
// gallery operation.
type HookRunner interface {
	Run(ctx context.Context, point string, env map[string]string) error
}

// Store owns every read and write of the persisted gallery.
type Store struct {
	kv     kv.Store
	hooks  HookRunner
	logger logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for swallowed persistence failures.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHooks fires hooks after add, remove and clear.
func WithHooks(h HookRunner) Option {
	return func(s *Store) { s.hooks = h }
}

// NewStore creates a gallery store backed by backend.
func NewStore(backend kv.Store, opts ...Option) *Store {
	if backend == nil {
		panic("gallery.NewStore: backend dependency cannot be nil")
	}
	s := &Store{kv: backend, logger: logging.With("component", "gallery")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted gallery. A missing, unreadable or corrupt entry
// yields an empty gallery.
func (s *Store) Load(ctx context.Context) Gallery {
	raw, found, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Error("failed to read gallery", "error", err)
		return Gallery{}
	}
	if !found {
		return Gallery{}
	}
	var g Gallery
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		s.logger.Warn("discarding unreadable gallery payload", "error", err, "bytes", len(raw))
		return Gallery{}
	}
	if g == nil {
		return Gallery{}
	}
	return g
}

// Save writes the full gallery. Failures are logged and swallowed.
func (s *Store) Save(ctx context.Context, g Gallery) {
	if g == nil {
		g = Gallery{}
	}
	data, err := json.Marshal(g)
	if err != nil {
		s.logger.Error("failed to encode gallery", "error", err)
		return
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		s.logger.Error("failed to save gallery", "error", err, "count", len(g))
	}
}

// Add inserts ref at the front unless it is already present, and returns the
// resulting gallery. Adding a present reference does not write.
func (s *Store) Add(ctx context.Context, ref string) Gallery {
	g := s.Load(ctx)
	if g.Contains(ref) {
		return g
	}
	g = append(Gallery{ref}, g...)
	s.Save(ctx, g)
	s.logger.Debug("added image to gallery", "ref", ref, "count", len(g))
	s.fire(ctx, HookPostAdd, ref, len(g))
	return g
}

// Remove deletes the first occurrence of ref and returns the resulting gallery.
// Removing an absent reference does not write.
func (s *Store) Remove(ctx context.Context, ref string) Gallery {
	g := s.Load(ctx)
	idx := g.IndexOf(ref)
	if idx < 0 {
		return g
	}
	g = append(g[:idx], g[idx+1:]...)
	s.Save(ctx, g)
	s.logger.Debug("removed image from gallery", "ref", ref, "count", len(g))
	s.fire(ctx, HookPostRemove, ref, len(g))
	return g
}

// Clear deletes the persisted entry entirely.
func (s *Store) Clear(ctx context.Context) {
	if err := s.kv.Remove(ctx, StorageKey); err != nil {
		s.logger.Error("failed to clear gallery", "error", err)
		return
	}
	s.logger.Info("gallery cleared")
	s.fire(ctx, HookPostClear, "", 0)
}

func (s *Store) fire(ctx context.Context, point, ref string, count int) {
	if s.hooks == nil {
		return
	}
	env := map[string]string{"CAMTRAY_COUNT": strconv.Itoa(count)}
	if ref != "" {
		env["CAMTRAY_REF"] = ref
	}
	if err := s.hooks.Run(ctx, point, env); err != nil {
		s.logger.Debug("gallery hook failed", "point", point, "error", err)
	}
}
