// Package controller holds the presentation state of camtray and runs user
// actions against the capture orchestrator and the gallery store.
package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cristianoliveira/camtray/internal/camera"
	"github.com/cristianoliveira/camtray/internal/capture"
	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/cristianoliveira/camtray/internal/logging"
)

const (
	// DefaultTimeout bounds capture, select and toggle actions.
	DefaultTimeout = 15 * time.Second
	// DefaultMultiCount is how many pictures TakeMultiple attempts.
	DefaultMultiCount = 3
)

var errTimedOut = errors.New("controller: stopped waiting for capture")

// Capturer is the part of the capture orchestrator the controller drives.
type Capturer interface {
	TakePicture(ctx context.Context) (string, error)
	SelectFromLibrary(ctx context.Context) (string, error)
	SwitchCamera(ctx context.Context, direction camera.Direction) (string, error)
	CaptureMany(ctx context.Context, count int) []string
}

// GalleryStore persists image references.
type GalleryStore interface {
	Load(ctx context.Context) gallery.Gallery
	Add(ctx context.Context, ref string) gallery.Gallery
	Remove(ctx context.Context, ref string) gallery.Gallery
	Clear(ctx context.Context)
}

// State is a snapshot of what the UI shows.
type State struct {
	Current        string
	Loading        bool
	ErrorMessage   string
	GalleryVisible bool
	Facing         camera.Direction
	Gallery        gallery.Gallery
}

// Controller owns State. Actions may be called from any goroutine; the lock is
// never held across a capability call, so State stays readable while loading.
type Controller struct {
	mu         sync.Mutex
	state      State
	last       Action
	capturer   Capturer
	store      GalleryStore
	timeout    time.Duration
	multiCount int
	logger     logging.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout sets how long capture, select and toggle wait for a result.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMultiCount sets how many pictures TakeMultiple attempts.
func WithMultiCount(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.multiCount = n
		}
	}
}

// WithFacing sets the initial camera direction.
func WithFacing(d camera.Direction) Option {
	return func(c *Controller) {
		c.state.Facing = d
	}
}

// WithLogger sets the controller logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Controller and loads the persisted gallery into its view.
func New(ctx context.Context, capturer Capturer, store GalleryStore, opts ...Option) *Controller {
	if capturer == nil {
		panic("controller.New: capturer dependency cannot be nil")
	}
	if store == nil {
		panic("controller.New: gallery dependency cannot be nil")
	}
	c := &Controller{
		state:      State{Facing: camera.DirectionRear},
		last:       ActionCapture,
		capturer:   capturer,
		store:      store,
		timeout:    DefaultTimeout,
		multiCount: DefaultMultiCount,
		logger:     logging.With("component", "controller"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state.Gallery = store.Load(ctx)
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Gallery = c.state.Gallery.Clone()
	return s
}

// begin clears the previous error and marks an action in flight. The
// returned func clears the loading flag.
func (c *Controller) begin(action Action) func() {
	c.mu.Lock()
	c.state.ErrorMessage = ""
	c.state.Loading = true
	c.last = action
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.state.Loading = false
		c.mu.Unlock()
	}
}

type result struct {
	ref string
	err error
}

// race runs fn and waits for it, the timeout or ctx, whichever comes first.
// fn's context is cancelled once race returns, and a result that arrives
// afterwards is dropped.
func (c *Controller) race(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		ref, err := fn(callCtx)
		done <- result{ref: ref, err: err}
	}()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.ref, r.err
	case <-timer.C:
		c.logger.Warn("capture timed out, discarding late result", "timeout", c.timeout.String())
		return "", capture.NewTimeoutError(errTimedOut)
	case <-ctx.Done():
		return "", &capture.Error{Kind: capture.KindCancelled, Err: ctx.Err()}
	}
}

// apply records the outcome of a single-image action.
func (c *Controller) apply(ctx context.Context, action Action, ref string, err error) error {
	if err != nil {
		msg := Message(action, err)
		c.logger.Error("action failed", "action", string(action), "error", err)
		c.mu.Lock()
		c.state.ErrorMessage = msg
		c.mu.Unlock()
		return err
	}
	g := c.store.Add(ctx, ref)
	c.mu.Lock()
	c.state.Current = ref
	c.state.Gallery = g
	c.mu.Unlock()
	c.logger.Info("action succeeded", "action", string(action), "ref", ref)
	return nil
}

// TakePicture captures a new photo and shows it.
func (c *Controller) TakePicture(ctx context.Context) error {
	defer c.begin(ActionCapture)()
	ref, err := c.race(ctx, c.capturer.TakePicture)
	return c.apply(ctx, ActionCapture, ref, err)
}

// SelectFromLibrary picks an existing photo and shows it.
func (c *Controller) SelectFromLibrary(ctx context.Context) error {
	defer c.begin(ActionSelect)()
	ref, err := c.race(ctx, c.capturer.SelectFromLibrary)
	return c.apply(ctx, ActionSelect, ref, err)
}

// ToggleCamera captures with the opposite facing. The facing only changes
// when the capture succeeds.
func (c *Controller) ToggleCamera(ctx context.Context) error {
	c.mu.Lock()
	next := c.state.Facing.Opposite()
	c.mu.Unlock()
	return c.captureFacing(ctx, ActionToggle, next)
}

// TakePictureFacing captures with the given facing and keeps it on success.
func (c *Controller) TakePictureFacing(ctx context.Context, direction camera.Direction) error {
	return c.captureFacing(ctx, ActionCapture, direction)
}

func (c *Controller) captureFacing(ctx context.Context, action Action, direction camera.Direction) error {
	defer c.begin(action)()
	ref, err := c.race(ctx, func(ctx context.Context) (string, error) {
		return c.capturer.SwitchCamera(ctx, direction)
	})
	if err := c.apply(ctx, action, ref, err); err != nil {
		return err
	}
	c.mu.Lock()
	c.state.Facing = direction
	c.mu.Unlock()
	return nil
}

// TakeMultiple captures the configured number of photos in a row.
func (c *Controller) TakeMultiple(ctx context.Context) ([]string, error) {
	return c.TakeMultipleCount(ctx, c.multiCount)
}

// TakeMultipleCount captures count photos in a row and shows the last one
// that succeeded. It fails only when none did.
func (c *Controller) TakeMultipleCount(ctx context.Context, count int) ([]string, error) {
	defer c.begin(ActionMulti)()
	refs := c.capturer.CaptureMany(ctx, count)
	g := c.store.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Gallery = g
	if len(refs) == 0 {
		c.state.ErrorMessage = fallback(ActionMulti)
		c.logger.Error("action failed", "action", string(ActionMulti), "count", count)
		return refs, errors.New(c.state.ErrorMessage)
	}
	c.state.Current = refs[len(refs)-1]
	c.logger.Info("action succeeded", "action", string(ActionMulti), "captured", len(refs), "of", count)
	return refs, nil
}

// LastAction returns the action Retry would repeat.
func (c *Controller) LastAction() Action {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Retry repeats the last capture action.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	last := c.last
	c.mu.Unlock()

	switch last {
	case ActionSelect:
		return c.SelectFromLibrary(ctx)
	case ActionToggle:
		return c.ToggleCamera(ctx)
	case ActionMulti:
		_, err := c.TakeMultiple(ctx)
		return err
	default:
		return c.TakePicture(ctx)
	}
}

// ToggleGallery flips the gallery panel and returns whether it is visible.
func (c *Controller) ToggleGallery() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.GalleryVisible = !c.state.GalleryVisible
	return c.state.GalleryVisible
}

// SelectItem shows ref.
func (c *Controller) SelectItem(ref string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ErrorMessage = ""
	c.state.Current = ref
}

// DeleteItem removes ref from the gallery. Deleting the shown image clears it.
func (c *Controller) DeleteItem(ctx context.Context, ref string) {
	g := c.store.Remove(ctx, ref)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ErrorMessage = ""
	c.state.Gallery = g
	if c.state.Current == ref {
		c.state.Current = ""
	}
}

// ClearGallery empties the gallery and the shown image if confirm returns
// true. It reports whether anything was cleared.
func (c *Controller) ClearGallery(ctx context.Context, confirm func() bool) bool {
	if confirm == nil || !confirm() {
		return false
	}
	c.store.Clear(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ErrorMessage = ""
	c.state.Gallery = gallery.Gallery{}
	c.state.Current = ""
	return true
}

// Refresh reloads the gallery view from the store.
func (c *Controller) Refresh(ctx context.Context) gallery.Gallery {
	g := c.store.Load(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Gallery = g
	return g.Clone()
}
