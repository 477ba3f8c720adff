package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/cristianoliveira/camtray/internal/camera"
	"github.com/cristianoliveira/camtray/internal/capture"
	"github.com/cristianoliveira/camtray/internal/config"
	"github.com/cristianoliveira/camtray/internal/controller"
	"github.com/cristianoliveira/camtray/internal/fileserver"
	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/cristianoliveira/camtray/internal/hooks"
	"github.com/cristianoliveira/camtray/internal/kv"
	"github.com/cristianoliveira/camtray/internal/logging"
	"github.com/cristianoliveira/camtray/internal/status"
	"github.com/cristianoliveira/camtray/internal/tui/state"
)

// runtime holds the collaborators every command shares. It is built after
// configuration has been loaded.
type runtime struct {
	backend kv.Store
	store   *gallery.Store
	hooks   *hooks.Runner
	cam     camera.Capability
	orch    *capture.Orchestrator
	ctrl    *controller.Controller
}

func newRuntime(ctx context.Context) (*runtime, error) {
	backend, err := kv.NewFromConfig()
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	runner := hooks.NewFromConfig()
	store := gallery.NewStore(backend, gallery.WithHooks(runner))
	cam := camera.NewCommandCapability(camera.CommandConfigFromGlobal())
	timeout := config.GetSeconds("capture_timeout", controller.DefaultTimeout)
	orch := capture.New(cam, store,
		capture.WithCaptureSize(
			config.GetInt("capture_width", camera.DefaultWidth),
			config.GetInt("capture_height", camera.DefaultHeight),
			config.GetInt("capture_quality", camera.DefaultQuality),
		),
		capture.WithAttemptTimeout(timeout),
	)
	ctrl := controller.New(ctx, orch, store,
		controller.WithTimeout(timeout),
		controller.WithMultiCount(config.GetInt("multi_capture_count", controller.DefaultMultiCount)),
		controller.WithFacing(camera.ParseDirection(config.Get("default_direction", "rear"))),
	)
	logging.Debug("runtime ready", "storage_backend", config.Get("storage_backend", ""))
	return &runtime{backend: backend, store: store, hooks: runner, cam: cam, orch: orch, ctrl: ctrl}, nil
}

// Controller returns the presentation controller.
func (r *runtime) Controller() state.Controller {
	return r.ctrl
}

// FileServer returns a server for the photos and library directories.
func (r *runtime) FileServer() fileServer {
	return fileserver.New(r.store, nil, config.Get("photos_dir", ""), config.Get("library_dir", ""))
}

// Summary describes the gallery for the status command.
func (r *runtime) Summary(ctx context.Context) status.Summary {
	return status.NewSummary(r.store.Load(ctx), config.Get("storage_backend", "file"), string(r.ctrl.State().Facing))
}

func (r *runtime) Close() error {
	if r.hooks != nil {
		r.hooks.Wait()
	}
	return r.backend.Close()
}

// lazyRuntime opens the runtime on first use so commands like version never
// touch storage.
type lazyRuntime struct {
	mu   sync.Mutex
	open func(ctx context.Context) (*runtime, error)
	rt   *runtime
}

func newLazyRuntime(open func(ctx context.Context) (*runtime, error)) *lazyRuntime {
	return &lazyRuntime{open: open}
}

func (l *lazyRuntime) get(ctx context.Context) (*runtime, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.rt != nil {
		return l.rt, nil
	}
	rt, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	l.rt = rt
	return rt, nil
}

func (l *lazyRuntime) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.rt == nil {
		return
	}
	if err := l.rt.Close(); err != nil {
		output.Warning(fmt.Sprintf("failed to close storage: %v", err))
	}
	l.rt = nil
}

// provide adapts the lazy runtime to a command's dependency factory.
func provide[T any](l *lazyRuntime, pick func(*runtime) T) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		rt, err := l.get(ctx)
		if err != nil {
			var zero T
			return zero, err
		}
		return pick(rt), nil
	}
}
