// Package capture mediates calls to the camera capability: it checks
// permissions, resolves a displayable reference and classifies failures.
package capture

import (
	"context"
	"time"

	"github.com/cristianoliveira/camtray/internal/camera"
	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/cristianoliveira/camtray/internal/logging"
)

// Request describes one capture or selection.
type Request struct {
	Source camera.Source
	// Direction is only meaningful for camera.SourceCamera.
	Direction *camera.Direction
	// SkipPermissionCheck goes straight to the capability.
	SkipPermissionCheck bool
}

// GalleryAdder persists captured references.
type GalleryAdder interface {
	Add(ctx context.Context, ref string) gallery.Gallery
}

// Orchestrator talks to the camera capability on behalf of the UI.
type Orchestrator struct {
	cam     camera.Capability
	gallery GalleryAdder
	logger  logging.Logger
	width   int
	height  int
	quality int
	// attemptTimeout bounds each CaptureMany attempt. Zero means no limit.
	attemptTimeout time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the orchestrator logger.
func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCaptureSize overrides the default capture dimensions and JPEG quality.
// Non-positive values keep the defaults.
func WithCaptureSize(width, height, quality int) Option {
	return func(o *Orchestrator) {
		if width > 0 {
			o.width = width
		}
		if height > 0 {
			o.height = height
		}
		if quality > 0 {
			o.quality = quality
		}
	}
}

// WithAttemptTimeout bounds every CaptureMany attempt so a hung capture is
// skipped instead of blocking the remaining ones.
func WithAttemptTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.attemptTimeout = d
		}
	}
}

// New creates an Orchestrator.
func New(cam camera.Capability, store GalleryAdder, opts ...Option) *Orchestrator {
	if cam == nil {
		panic("capture.New: camera dependency cannot be nil")
	}
	if store == nil {
		panic("capture.New: gallery dependency cannot be nil")
	}
	o := &Orchestrator{
		cam:     cam,
		gallery: store,
		logger:  logging.With("component", "capture"),
		width:   camera.DefaultWidth,
		height:  camera.DefaultHeight,
		quality: camera.DefaultQuality,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// EnsurePermissions requests camera and photo permissions when either is not
// granted. Failures are logged and ignored: the capture call that follows is
// where a denial surfaces.
func (o *Orchestrator) EnsurePermissions(ctx context.Context) {
	status, err := o.cam.CheckPermissions(ctx)
	if err != nil {
		o.logger.Warn("failed to check permissions", "error", err)
		return
	}
	if status.AllGranted() {
		return
	}
	o.logger.Info("requesting permissions", "camera", string(status.Camera), "photos", string(status.Photos))
	if _, err := o.cam.RequestPermissions(ctx); err != nil {
		o.logger.Warn("failed to request permissions", "error", err)
	}
}

// Capture obtains one image reference. Failures are returned as *Error.
func (o *Orchestrator) Capture(ctx context.Context, req Request) (string, error) {
	if !req.SkipPermissionCheck {
		o.EnsurePermissions(ctx)
	}
	opts := camera.DefaultOptions(req.Source)
	opts.Width, opts.Height, opts.Quality = o.width, o.height, o.quality
	if req.Source == camera.SourceCamera && req.Direction != nil {
		direction := *req.Direction
		opts.Direction = &direction
	}

	photo, err := o.cam.GetPhoto(ctx, opts)
	if err != nil {
		ce := classify(err)
		o.logger.Error("capture failed", "source", string(req.Source), "kind", ce.Kind.String(), "error", err)
		return "", ce
	}
	ref, err := o.resolve(photo)
	if err != nil {
		o.logger.Error("capture returned no usable path", "source", string(req.Source))
		return "", err
	}
	o.logger.Info("image obtained", "source", string(req.Source), "ref", ref)
	return ref, nil
}

// resolve prefers the web path, then converts the native path.
func (o *Orchestrator) resolve(photo camera.Photo) (string, error) {
	if photo.WebPath != "" {
		return photo.WebPath, nil
	}
	if photo.Path != "" {
		if ref := o.cam.ConvertFileSrc(photo.Path); ref != "" {
			return ref, nil
		}
	}
	return "", &Error{Kind: KindNoImageData}
}

// TakePicture captures from the camera.
func (o *Orchestrator) TakePicture(ctx context.Context) (string, error) {
	return o.Capture(ctx, Request{Source: camera.SourceCamera})
}

// SelectFromLibrary picks an existing photo.
func (o *Orchestrator) SelectFromLibrary(ctx context.Context) (string, error) {
	return o.Capture(ctx, Request{Source: camera.SourceLibrary})
}

// SwitchCamera captures with the given facing. It does not pre-check permissions.
func (o *Orchestrator) SwitchCamera(ctx context.Context, direction camera.Direction) (string, error) {
	return o.Capture(ctx, Request{Source: camera.SourceCamera, Direction: &direction, SkipPermissionCheck: true})
}

// CaptureMany takes up to count pictures one after another. A failed attempt
// is logged and skipped; each success is added to the gallery as soon as it
// happens. It stops early only when ctx is done.
func (o *Orchestrator) CaptureMany(ctx context.Context, count int) []string {
	refs := make([]string, 0, max(count, 0))
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			o.logger.Warn("multi-capture stopped", "attempt", i+1, "error", err)
			break
		}
		ref, err := o.attempt(ctx)
		if err != nil {
			o.logger.Warn("multi-capture attempt failed", "attempt", i+1, "of", count, "error", err)
			continue
		}
		refs = append(refs, ref)
		o.gallery.Add(ctx, ref)
	}
	return refs
}

func (o *Orchestrator) attempt(ctx context.Context) (string, error) {
	if o.attemptTimeout <= 0 {
		return o.TakePicture(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, o.attemptTimeout)
	defer cancel()
	return o.TakePicture(ctx)
}
