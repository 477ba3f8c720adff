package capture

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianoliveira/camtray/internal/camera"
)

// Kind classifies a capture failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindPermissionDenied
	KindCancelled
	KindTimeout
	KindNoImageData
)

func (k Kind) String() string {
	switch k {
	case KindPermissionDenied:
		return "permission_denied"
	case KindCancelled:
		return "cancelled"
	case KindTimeout:
		return "timeout"
	case KindNoImageData:
		return "no_image_data"
	default:
		return "unknown"
	}
}

// Error is the classified failure of a capture or selection.
type Error struct {
	Kind Kind
	// Message is the underlying failure text, kept for KindUnknown.
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("capture %s: %s", e.Kind, e.Message)
	}
	return "capture " + e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// NewTimeoutError builds the error reported when a caller stops waiting.
func NewTimeoutError(cause error) *Error {
	return &Error{Kind: KindTimeout, Err: cause}
}

// classify converts a capability error into an *Error. It runs once, where
// the capability is called.
func classify(err error) *Error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	switch {
	case errors.Is(err, camera.ErrPermissionDenied):
		return &Error{Kind: KindPermissionDenied, Err: err}
	case errors.Is(err, camera.ErrCancelled), errors.Is(err, context.Canceled):
		return &Error{Kind: KindCancelled, Err: err}
	case errors.Is(err, camera.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Err: err}
	default:
		return &Error{Kind: KindUnknown, Message: err.Error(), Err: err}
	}
}
