// Package camera defines the device camera capability camtray talks to and a
// command-backed implementation of it.
package camera

import (
	"context"
	"errors"
)

// Source selects where a photo comes from.
type Source string

const (
	// SourceCamera takes a new photo.
	SourceCamera Source = "camera"
	// SourceLibrary picks an existing photo.
	SourceLibrary Source = "library"
)

// Direction selects the camera facing for SourceCamera.
type Direction string

const (
	DirectionRear  Direction = "rear"
	DirectionFront Direction = "front"
)

// Opposite returns the other facing direction.
func (d Direction) Opposite() Direction {
	if d == DirectionFront {
		return DirectionRear
	}
	return DirectionFront
}

// ParseDirection maps "front"/"rear" to a Direction, defaulting to rear.
func ParseDirection(s string) Direction {
	if Direction(s) == DirectionFront {
		return DirectionFront
	}
	return DirectionRear
}

// PermissionState is the grant state of a single permission.
type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionPrompt  PermissionState = "prompt"
)

// PermissionStatus reports the camera and photo library permissions.
type PermissionStatus struct {
	Camera PermissionState
	Photos PermissionState
}

// AllGranted reports whether both permissions are granted.
func (p PermissionStatus) AllGranted() bool {
	return p.Camera == PermissionGranted && p.Photos == PermissionGranted
}

// ResultTypeURI asks the capability for a path rather than inline data.
const ResultTypeURI = "uri"

// Options describes a single GetPhoto request.
type Options struct {
	Quality            int
	AllowEditing       bool
	ResultType         string
	Source             Source
	Direction          *Direction
	Width              int
	Height             int
	CorrectOrientation bool
}

const (
	DefaultQuality = 90
	DefaultWidth   = 1280
	DefaultHeight  = 720
)

// DefaultOptions returns the options every camtray capture uses.
func DefaultOptions(source Source) Options {
	return Options{
		Quality:            DefaultQuality,
		AllowEditing:       false,
		ResultType:         ResultTypeURI,
		Source:             source,
		Width:              DefaultWidth,
		Height:             DefaultHeight,
		CorrectOrientation: true,
	}
}

// Photo is what the capability returns. Either field may be empty.
type Photo struct {
	// WebPath is directly displayable.
	WebPath string
	// Path is a native filesystem path that needs ConvertFileSrc.
	Path string
}

// Capability is the device camera and photo library.
type Capability interface {
	CheckPermissions(ctx context.Context) (PermissionStatus, error)
	RequestPermissions(ctx context.Context) (PermissionStatus, error)
	GetPhoto(ctx context.Context, opts Options) (Photo, error)
	// ConvertFileSrc turns a native path into a displayable one.
	ConvertFileSrc(path string) string
}

// Boundary errors. Implementations wrap these with %w so callers can classify
// failures with errors.Is instead of matching on messages.
var (
	ErrPermissionDenied = errors.New("camera: permission denied")
	ErrCancelled        = errors.New("camera: cancelled by user")
	ErrTimeout          = errors.New("camera: timed out")
)
