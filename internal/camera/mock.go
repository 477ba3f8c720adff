package camera

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCapability is a testify mock of Capability.
//
// Example usage:
//
//	cam := new(MockCapability)
//	cam.On("CheckPermissions", mock.Anything).Return(PermissionStatus{Camera: PermissionGranted, Photos: PermissionGranted}, nil)
//	cam.On("GetPhoto", mock.Anything, mock.Anything).Return(Photo{WebPath: "blob:1"}, nil)
type MockCapability struct {
	mock.Mock
}

// CheckPermissions returns the configured permission status.
func (m *MockCapability) CheckPermissions(ctx context.Context) (PermissionStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(PermissionStatus), args.Error(1)
}

// RequestPermissions returns the configured permission status.
func (m *MockCapability) RequestPermissions(ctx context.Context) (PermissionStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(PermissionStatus), args.Error(1)
}

// GetPhoto returns the configured photo. A func(context.Context, Options) (Photo, error)
// return value is invoked, which lets tests block or vary results per call.
func (m *MockCapability) GetPhoto(ctx context.Context, opts Options) (Photo, error) {
	args := m.Called(ctx, opts)
	if fn, ok := args.Get(0).(func(context.Context, Options) (Photo, error)); ok {
		return fn(ctx, opts)
	}
	return args.Get(0).(Photo), args.Error(1)
}

// ConvertFileSrc returns the configured conversion.
func (m *MockCapability) ConvertFileSrc(path string) string {
	args := m.Called(path)
	return args.String(0)
}

var _ Capability = (*MockCapability)(nil)
var _ Capability = (*CommandCapability)(nil)
