package gallery

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/cristianoliveira/camtray/internal/kv"
	"github.com/cristianoliveira/camtray/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingKV wraps a MemoryStore and fails the selected operations.
type failingKV struct {
	*kv.MemoryStore
	getErr    error
	setErr    error
	removeErr error
	sets      int
}

func (f *failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func (f *failingKV) Remove(ctx context.Context, key string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.MemoryStore.Remove(ctx, key)
}

func newTestStore(t *testing.T) (*Store, *failingKV, *bytes.Buffer) {
	t.Helper()
	backend := &failingKV{MemoryStore: kv.NewMemoryStore()}
	var logs bytes.Buffer
	logger := logging.NewWriterLogger(&logs, logging.Config{Level: "debug", Command: "test"})
	return NewStore(backend, WithLogger(logger)), backend, &logs
}

func TestLoadEmptyWhenAbsent(t *testing.T) {
	s, _, _ := newTestStore(t)
	g := s.Load(context.Background())
	require.NotNil(t, g)
	assert.Empty(t, g)
}

func TestAddIsMostRecentFirst(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, "A")
	g := s.Add(ctx, "B")

	assert.Equal(t, Gallery{"B", "A"}, g)
	assert.Equal(t, Gallery{"B", "A"}, s.Load(ctx))
}

func TestAddIsIdempotent(t *testing.T) {
	s, backend, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, "A")
	s.Add(ctx, "B")
	writes := backend.sets
	g := s.Add(ctx, "A")

	assert.Equal(t, Gallery{"B", "A"}, g)
	assert.Equal(t, writes, backend.sets, "adding a present reference must not write")
}

func TestRemove(t *testing.T) {
	s, backend, _ := newTestStore(t)
	ctx := context.Background()
	s.Save(ctx, Gallery{"X", "Y"})

	writes := backend.sets
	assert.Equal(t, Gallery{"X", "Y"}, s.Remove(ctx, "Z"))
	assert.Equal(t, writes, backend.sets)

	assert.Equal(t, Gallery{"Y"}, s.Remove(ctx, "X"))
	assert.Equal(t, Gallery{"Y"}, s.Load(ctx))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	cases := []Gallery{
		{},
		{"capacitor://localhost/_capture_file_/a.jpg"},
		{"ünïcode.jpg", "with \"quotes\"", "file:///tmp/x y.png", "blob:http://localhost/1"},
	}
	for _, g := range cases {
		s.Save(ctx, g)
		assert.Equal(t, g, s.Load(ctx))
	}
}

func TestCorruptPayloadLoadsEmpty(t *testing.T) {
	s, backend, logs := newTestStore(t)
	ctx := context.Background()

	for _, payload := range []string{"not json", `{"a":1}`, `[1,2,3]`, ""} {
		require.NoError(t, backend.MemoryStore.Set(ctx, StorageKey, payload))
		assert.Empty(t, s.Load(ctx), "payload %q", payload)
	}
	assert.Contains(t, logs.String(), "discarding unreadable gallery payload")
}

func TestNullPayloadLoadsEmpty(t *testing.T) {
	s, backend, _ := newTestStore(t)
	require.NoError(t, backend.MemoryStore.Set(context.Background(), StorageKey, "null"))
	g := s.Load(context.Background())
	require.NotNil(t, g)
	assert.Empty(t, g)
}

func TestPersistenceFailuresAreSwallowed(t *testing.T) {
	s, backend, logs := newTestStore(t)
	ctx := context.Background()

	backend.setErr = errors.New("disk full")
	g := s.Add(ctx, "A")
	assert.Equal(t, Gallery{"A"}, g, "add still returns the new gallery")
	assert.Contains(t, logs.String(), "failed to save gallery")

	backend.getErr = errors.New("io error")
	assert.Empty(t, s.Load(ctx))

	backend.removeErr = errors.New("busy")
	s.Clear(ctx)
	assert.Contains(t, logs.String(), "failed to clear gallery")
}

func TestClearDeletesEntry(t *testing.T) {
	s, backend, _ := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, "A")

	s.Clear(ctx)

	_, found, err := backend.MemoryStore.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, s.Load(ctx))
}

func TestFileBackendPersistsAcrossStores(t *testing.T) {
	dir := t.TempDir()
	backend, err := kv.NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	NewStore(backend, WithLogger(logging.Noop())).Add(ctx, "A")

	reopened, err := kv.NewFileStore(dir)
	require.NoError(t, err)
	assert.Equal(t, Gallery{"A"}, NewStore(reopened).Load(ctx))
}

func TestGalleryHelpers(t *testing.T) {
	g := Gallery{"a", "b"}
	assert.True(t, g.Contains("b"))
	assert.Equal(t, -1, g.IndexOf("c"))

	clone := g.Clone()
	clone[0] = "z"
	assert.Equal(t, "a", g[0])
	assert.NotNil(t, Gallery(nil).Clone())
}

func TestNewStorePanicsOnNilBackend(t *testing.T) {
	assert.Panics(t, func() { NewStore(nil) })
}

type hookCall struct {
	point string
	env   map[string]string
}

type recordingHooks struct {
	calls []hookCall
	err   error
}

func (r *recordingHooks) Run(_ context.Context, point string, env map[string]string) error {
	r.calls = append(r.calls, hookCall{point: point, env: env})
	return r.err
}

func TestHooksFireOnChanges(t *testing.T) {
	hooks := &recordingHooks{}
	s := NewStore(kv.NewMemoryStore(), WithLogger(logging.Noop()), WithHooks(hooks))
	ctx := context.Background()

	s.Add(ctx, "a")
	s.Add(ctx, "a")
	s.Remove(ctx, "missing")
	s.Remove(ctx, "a")
	s.Clear(ctx)

	require.Len(t, hooks.calls, 3)
	assert.Equal(t, hookCall{HookPostAdd, map[string]string{"CAMTRAY_REF": "a", "CAMTRAY_COUNT": "1"}}, hooks.calls[0])
	assert.Equal(t, hookCall{HookPostRemove, map[string]string{"CAMTRAY_REF": "a", "CAMTRAY_COUNT": "0"}}, hooks.calls[1])
	assert.Equal(t, hookCall{HookPostClear, map[string]string{"CAMTRAY_COUNT": "0"}}, hooks.calls[2])
}

func TestHookFailureDoesNotAffectGallery(t *testing.T) {
	hooks := &recordingHooks{err: errors.New("boom")}
	s := NewStore(kv.NewMemoryStore(), WithLogger(logging.Noop()), WithHooks(hooks))

	g := s.Add(context.Background(), "a")
	assert.Equal(t, Gallery{"a"}, g)
	assert.Equal(t, Gallery{"a"}, s.Load(context.Background()))
}
