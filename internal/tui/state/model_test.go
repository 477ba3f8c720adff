package state

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/camtray/internal/camera"
	"github.com/cristianoliveira/camtray/internal/capture"
	"github.com/cristianoliveira/camtray/internal/controller"
	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/cristianoliveira/camtray/internal/kv"
	"github.com/cristianoliveira/camtray/internal/logging"
	"github.com/cristianoliveira/camtray/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCapturer struct {
	refs []string
	err  error
	next int
}

func (s *stubCapturer) shot() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	ref := s.refs[s.next%len(s.refs)]
	s.next++
	return ref, nil
}

func (s *stubCapturer) TakePicture(context.Context) (string, error)       { return s.shot() }
func (s *stubCapturer) SelectFromLibrary(context.Context) (string, error) { return s.shot() }
func (s *stubCapturer) SwitchCamera(context.Context, camera.Direction) (string, error) {
	return s.shot()
}
func (s *stubCapturer) CaptureMany(context.Context, int) []string { return nil }

func setupModel(t *testing.T, capt *stubCapturer, existing ...string) (*Model, *gallery.Store) {
	t.Helper()
	store := gallery.NewStore(kv.NewMemoryStore(), gallery.WithLogger(logging.Noop()))
	for i := len(existing) - 1; i >= 0; i-- {
		store.Add(context.Background(), existing[i])
	}
	ctrl := controller.New(context.Background(), capt, store, controller.WithLogger(logging.Noop()))
	return NewModel(context.Background(), ctrl), store
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// runCmd executes cmd and flattens batches into their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func press(m *Model, k string) tea.Cmd {
	_, cmd := m.Update(keyMsg(k))
	return cmd
}

func deliver(m *Model, cmd tea.Cmd) {
	for _, msg := range runCmd(cmd) {
		m.Update(msg)
	}
}

func TestNewModelInitialState(t *testing.T) {
	m, _ := setupModel(t, &stubCapturer{refs: []string{"a"}})
	assert.False(t, m.busy)
	assert.Equal(t, 0, m.cursor)
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "No image yet")
}

func TestCaptureKeyRunsActionAndShowsImage(t *testing.T) {
	m, store := setupModel(t, &stubCapturer{refs: []string{"file:///a.jpg"}})

	cmd := press(m, "c")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Contains(t, m.View(), "Working...")

	deliver(m, cmd)
	assert.False(t, m.busy)
	assert.Equal(t, "file:///a.jpg", m.ctrl.State().Current)
	assert.Equal(t, gallery.Gallery{"file:///a.jpg"}, store.Load(context.Background()))
	view := m.View()
	assert.Contains(t, view, "Showing: file:///a.jpg")
	assert.Contains(t, view, "Photo captured")
}

func TestActionKeysIgnoredWhileBusy(t *testing.T) {
	m, _ := setupModel(t, &stubCapturer{refs: []string{"a"}})
	first := press(m, "c")
	require.NotNil(t, first)

	for _, k := range []string{"c", "l", "f", "m", "r"} {
		assert.Nil(t, press(m, k), "key %s should be ignored", k)
	}
	deliver(m, first)
	assert.NotNil(t, press(m, "l"))
}

func TestRetryReportsRepeatedAction(t *testing.T) {
	m, _ := setupModel(t, &stubCapturer{refs: []string{"file:///lib/a.jpg", "file:///lib/b.jpg"}})
	deliver(m, press(m, "l"))
	require.Equal(t, "Photo selected", m.statusMessage)

	deliver(m, press(m, "r"))
	assert.Equal(t, "file:///lib/b.jpg", m.ctrl.State().Current)
	assert.Equal(t, "Photo selected", m.statusMessage)
}

func TestFailedCaptureShowsErrorMessage(t *testing.T) {
	m, _ := setupModel(t, &stubCapturer{err: &capture.Error{Kind: capture.KindCancelled}})
	deliver(m, press(m, "c"))

	view := m.View()
	assert.Contains(t, view, "Error: Image capture was cancelled.")
	assert.Contains(t, view, "r: retry")
	assert.NotContains(t, view, "Photo captured")
}

func TestGalleryNavigationSelectAndDelete(t *testing.T) {
	m, store := setupModel(t, &stubCapturer{refs: []string{"x"}}, "one", "two", "three")

	assert.Nil(t, press(m, "enter"), "enter does nothing while the gallery is hidden")
	press(m, "g")
	require.True(t, m.ctrl.State().GalleryVisible)
	assert.Contains(t, m.View(), "1.")

	press(m, "j")
	press(m, "j")
	press(m, "j")
	assert.Equal(t, 2, m.cursor)
	press(m, "k")
	assert.Equal(t, 1, m.cursor)

	press(m, "enter")
	assert.Equal(t, "two", m.ctrl.State().Current)

	press(m, "d")
	assert.Empty(t, m.ctrl.State().Current)
	assert.Equal(t, gallery.Gallery{"one", "three"}, store.Load(context.Background()))
	assert.Equal(t, 1, m.cursor)

	press(m, "g")
	assert.False(t, m.ctrl.State().GalleryVisible)
}

func TestGalleryFilter(t *testing.T) {
	m, store := setupModel(t, &stubCapturer{refs: []string{"x"}}, "/p/beach.jpg", "http://h/dog.jpg", "/p/dog.png")
	press(m, "g")

	press(m, "/")
	require.True(t, m.filtering)
	assert.Contains(t, m.View(), "Esc: clear filter")
	for _, r := range "dog" {
		press(m, string(r))
	}
	assert.Equal(t, gallery.Gallery{"http://h/dog.jpg", "/p/dog.png"}, m.visibleGallery())
	assert.True(t, m.ctrl.State().GalleryVisible)

	press(m, "enter")
	assert.False(t, m.filtering)
	assert.Equal(t, "dog", m.filterInput.Value())

	press(m, "j")
	press(m, "enter")
	assert.Equal(t, "/p/dog.png", m.ctrl.State().Current)

	press(m, "d")
	assert.Equal(t, gallery.Gallery{"/p/beach.jpg", "http://h/dog.jpg"}, store.Load(context.Background()))
	assert.Equal(t, gallery.Gallery{"http://h/dog.jpg"}, m.visibleGallery())

	press(m, "/")
	for _, r := range " cat" {
		press(m, string(r))
	}
	assert.Contains(t, m.View(), "No photos match the filter")

	press(m, "esc")
	assert.False(t, m.filtering)
	assert.Len(t, m.visibleGallery(), 2)
}

func TestClearGalleryAsksForConfirmation(t *testing.T) {
	m, store := setupModel(t, &stubCapturer{refs: []string{"x"}}, "one", "two")
	press(m, "g")

	press(m, "C")
	assert.True(t, m.confirmClear)
	assert.Contains(t, m.View(), "(y/N)")
	press(m, "n")
	assert.False(t, m.confirmClear)
	assert.Len(t, store.Load(context.Background()), 2)
	assert.Contains(t, m.View(), "Clear cancelled")

	press(m, "C")
	press(m, "y")
	assert.Empty(t, store.Load(context.Background()))
	assert.Empty(t, m.ctrl.State().Gallery)
	assert.Contains(t, m.View(), "Gallery cleared")
}

func TestClearOnEmptyGalleryDoesNotPrompt(t *testing.T) {
	m, _ := setupModel(t, &stubCapturer{refs: []string{"x"}})
	press(m, "g")
	press(m, "C")
	assert.False(t, m.confirmClear)
}

func TestQuitKeys(t *testing.T) {
	m, _ := setupModel(t, &stubCapturer{refs: []string{"x"}})
	for _, k := range []string{"q", "ctrl+c"} {
		cmd := press(m, k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestWindowSizeResizesViewport(t *testing.T) {
	m, _ := setupModel(t, &stubCapturer{refs: []string{"x"}})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 120, m.viewport.Width)
	assert.Equal(t, 40-chromeLines, m.viewport.Height)

	m.Update(tea.WindowSizeMsg{Width: 10, Height: 2})
	assert.Equal(t, 1, m.viewport.Height)
}

func TestMultiCaptureWithNoSuccessShowsError(t *testing.T) {
	m, _ := setupModel(t, &stubCapturer{refs: []string{"x"}})
	deliver(m, press(m, "m"))
	assert.Contains(t, m.View(), "Failed to take multiple photos")
}

func TestSettingsRoundTrip(t *testing.T) {
	store := gallery.NewStore(kv.NewMemoryStore(), gallery.WithLogger(logging.Noop()))
	store.Add(context.Background(), "/p/cat.jpg")
	store.Add(context.Background(), "/p/dog.jpg")
	ctrl := controller.New(context.Background(), &stubCapturer{refs: []string{"x"}}, store, controller.WithLogger(logging.Noop()))

	m := NewModel(context.Background(), ctrl, WithSettings(&settings.Settings{GalleryVisible: true, Filter: "dog", SearchMode: "substring"}))
	assert.True(t, ctrl.State().GalleryVisible)
	assert.Equal(t, gallery.Gallery{"/p/dog.jpg"}, m.visibleGallery())
	assert.Equal(t, &settings.Settings{GalleryVisible: true, Filter: "dog", SearchMode: "substring"}, m.Settings())

	press(m, "esc")
	press(m, "g")
	assert.Equal(t, &settings.Settings{SearchMode: "substring"}, m.Settings())
}

func TestDefaultSettingsUseTokenSearch(t *testing.T) {
	m, _ := setupModel(t, &stubCapturer{refs: []string{"x"}})
	assert.Equal(t, "token", m.Settings().SearchMode)
	m2, _ := setupModel(t, &stubCapturer{refs: []string{"x"}})
	WithSettings(nil)(m2)
	assert.Equal(t, "token", m2.Settings().SearchMode)
}

func TestNewModelPanicsWithoutController(t *testing.T) {
	assert.Panics(t, func() { NewModel(context.Background(), nil) })
}
