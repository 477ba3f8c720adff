// Package state provides the bubbletea model of the camtray terminal UI.
package state

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/camtray/internal/controller"
	"github.com/cristianoliveira/camtray/internal/errors"
	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/cristianoliveira/camtray/internal/search"
	"github.com/cristianoliveira/camtray/internal/settings"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// lines taken by everything except the gallery panel
	chromeLines = 7
)

// Controller is the presentation controller the model drives.
type Controller interface {
	State() controller.State
	TakePicture(ctx context.Context) error
	SelectFromLibrary(ctx context.Context) error
	ToggleCamera(ctx context.Context) error
	TakeMultiple(ctx context.Context) ([]string, error)
	Retry(ctx context.Context) error
	LastAction() controller.Action
	ToggleGallery() bool
	SelectItem(ref string)
	DeleteItem(ctx context.Context, ref string)
	ClearGallery(ctx context.Context, confirm func() bool) bool
	Refresh(ctx context.Context) gallery.Gallery
}

// Model represents the TUI model for bubbletea.
type Model struct {
	ctx  context.Context
	ctrl Controller

	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
	cursor   int

	filterInput textinput.Model
	filtering   bool
	searcher    search.Provider

	// busy is set while an action command is in flight.
	busy         bool
	confirmClear bool

	errorHandler  *errors.TUIHandler
	statusMessage string
	statusType    errors.MessageType
}

// Option configures a Model.
type Option func(*Model)

// WithSettings restores saved preferences: panel visibility, filter and
// search mode.
func WithSettings(s *settings.Settings) Option {
	return func(m *Model) {
		if s == nil {
			return
		}
		if p, err := search.New(search.Mode(s.SearchMode), search.WithCaseInsensitive(true)); err == nil {
			m.searcher = p
		}
		m.filterInput.SetValue(s.Filter)
		if s.GalleryVisible && !m.ctrl.State().GalleryVisible {
			m.ctrl.ToggleGallery()
		}
	}
}

// NewModel creates a new TUI model over ctrl.
func NewModel(ctx context.Context, ctrl Controller, opts ...Option) *Model {
	if ctrl == nil {
		panic("state.NewModel: controller dependency cannot be nil")
	}
	m := &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(defaultWidth, defaultHeight-chromeLines),
		width:    defaultWidth,
		height:   defaultHeight,

		filterInput: newFilterInput(),
		searcher:    search.NewTokenProvider(search.WithCaseInsensitive(true)),
	}
	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.statusMessage = msg.Text
		m.statusType = msg.Type
	})
	for _, opt := range opts {
		opt(m)
	}
	m.updateViewportContent()
	return m
}

// Init initializes the TUI model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
		return m, nil
	case actionDoneMsg:
		m.handleActionDone(msg)
		return m, nil
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.viewport.Width = msg.Width
	m.viewport.Height = max(msg.Height-chromeLines, 1)
	m.updateViewportContent()
}

// Settings returns the preferences to persist for the next session.
func (m *Model) Settings() *settings.Settings {
	return &settings.Settings{
		GalleryVisible: m.ctrl.State().GalleryVisible,
		Filter:         m.filterInput.Value(),
		SearchMode:     m.searcher.Name(),
	}
}

// clearStatus empties the status line.
func (m *Model) clearStatus() {
	m.errorHandler.Clear()
	m.statusMessage = ""
}
