package state

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/camtray/internal/controller"
)

// start marks the model busy and runs fn in a command.
func (m *Model) start(action controller.Action, fn func(ctx context.Context) (int, error)) tea.Cmd {
	m.busy = true
	m.clearStatus()
	ctx := m.ctx
	run := func() tea.Msg {
		n, err := fn(ctx)
		return actionDoneMsg{action: action, err: err, captured: n}
	}
	return tea.Batch(m.spinner.Tick, run)
}

func single(fn func(ctx context.Context) error) func(ctx context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		if err := fn(ctx); err != nil {
			return 0, err
		}
		return 1, nil
	}
}

func (m *Model) takePicture() tea.Cmd {
	return m.start(controller.ActionCapture, single(m.ctrl.TakePicture))
}

func (m *Model) selectFromLibrary() tea.Cmd {
	return m.start(controller.ActionSelect, single(m.ctrl.SelectFromLibrary))
}

func (m *Model) toggleCamera() tea.Cmd {
	return m.start(controller.ActionToggle, single(m.ctrl.ToggleCamera))
}

func (m *Model) retry() tea.Cmd {
	action := m.ctrl.LastAction()
	if action == controller.ActionMulti {
		return m.takeMultiple()
	}
	return m.start(action, single(m.ctrl.Retry))
}

func (m *Model) takeMultiple() tea.Cmd {
	return m.start(controller.ActionMulti, func(ctx context.Context) (int, error) {
		refs, err := m.ctrl.TakeMultiple(ctx)
		return len(refs), err
	})
}

func (m *Model) handleActionDone(msg actionDoneMsg) {
	m.busy = false
	m.clampCursor()
	m.updateViewportContent()
	if msg.err != nil {
		// The controller state carries the user-facing message.
		return
	}
	switch msg.action {
	case controller.ActionMulti:
		m.errorHandler.Success(fmt.Sprintf("Captured %d photos", msg.captured))
	case controller.ActionSelect:
		m.errorHandler.Success("Photo selected")
	default:
		m.errorHandler.Success("Photo captured")
	}
}

func (m *Model) selectedRef() (string, bool) {
	g := m.visibleGallery()
	if m.cursor < 0 || m.cursor >= len(g) {
		return "", false
	}
	return g[m.cursor], true
}

func (m *Model) showSelected() {
	ref, ok := m.selectedRef()
	if !ok {
		return
	}
	m.clearStatus()
	m.ctrl.SelectItem(ref)
	m.updateViewportContent()
}

func (m *Model) deleteSelected() {
	ref, ok := m.selectedRef()
	if !ok {
		return
	}
	m.ctrl.DeleteItem(m.ctx, ref)
	m.clampCursor()
	m.updateViewportContent()
	m.errorHandler.Info("Removed from gallery")
}

func (m *Model) answerClear(yes bool) {
	m.confirmClear = false
	if m.ctrl.ClearGallery(m.ctx, func() bool { return yes }) {
		m.cursor = 0
		m.errorHandler.Success("Gallery cleared")
	} else {
		m.errorHandler.Info("Clear cancelled")
	}
	m.updateViewportContent()
}

func (m *Model) toggleGallery() {
	if m.ctrl.ToggleGallery() {
		m.ctrl.Refresh(m.ctx)
		m.clampCursor()
	}
	m.updateViewportContent()
}
