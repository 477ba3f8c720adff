package state

import (
	"strings"

	"github.com/cristianoliveira/camtray/internal/errors"
	"github.com/cristianoliveira/camtray/internal/tui/render"
)

// View renders the TUI.
func (m *Model) View() string {
	st := m.ctrl.State()
	loading := st.Loading || m.busy

	var s strings.Builder
	s.WriteString(render.Header(render.HeaderState{Facing: string(st.Facing), Count: len(st.Gallery), Width: m.width}))
	s.WriteString("\n")
	s.WriteString(render.Image(render.ImageState{Current: st.Current, Loading: loading, Spinner: m.spinner.View(), Width: m.width}))
	s.WriteString("\n")

	switch {
	case m.confirmClear:
		s.WriteString(render.Confirm("Clear the whole gallery?"))
	case st.ErrorMessage != "":
		s.WriteString(render.Error(st.ErrorMessage + "  (r: retry)"))
	case m.statusMessage != "":
		s.WriteString(m.renderStatus())
	}
	s.WriteString("\n")

	if st.GalleryVisible {
		s.WriteString("\n")
		if m.filtering || m.filterInput.Value() != "" {
			s.WriteString(m.filterInput.View())
		}
		s.WriteString("\n")
		s.WriteString(m.viewport.View())
	}
	s.WriteString("\n")
	s.WriteString(render.Footer(render.FooterState{
		GalleryVisible: st.GalleryVisible,
		Confirming:     m.confirmClear,
		Filtering:      m.filtering,
		Loading:        loading,
		Width:          m.width,
	}))
	return s.String()
}

func (m *Model) renderStatus() string {
	if m.statusType == errors.MessageTypeSuccess {
		return render.Success(m.statusMessage)
	}
	if m.statusType == errors.MessageTypeError {
		return render.Error(m.statusMessage)
	}
	return m.statusMessage
}

// updateViewportContent redraws the gallery list and keeps the cursor visible.
func (m *Model) updateViewportContent() {
	st := m.ctrl.State()
	visible := m.visibleGallery()
	if len(visible) == 0 {
		if len(st.Gallery) > 0 {
			m.viewport.SetContent(render.NoMatches())
		} else {
			m.viewport.SetContent(render.EmptyGallery())
		}
		m.viewport.GotoTop()
		return
	}

	var content strings.Builder
	for i, ref := range visible {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(render.GalleryRow(render.GalleryRowState{
			Index:    i,
			Ref:      ref,
			Selected: i == m.cursor,
			Current:  ref == st.Current,
			Width:    m.width,
		}))
	}
	m.viewport.SetContent(content.String())
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.updateViewportContent()
}

func (m *Model) clampCursor() {
	n := len(m.visibleGallery())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
