package state

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/cristianoliveira/camtray/internal/search"
)

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter, e.g. beach source:http"
	ti.CharLimit = 128
	return ti
}

// visibleGallery is the gallery narrowed by the active filter.
func (m *Model) visibleGallery() gallery.Gallery {
	return search.Filter(m.ctrl.State().Gallery, m.searcher, m.filterInput.Value())
}

func (m *Model) startFilter() tea.Cmd {
	m.filtering = true
	return m.filterInput.Focus()
}

// handleFilterKey edits the filter while the input has focus. Enter keeps the
// filter, Esc drops it.
func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.cursor = 0
		m.updateViewportContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.cursor = 0
	m.updateViewportContent()
	return m, cmd
}
