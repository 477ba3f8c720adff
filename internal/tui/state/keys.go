package state

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg processes keyboard input for the TUI.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}
	if m.confirmClear {
		m.answerClear(msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && (msg.Runes[0] == 'y' || msg.Runes[0] == 'Y'))
		return m, nil
	}

	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "g":
		m.toggleGallery()
		return m, nil
	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	}

	// Everything below starts or changes a capture; ignore it while one runs.
	if m.busy {
		return m, nil
	}

	switch key {
	case "c":
		return m, m.takePicture()
	case "r":
		return m, m.retry()
	case "l":
		return m, m.selectFromLibrary()
	case "f":
		return m, m.toggleCamera()
	case "m":
		return m, m.takeMultiple()
	}

	if !m.ctrl.State().GalleryVisible {
		return m, nil
	}
	switch key {
	case "/":
		return m, m.startFilter()
	case "esc":
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.cursor = 0
			m.updateViewportContent()
		}
	case "enter":
		m.showSelected()
	case "d":
		m.deleteSelected()
	case "C":
		if len(m.ctrl.State().Gallery) > 0 {
			m.confirmClear = true
		}
	}
	return m, nil
}
