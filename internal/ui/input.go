package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg routes a key press. While a search owns input the key edits
// the query; otherwise it is resolved through the key map.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.ticker != nil {
		m.ticker.NoteActivity()
	}
	if m.mode == ModeSearching && m.handleSearchKey(key) {
		return nil
	}
	action, ok := m.keys.Resolve(key)
	if !ok {
		return nil
	}
	m.dispatch(action)
	return nil
}
