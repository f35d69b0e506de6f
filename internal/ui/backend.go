package ui

import (
	"github.com/atomicstack/tunetable/internal/backend"
	"github.com/atomicstack/tunetable/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForTick(t *backend.Ticker) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-t.Events()
		if !ok {
			return tickerDoneMsg{}
		}
		return tickMsg{event: evt}
	}
}

type tickMsg struct {
	event backend.Event
}

type tickerDoneMsg struct{}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tickMsg); !ok {
		return nil
	}
	m.dispatch(Tick{})
	if m.ticker != nil {
		return waitForTick(m.ticker)
	}
	return nil
}

func (m *Model) handleTickerDoneMsg(tea.Msg) tea.Cmd {
	m.ticker = nil
	return nil
}

// dispatch applies msg, refreshes whatever the server owns for the returned
// regions and records any failure for the status line.
func (m *Model) dispatch(msg Message) {
	dirty, err := m.Apply(msg)
	if err != nil {
		m.errMsg = err.Error()
		events.Playback.Error(messageName(msg), err)
	}
	if dirty != 0 {
		if rerr := m.refresh(dirty); rerr != nil {
			m.errMsg = rerr.Error()
			events.Playback.Error("refresh", rerr)
		} else if err == nil {
			m.errMsg = ""
		}
	}
	m.cache.invalidate(dirty)
	events.UI.Apply(messageName(msg), m.screen.String(), m.mode.String(), dirty.String())
}

// refresh re-reads server state for the dirty regions. A queue refetch is
// added whenever the playlist version moved.
func (m *Model) refresh(dirty Dirty) error {
	if m.playback == nil {
		return nil
	}
	if dirty.Has(DirtyStatus) {
		st, err := m.playback.Status()
		if err != nil {
			return playbackErr("status", err)
		}
		if st.PlaylistVersion != m.status.PlaylistVersion {
			dirty |= DirtyQueue
		}
		m.status = st
	}
	if dirty.Has(DirtyCurrentSong) {
		cur, err := m.playback.CurrentSong()
		if err != nil {
			return playbackErr("current song", err)
		}
		m.current = cur
	}
	if dirty.Has(DirtyQueue) {
		items, err := m.playback.Queue()
		if err != nil {
			return playbackErr("queue", err)
		}
		m.queue.SetItems(items)
		ensureSelection(m.queue)
		m.cache.invalidate(DirtyQueue)
	}
	return nil
}
