package ui

import (
	"github.com/atomicstack/tunetable/internal/ui/layout"
	"github.com/atomicstack/tunetable/internal/ui/state"
)

// Apply routes msg through the handler of the current screen and returns
// the regions whose data changed. Messages a screen does not handle are
// no-ops. Local changes are kept when a server call fails.
func (m *Model) Apply(msg Message) (Dirty, error) {
	if dirty, ok, err := m.applyGlobal(msg); ok {
		return dirty, err
	}
	switch m.screen {
	case ScreenQueue:
		return m.applyQueue(msg)
	default:
		return m.applyLibrary(msg)
	}
}

// applyGlobal handles messages that behave the same on every screen.
func (m *Model) applyGlobal(msg Message) (Dirty, bool, error) {
	switch msg := msg.(type) {
	case ToggleScreen:
		m.toggleScreen()
		return 0, true, nil
	case GlobalSearch:
		return m.applyGlobalSearch(msg), true, nil
	case Quit:
		m.quitting = true
		return 0, true, nil
	case Tick:
		return DirtyStatus | DirtyCurrentSong, true, nil
	case PlayPause:
		if m.playback == nil {
			return 0, true, nil
		}
		return DirtyStatus, true, playbackErr("toggle playback", m.playback.TogglePause(m.status.State))
	case NextSong:
		if m.playback == nil {
			return 0, true, nil
		}
		return DirtyStatus | DirtyCurrentSong, true, playbackErr("next", m.playback.Next())
	case PreviousSong:
		if m.playback == nil {
			return 0, true, nil
		}
		return DirtyStatus | DirtyCurrentSong, true, playbackErr("previous", m.playback.Previous())
	case Seek:
		if m.playback == nil || !m.status.HasSong() {
			return 0, true, nil
		}
		target := m.status.Elapsed - m.seekStep
		if msg.Forward {
			target = m.status.Elapsed + m.seekStep
		}
		return DirtyStatus, true, playbackErr("seek", m.playback.SeekTo(m.status.Song, target))
	case ClearQueue:
		if m.playback == nil {
			return 0, true, nil
		}
		if err := m.playback.Clear(); err != nil {
			return DirtyStatus | DirtyQueue, true, playbackErr("clear", err)
		}
		m.queue.SetItems(nil)
		return DirtyStatus | DirtyQueue | DirtyCurrentSong, true, nil
	}
	return 0, false, nil
}

// toggleScreen advances to the next configured screen. A search left open on
// the old screen stays active but stops receiving keys.
func (m *Model) toggleScreen() {
	if len(m.screens) == 0 {
		return
	}
	next := m.screens[0]
	for i, s := range m.screens {
		if s == m.screen {
			next = m.screens[(i+1)%len(m.screens)]
			break
		}
	}
	m.screen = next
	m.mode = ModeRunning
}

func (m *Model) applyGlobalSearch(msg GlobalSearch) Dirty {
	global := m.lib.global
	switch msg.Phase {
	case SearchStart:
		m.screen = ScreenLibrary
		global.Search().Active = true
		m.mode = ModeSearching
		if global.Len() != 0 {
			global.Select(0)
		}
	case SearchEnd:
		m.closeGlobalSearch()
	}
	return 0
}

func (m *Model) closeGlobalSearch() {
	global := m.lib.global
	global.Search().Reset()
	global.UpdateFilterCache(m.matcher, m.searchTopK())
	ensureSelection(global)
	m.mode = ModeRunning
}

// ensureSelection selects the first row of a non-empty list with no
// selection.
func ensureSelection(s state.Selector) {
	if _, ok := s.Selected(); !ok && s.Len() > 0 {
		s.Select(0)
	}
}

// scrollPage flips one page on s using the configured overlap.
func (m *Model) scrollPage(dir state.Direction, height int, s state.Selector) {
	state.ScrollByPageOverlap(dir, height, m.scrollOverlap, s)
}

func (m *Model) frame() layout.Rect {
	return layout.Rect{Width: m.width, Height: m.height}
}

func (m *Model) queueLayout() layout.Queue {
	return layout.QueueFor(m.frame(), layout.QueueView{Search: m.queue.Search().Active})
}

func (m *Model) libraryLayout() layout.Library {
	view := layout.LibraryView{
		ArtistSearch: m.lib.artists.Search().Active,
		GlobalSearch: m.lib.global.Search().Active,
	}
	if tracks := m.selectedTracks(); tracks != nil {
		view.TrackSearch = tracks.Search().Active
	}
	return layout.LibraryFor(m.frame(), view)
}

// searchTopK caps how many matches a search keeps: one frame of rows.
func (m *Model) searchTopK() int {
	return m.height
}

// syncViewports keeps every selection inside its list region.
func (m *Model) syncViewports() {
	q := m.queueLayout()
	state.EnsureVisible(m.queue, q.List.Inner().Height)
	l := m.libraryLayout()
	state.EnsureVisible(m.lib.artists, l.Artists.Inner().Height)
	if tracks := m.selectedTracks(); tracks != nil {
		state.EnsureVisible(tracks, l.Tracks.Inner().Height)
	}
	if !l.Popup.Empty() {
		_, list := layout.PopupParts(l.Popup)
		state.EnsureVisible(m.lib.global, list.Inner().Height)
	}
}
