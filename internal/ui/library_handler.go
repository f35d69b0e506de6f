package ui

import (
	"github.com/atomicstack/tunetable/internal/library"
	"github.com/atomicstack/tunetable/internal/ui/layout"
	"github.com/atomicstack/tunetable/internal/ui/state"
)

func (m *Model) applyLibrary(msg Message) (Dirty, error) {
	switch msg := msg.(type) {
	case MoveVertical:
		sel, _ := m.libraryFocus()
		state.MoveVertical(msg.Dir, sel)
		return 0, nil
	case ScrollScreenful:
		sel, height := m.libraryFocus()
		m.scrollPage(msg.Dir, height, sel)
		return 0, nil
	case MoveHorizontal:
		if m.lib.global.Search().Active {
			return 0, nil
		}
		if msg.Dir == Left {
			m.focusPanel(PanelArtists)
		} else {
			m.focusPanel(PanelTracks)
		}
		return 0, nil
	case TogglePanel:
		if m.lib.global.Search().Active {
			return 0, nil
		}
		if m.lib.focus == PanelArtists {
			m.focusPanel(PanelTracks)
		} else {
			m.focusPanel(PanelArtists)
		}
		return 0, nil
	case Select:
		return m.selectLibrary()
	case LocalSearch:
		switch msg.Phase {
		case SearchStart:
			m.startLocalSearch()
		case SearchEnd:
			m.mode = ModeRunning
		}
		return 0, nil
	case Escape:
		m.escapeLibrary()
		return 0, nil
	}
	return 0, nil
}

// libraryFocus returns the selector that receives navigation and the height
// of its list region.
func (m *Model) libraryFocus() (state.Selector, int) {
	l := m.libraryLayout()
	if m.lib.global.Search().Active {
		_, list := layout.PopupParts(l.Popup)
		return m.lib.global, list.Height
	}
	if m.lib.focus == PanelTracks {
		if tracks := m.selectedTracks(); tracks != nil {
			return tracks, l.Tracks.Height
		}
	}
	return m.lib.artists, l.Artists.Height
}

func (m *Model) focusPanel(p Panel) {
	if p == PanelTracks && m.selectedTracks() == nil {
		return
	}
	m.lib.focus = p
}

func (m *Model) startLocalSearch() {
	node := NodeArtists
	if m.lib.focus == PanelTracks {
		node = NodeTracks
	}
	s := m.searchable(node)
	if s == nil {
		return
	}
	s.Search().Active = true
	m.mode = ModeSearching
	if s.Len() != 0 {
		s.Select(0)
	}
}

// escapeLibrary closes the search that owns input, clearing its query.
func (m *Model) escapeLibrary() {
	node := m.ActiveNode()
	switch node {
	case NodeGlobal:
		m.closeGlobalSearch()
		return
	case NodeTracks:
		tracks := m.selectedTracks()
		tracks.Search().Reset()
		tracks.UpdateFilterCache(m.matcher, 0)
	case NodeArtists:
		m.lib.artists.Search().Reset()
		m.lib.artists.UpdateFilterCache(m.matcher, m.searchTopK())
		ensureSelection(m.lib.artists)
	}
	m.mode = ModeRunning
}

func (m *Model) selectLibrary() (Dirty, error) {
	if m.lib.global.Search().Active {
		m.jumpToGlobalSelection()
		return 0, nil
	}
	if m.lib.focus == PanelArtists {
		m.focusPanel(PanelTracks)
		return 0, nil
	}
	artist := m.selectedArtist()
	if artist == nil {
		return 0, nil
	}
	entry, ok := artist.tracks.SelectedEntry()
	if !ok || m.playback == nil {
		return 0, nil
	}
	uris := albumFiles(artist.tracks.Entries(), entry)
	for _, uri := range uris {
		if err := m.playback.Add(uri); err != nil {
			return DirtyStatus | DirtyQueue, playbackErr("add", err)
		}
	}
	if len(uris) == 0 {
		return 0, nil
	}
	return DirtyStatus | DirtyQueue, nil
}

// albumFiles lists what selecting e enqueues: the track itself, or every
// track of the album when e is an album header.
func albumFiles(entries []library.Entry, e library.Entry) []string {
	if !e.IsAlbum() {
		if e.File == "" {
			return nil
		}
		return []string{e.File}
	}
	var out []string
	for _, t := range entries {
		if t.Album == e.Album && !t.IsAlbum() && t.File != "" {
			out = append(out, t.File)
		}
	}
	return out
}

// jumpToGlobalSelection reveals the selected global result in the artist
// and track panels and closes the popup.
func (m *Model) jumpToGlobalSelection() {
	entry, ok := m.lib.global.SelectedItem()
	if !ok {
		m.closeGlobalSearch()
		return
	}
	artists := m.lib.artists
	source := -1
	for i, node := range artists.All() {
		if node.Name == entry.Artist {
			source = i
			break
		}
	}
	if source >= 0 {
		row := artists.VisibleIndex(source)
		if row < 0 {
			artists.Search().Reset()
			artists.UpdateFilterCache(m.matcher, m.searchTopK())
			row = artists.VisibleIndex(source)
		}
		artists.Select(row)
		tracks := m.selectedTracks()
		if idx := tracks.IndexOf(entry.Album, entry.File); idx >= 0 {
			tracks.Select(idx)
			m.lib.focus = PanelTracks
		} else {
			m.lib.focus = PanelArtists
		}
	}
	m.closeGlobalSearch()
}
