package ui

import (
	"github.com/atomicstack/tunetable/internal/logging/events"
	"github.com/atomicstack/tunetable/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchNode identifies the search that currently owns keystrokes.
type SearchNode int

const (
	NodeNone SearchNode = iota
	NodeArtists
	NodeTracks
	NodeGlobal
	NodeQueue
)

func (n SearchNode) String() string {
	switch n {
	case NodeArtists:
		return "artists"
	case NodeTracks:
		return "tracks"
	case NodeGlobal:
		return "global"
	case NodeQueue:
		return "queue"
	default:
		return "none"
	}
}

// ActiveNode resolves which search node owns input on the current screen.
// Global search wins over the panels, the focused panel over the other one,
// and the nested track search over the artist search.
func (m *Model) ActiveNode() SearchNode {
	if m.screen == ScreenQueue {
		if m.queue.Search().Active {
			return NodeQueue
		}
		return NodeNone
	}
	if m.lib.global.Search().Active {
		return NodeGlobal
	}
	tracks := m.selectedTracks()
	tracksActive := tracks != nil && tracks.Search().Active
	artistsActive := m.lib.artists.Search().Active
	switch {
	case m.lib.focus == PanelTracks && tracksActive:
		return NodeTracks
	case m.lib.focus == PanelArtists && artistsActive:
		return NodeArtists
	case tracksActive:
		return NodeTracks
	case artistsActive:
		return NodeArtists
	}
	return NodeNone
}

// searchable returns the list bound to node, or nil.
func (m *Model) searchable(node SearchNode) state.Searchable {
	switch node {
	case NodeArtists:
		return m.lib.artists
	case NodeTracks:
		if tracks := m.selectedTracks(); tracks != nil {
			return tracks
		}
	case NodeGlobal:
		return m.lib.global
	case NodeQueue:
		return m.queue
	}
	return nil
}

// refilter recomputes the cache of node after its query changed. The
// selected row index is kept, clamped to the new match count.
func (m *Model) refilter(node SearchNode) {
	switch node {
	case NodeTracks:
		if tracks := m.selectedTracks(); tracks != nil {
			tracks.UpdateSearch(m.matcher)
			events.Search.Update(node.String(), tracks.Search().Query, countRanked(tracks))
		}
	case NodeNone:
	default:
		s := m.searchable(node)
		s.UpdateFilterCache(m.matcher, m.searchTopK())
		state.WatchOutOfBounds(s)
		ensureSelection(s)
		events.Search.Update(node.String(), s.Search().Query, s.Len())
	}
	m.cache.invalidate(DirtyLibrary)
}

func countRanked(t *state.TrackList) int {
	n := 0
	for _, e := range t.Entries() {
		if _, ok := e.MatchRank(); ok {
			n++
		}
	}
	return n
}

// handleSearchKey edits the query of the active node. Keys that end or
// confirm the search are turned into messages.
func (m *Model) handleSearchKey(key tea.KeyMsg) bool {
	node := m.ActiveNode()
	if node == NodeNone {
		m.mode = ModeRunning
		return false
	}
	s := m.searchable(node)
	if s == nil {
		m.mode = ModeRunning
		return false
	}
	search := s.Search()
	changed := false
	switch key.Type {
	case tea.KeyCtrlU:
		changed = search.ClearQuery()
	case tea.KeyCtrlN:
		if node == NodeTracks {
			m.selectedTracks().NextMatch()
		} else {
			m.dispatch(MoveVertical{Dir: state.Down})
		}
	case tea.KeyCtrlP:
		if node == NodeTracks {
			m.selectedTracks().PrevMatch()
		} else {
			m.dispatch(MoveVertical{Dir: state.Up})
		}
	case tea.KeyBackspace:
		changed = search.Backspace()
	case tea.KeyRunes:
		changed = search.AppendRunes(key.Runes)
	case tea.KeySpace:
		changed = search.AppendRunes([]rune{' '})
	case tea.KeyTab:
		if node != NodeTracks {
			m.dispatch(ToggleScreen{})
		}
	case tea.KeyEsc:
		if node == NodeGlobal {
			m.dispatch(GlobalSearch{Phase: SearchEnd})
		} else {
			m.dispatch(LocalSearch{Phase: SearchEnd})
		}
	case tea.KeyEnter:
		if node != NodeGlobal {
			m.dispatch(LocalSearch{Phase: SearchEnd})
		}
		m.dispatch(Select{})
	}
	if changed {
		m.refilter(node)
	}
	return true
}
