package ui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestQueueSearchKeystrokes(t *testing.T) {
	m, fake := newTestModel(t)
	h := NewHarness(m)
	h.Press(tea.KeyTab)
	if m.Screen() != ScreenQueue {
		t.Fatalf("expected queue screen, got %s", m.Screen())
	}

	h.Type("/")
	if m.Mode() != ModeSearching {
		t.Fatalf("expected searching mode")
	}
	h.Type("hyp")
	if got := queueTitles(m); !reflect.DeepEqual(got, []string{"Hyperballad"}) {
		t.Fatalf("expected only Hyperballad, got %v", got)
	}
	h.Press(tea.KeyBackspace)
	h.Press(tea.KeyBackspace)
	h.Press(tea.KeyBackspace)
	h.Press(tea.KeyBackspace)
	if m.queue.Search().Query != "" || m.queue.Len() != 5 {
		t.Fatalf("expected backspace to empty the query, got %q with %d rows", m.queue.Search().Query, m.queue.Len())
	}

	h.Type("wild")
	h.Press(tea.KeyCtrlU)
	if m.queue.Search().Query != "" || m.queue.Len() != 5 {
		t.Fatalf("expected ctrl+u to clear the query")
	}

	h.Type("myth")
	h.Press(tea.KeyEnter)
	if m.Mode() != ModeRunning {
		t.Fatalf("expected enter to leave search mode")
	}
	if !reflect.DeepEqual(fake.calls, []string{"switch 3"}) {
		t.Fatalf("expected the match to be played, got %v", fake.calls)
	}
	if m.queue.Search().Query != "myth" {
		t.Fatalf("expected query kept after enter, got %q", m.queue.Search().Query)
	}

	h.Press(tea.KeyEsc)
	if m.queue.Search().Active || m.queue.Len() != 5 {
		t.Fatalf("expected escape in running mode to close the search")
	}
}

func TestSearchCtrlNMovesThroughResults(t *testing.T) {
	m, _ := newTestModel(t)
	h := NewHarness(m)
	h.Type("/")
	h.Press(tea.KeyCtrlN)
	if got := selected(t, m.lib.artists); got != 1 {
		t.Fatalf("expected ctrl+n to move down, got %d", got)
	}
	h.Press(tea.KeyCtrlP)
	if got := selected(t, m.lib.artists); got != 0 {
		t.Fatalf("expected ctrl+p to move up, got %d", got)
	}
	h.Press(tea.KeyTab)
	if m.Screen() != ScreenQueue || m.Mode() != ModeRunning {
		t.Fatalf("expected tab to toggle the screen")
	}
}

func TestSearchEscapeKeepsQuery(t *testing.T) {
	m, _ := newTestModel(t)
	h := NewHarness(m)
	h.Type("/bea")
	h.Press(tea.KeyEsc)
	if m.Mode() != ModeRunning {
		t.Fatalf("expected running mode")
	}
	if m.lib.artists.Search().Query != "bea" || !m.lib.artists.Search().Active {
		t.Fatalf("expected query kept, got %q", m.lib.artists.Search().Query)
	}
	h.Press(tea.KeyEsc)
	if m.lib.artists.Search().Active || m.lib.artists.Search().Query != "" {
		t.Fatalf("expected second escape to close the search")
	}
}

func TestTrackSearchNavigatesByRank(t *testing.T) {
	m, _ := newTestModel(t)
	h := NewHarness(m)
	h.Press(tea.KeyDown)
	h.Press(tea.KeyRight)
	h.Type("/")
	if m.ActiveNode() != NodeTracks {
		t.Fatalf("expected track search, got %s", m.ActiveNode())
	}
	tracks := m.selectedTracks()

	// Rows: Debut, Human Behaviour, Post, Army of Me, Hyperballad.
	h.Type("a")
	if got := selected(t, tracks); got != 1 {
		t.Fatalf("expected first match Human Behaviour at row 1, got %d", got)
	}
	if tracks.Len() != 5 {
		t.Fatalf("expected track search to keep every row, got %d", tracks.Len())
	}
	h.Press(tea.KeyCtrlN)
	if got := selected(t, tracks); got != 3 {
		t.Fatalf("expected next match at row 3, got %d", got)
	}
	h.Press(tea.KeyCtrlN)
	h.Press(tea.KeyCtrlN)
	if got := selected(t, tracks); got != 4 {
		t.Fatalf("expected ctrl+n to stop at the last match, got %d", got)
	}
	h.Press(tea.KeyCtrlP)
	if got := selected(t, tracks); got != 3 {
		t.Fatalf("expected previous match at row 3, got %d", got)
	}

	entry, _, _ := tracks.At(0)
	if _, ok := entry.MatchRank(); ok {
		t.Fatalf("expected unmatched album header to have no rank")
	}

	h.Press(tea.KeyEsc)
	h.Press(tea.KeyEsc)
	for i := 0; i < tracks.Len(); i++ {
		e, _, _ := tracks.At(i)
		if _, ok := e.MatchRank(); ok {
			t.Fatalf("expected ranks cleared after closing the search, row %d still ranked", i)
		}
	}
}

func TestGlobalSearchJumpsToEntry(t *testing.T) {
	m, _ := newTestModel(t)
	h := NewHarness(m)
	h.Press(tea.KeyCtrlS)
	if m.ActiveNode() != NodeGlobal {
		t.Fatalf("expected global search")
	}
	h.Type("hyperb")
	if m.lib.global.Len() != 1 {
		t.Fatalf("expected a single result, got %d", m.lib.global.Len())
	}
	h.Press(tea.KeyEnter)
	if m.lib.global.Search().Active || m.Mode() != ModeRunning {
		t.Fatalf("expected popup closed")
	}
	if got := m.selectedArtist().Name; got != "Björk" {
		t.Fatalf("expected Björk selected, got %q", got)
	}
	entry, ok := m.selectedTracks().SelectedEntry()
	if !ok || entry.Title != "Hyperballad" {
		t.Fatalf("expected Hyperballad selected, got %+v", entry)
	}
	if m.lib.focus != PanelTracks {
		t.Fatalf("expected track focus after the jump")
	}
}

func TestGlobalSearchJumpClearsHidingArtistFilter(t *testing.T) {
	m, _ := newTestModel(t)
	m.lib.artists.Search().Active = true
	m.lib.artists.Search().AppendRunes([]rune("beach"))
	m.refilter(NodeArtists)
	if m.lib.artists.Len() != 1 {
		t.Fatalf("expected filtered artists")
	}
	h := NewHarness(m)
	h.Press(tea.KeyCtrlS)
	h.Type("army")
	h.Press(tea.KeyEnter)
	if got := m.selectedArtist().Name; got != "Björk" {
		t.Fatalf("expected Björk selected, got %q", got)
	}
	if m.lib.artists.Len() != 2 {
		t.Fatalf("expected artist filter cleared, got %d rows", m.lib.artists.Len())
	}
}

func TestGlobalSearchEscapeClosesPopup(t *testing.T) {
	m, _ := newTestModel(t)
	h := NewHarness(m)
	h.Press(tea.KeyCtrlS)
	h.Type("zzz")
	if m.lib.global.Len() != 0 {
		t.Fatalf("expected no results, got %d", m.lib.global.Len())
	}
	h.Press(tea.KeyEsc)
	if m.lib.global.Search().Active || m.lib.global.Search().Query != "" {
		t.Fatalf("expected popup closed and query cleared")
	}
	if m.lib.global.Len() != 8 {
		t.Fatalf("expected all entries back, got %d", m.lib.global.Len())
	}
}

func TestSearchingWithoutNodeFallsBack(t *testing.T) {
	m, _ := newTestModel(t)
	m.mode = ModeSearching
	h := NewHarness(m)
	h.Press(tea.KeyDown)
	if m.Mode() != ModeRunning {
		t.Fatalf("expected running mode")
	}
	if got := selected(t, m.lib.artists); got != 1 {
		t.Fatalf("expected the key handled normally, got %d", got)
	}
}

func TestTrackSearchStartSelectsFirstRow(t *testing.T) {
	m, _ := newTestModel(t)
	h := NewHarness(m)
	h.Press(tea.KeyDown)
	h.Press(tea.KeyRight)
	h.Press(tea.KeyEnd)
	tracks := m.selectedTracks()
	if got := selected(t, tracks); got != tracks.Len()-1 {
		t.Fatalf("expected last track row, got %d", got)
	}
	h.Type("/")
	if got := selected(t, tracks); got != 0 {
		t.Fatalf("expected search start to select row 0, got %d", got)
	}
}

func TestQueryEditKeepsSelectedRow(t *testing.T) {
	m, _ := newTestModel(t)
	h := NewHarness(m)
	h.Press(tea.KeyTab)
	h.Type("/")
	h.Press(tea.KeyCtrlN)
	h.Press(tea.KeyCtrlN)
	if got := selected(t, m.queue); got != 2 {
		t.Fatalf("expected row 2, got %d", got)
	}
	h.Type("a")
	if m.queue.Len() != 5 {
		t.Fatalf("expected every song to match, got %v", queueTitles(m))
	}
	if got := selected(t, m.queue); got != 2 {
		t.Fatalf("expected the edit to keep row 2, got %d", got)
	}
	h.Type("rmy")
	if got := queueTitles(m); !reflect.DeepEqual(got, []string{"Army of Me"}) {
		t.Fatalf("expected only Army of Me, got %v", got)
	}
	if got := selected(t, m.queue); got != 0 {
		t.Fatalf("expected the selection clamped to row 0, got %d", got)
	}
}
