package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/tunetable/internal/logging"
	"github.com/atomicstack/tunetable/internal/match"
	"github.com/atomicstack/tunetable/internal/mpd"
	"github.com/atomicstack/tunetable/internal/ui/state"
)

func queueModel(t *testing.T) (*Model, *fakePlayback) {
	t.Helper()
	m, fake := newTestModel(t)
	m.screen = ScreenQueue
	return m, fake
}

func mustApply(t *testing.T, m *Model, msg Message) Dirty {
	t.Helper()
	dirty, err := m.Apply(msg)
	if err != nil {
		t.Fatalf("apply %s: %v", messageName(msg), err)
	}
	return dirty
}

// applyAndRefresh applies msg and reloads the regions it dirtied, the way
// dispatch does.
func applyAndRefresh(t *testing.T, m *Model, msg Message) Dirty {
	t.Helper()
	dirty := mustApply(t, m, msg)
	if err := m.refresh(dirty); err != nil {
		t.Fatalf("refresh after %s: %v", messageName(msg), err)
	}
	return dirty
}

func TestQueueMoveVertical(t *testing.T) {
	m, _ := queueModel(t)
	steps := []struct {
		dir  state.Direction
		want int
	}{
		{state.Down, 1},
		{state.Down, 2},
		{state.Up, 1},
		{state.Bottom, 4},
		{state.Down, 4},
		{state.Top, 0},
		{state.Up, 0},
	}
	for _, step := range steps {
		if d := mustApply(t, m, MoveVertical{Dir: step.dir}); d != 0 {
			t.Fatalf("expected no dirty regions for movement, got %s", d)
		}
		if got := selected(t, m.queue); got != step.want {
			t.Fatalf("after %s expected %d, got %d", step.dir, step.want, got)
		}
	}
}

func TestQueueSelectSwitchesSong(t *testing.T) {
	m, fake := queueModel(t)
	m.queue.Select(2)
	dirty := mustApply(t, m, Select{})
	if dirty != DirtyStatus|DirtyCurrentSong {
		t.Fatalf("expected status|current-song, got %s", dirty)
	}
	if !reflect.DeepEqual(fake.calls, []string{"switch 2"}) {
		t.Fatalf("unexpected calls %v", fake.calls)
	}
}

func TestQueueSelectFailureLeavesStateUnchanged(t *testing.T) {
	m, fake := queueModel(t)
	boom := errors.New("connection reset")
	fake.fail["switch"] = boom
	m.queue.Select(1)
	dirty, err := m.Apply(Select{})
	var perr *PlaybackError
	if !errors.As(err, &perr) || perr.Op != "play" || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped playback error, got %v", err)
	}
	if dirty != 0 {
		t.Fatalf("expected no dirty regions on failure, got %s", dirty)
	}
	if got := selected(t, m.queue); got != 1 {
		t.Fatalf("expected selection kept at 1, got %d", got)
	}
}

func TestQueueSwapMovesSelection(t *testing.T) {
	m, fake := queueModel(t)
	m.queue.Select(1)
	dirty := applyAndRefresh(t, m, MoveHorizontal{Dir: Right})
	if dirty != DirtyStatus|DirtyQueue {
		t.Fatalf("expected status|queue, got %s", dirty)
	}
	if !reflect.DeepEqual(fake.calls, []string{"swap 1 2"}) {
		t.Fatalf("unexpected calls %v", fake.calls)
	}
	if got := selected(t, m.queue); got != 2 {
		t.Fatalf("expected selection to follow the song to 2, got %d", got)
	}
	want := []string{"Army of Me", "Human Behaviour", "Hyperballad", "Myth", "Wild"}
	if got := queueTitles(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	item, _ := m.queue.SelectedItem()
	if item.Pos != 2 || item.Title != "Hyperballad" {
		t.Fatalf("expected Hyperballad at position 2, got %q at %d", item.Title, item.Pos)
	}

	applyAndRefresh(t, m, MoveHorizontal{Dir: Left})
	if got := selected(t, m.queue); got != 1 {
		t.Fatalf("expected selection back at 1, got %d", got)
	}
}

func TestQueueSwapAtEdgesIsNoop(t *testing.T) {
	m, fake := queueModel(t)
	m.queue.Select(0)
	if d := mustApply(t, m, MoveHorizontal{Dir: Left}); d != 0 {
		t.Fatalf("expected no-op at the top, got %s", d)
	}
	m.queue.Select(4)
	if d := mustApply(t, m, MoveHorizontal{Dir: Right}); d != 0 {
		t.Fatalf("expected no-op at the bottom, got %s", d)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("expected no server calls, got %v", fake.calls)
	}
}

func TestQueueSwapNeedsTwoItems(t *testing.T) {
	m, fake := queueModel(t)
	m.queue.SetItems(fake.queue[:1])
	m.queue.Select(0)
	if d := mustApply(t, m, MoveHorizontal{Dir: Right}); d != 0 {
		t.Fatalf("expected no-op, got %s", d)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("expected no server calls, got %v", fake.calls)
	}
}

func TestQueueDeleteSelectsPreviousRow(t *testing.T) {
	m, fake := queueModel(t)
	m.queue.Select(3)
	dirty := applyAndRefresh(t, m, Delete{})
	if dirty != DirtyStatus|DirtyQueue {
		t.Fatalf("expected status|queue, got %s", dirty)
	}
	if !reflect.DeepEqual(fake.calls, []string{"delete 3"}) {
		t.Fatalf("unexpected calls %v", fake.calls)
	}
	if m.queue.Len() != 4 {
		t.Fatalf("expected 4 items left, got %d", m.queue.Len())
	}
	if got := selected(t, m.queue); got != 2 {
		t.Fatalf("expected selection 2, got %d", got)
	}
	last, _, _ := m.queue.Visible(3)
	if last.Title != "Wild" || last.Pos != 3 {
		t.Fatalf("expected Wild renumbered to 3, got %q at %d", last.Title, last.Pos)
	}
}

func TestQueueDeleteFirstAndLast(t *testing.T) {
	m, _ := queueModel(t)
	m.queue.Select(0)
	applyAndRefresh(t, m, Delete{})
	if got := selected(t, m.queue); got != 0 {
		t.Fatalf("expected selection to stay at 0, got %d", got)
	}
	for m.queue.Len() > 0 {
		applyAndRefresh(t, m, Delete{})
	}
	if _, ok := m.queue.Selected(); ok {
		t.Fatalf("expected no selection on an empty queue")
	}
	if d := mustApply(t, m, Delete{}); d != 0 {
		t.Fatalf("expected delete without selection to be a no-op, got %s", d)
	}
}

func TestQueueDeleteErrorLeavesQueueUntouched(t *testing.T) {
	m, fake := queueModel(t)
	fake.fail["delete"] = errors.New("ACK [2@0] {delete} Bad song index")
	m.queue.Select(3)
	before := queueTitles(m)
	dirty, err := m.Apply(Delete{})
	var perr *PlaybackError
	if !errors.As(err, &perr) || perr.Op != "delete" {
		t.Fatalf("expected delete playback error, got %v", err)
	}
	if dirty != 0 {
		t.Fatalf("expected nothing dirtied, got %s", dirty)
	}
	if got := queueTitles(m); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected queue unchanged, got %v", got)
	}
	if got := selected(t, m.queue); got != 3 {
		t.Fatalf("expected selection kept at 3, got %d", got)
	}
}

func TestQueueSwapErrorLeavesQueueUntouched(t *testing.T) {
	m, fake := queueModel(t)
	fake.fail["swap"] = errors.New("connection closed")
	m.queue.Select(1)
	m.dispatch(MoveHorizontal{Dir: Right})
	if m.Err() != "swap: connection closed" {
		t.Fatalf("expected swap error surfaced, got %q", m.Err())
	}
	want := []string{"Army of Me", "Hyperballad", "Human Behaviour", "Myth", "Wild"}
	if got := queueTitles(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := selected(t, m.queue); got != 1 {
		t.Fatalf("expected selection kept at 1, got %d", got)
	}
	item, _ := m.queue.SelectedItem()
	if item.Pos != 1 {
		t.Fatalf("expected server position 1, got %d", item.Pos)
	}
}

func TestQueueSwapDisabledWhileFiltered(t *testing.T) {
	m, fake := queueModel(t)
	m.queue.Search().Query = "my"
	m.refilter(NodeQueue)
	if got := queueTitles(m); len(got) < 2 {
		t.Fatalf("expected at least two matches, got %v", got)
	}
	before := queueTitles(m)
	m.queue.Select(0)
	if d := mustApply(t, m, MoveHorizontal{Dir: Right}); d != 0 {
		t.Fatalf("expected no-op, got %s", d)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("expected no server calls, got %v", fake.calls)
	}
	if got := selected(t, m.queue); got != 0 {
		t.Fatalf("expected selection kept, got %d", got)
	}
	if got := queueTitles(m); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected rows unchanged, got %v", got)
	}
}

func TestQueueDeleteWhileFiltered(t *testing.T) {
	m, fake := queueModel(t)
	m.queue.Search().Query = "wild"
	m.refilter(NodeQueue)
	if got := queueTitles(m); !reflect.DeepEqual(got, []string{"Wild"}) {
		t.Fatalf("expected only Wild, got %v", got)
	}
	applyAndRefresh(t, m, Delete{})
	if !reflect.DeepEqual(fake.calls, []string{"delete 4"}) {
		t.Fatalf("expected the server position of Wild, got %v", fake.calls)
	}
	if m.queue.Len() != 0 {
		t.Fatalf("expected the filter to hide every remaining row, got %v", queueTitles(m))
	}
	if len(m.queue.All()) != 4 {
		t.Fatalf("expected 4 songs left in the queue, got %d", len(m.queue.All()))
	}
}

func TestQueueLocalSearchRoundTrip(t *testing.T) {
	m, _ := queueModel(t)
	m.queue.Select(3)
	mustApply(t, m, LocalSearch{Phase: SearchStart})
	if m.Mode() != ModeSearching || !m.queue.Search().Active {
		t.Fatalf("expected active search")
	}
	if got := selected(t, m.queue); got != 0 {
		t.Fatalf("expected selection reset to 0, got %d", got)
	}
	if m.ActiveNode() != NodeQueue {
		t.Fatalf("expected queue node, got %s", m.ActiveNode())
	}

	m.queue.Search().AppendRunes([]rune("myth"))
	m.refilter(NodeQueue)
	if got := queueTitles(m); !reflect.DeepEqual(got, []string{"Myth"}) {
		t.Fatalf("expected only Myth, got %v", got)
	}

	mustApply(t, m, LocalSearch{Phase: SearchEnd})
	if m.Mode() != ModeRunning || m.queue.Search().Query != "myth" || !m.queue.Search().Active {
		t.Fatalf("expected search end to keep the query")
	}

	mustApply(t, m, Escape{})
	if m.queue.Search().Active || m.queue.Search().Query != "" {
		t.Fatalf("expected escape to clear the search")
	}
	if m.queue.Len() != 5 {
		t.Fatalf("expected all rows back, got %d", m.queue.Len())
	}
	if _, ok := m.queue.Selected(); !ok {
		t.Fatalf("expected a selection after escape")
	}
}

func TestToggleScreenCycles(t *testing.T) {
	m, _ := newTestModel(t)
	m.mode = ModeSearching
	mustApply(t, m, ToggleScreen{})
	if m.Screen() != ScreenQueue || m.Mode() != ModeRunning {
		t.Fatalf("expected queue/running, got %s/%s", m.Screen(), m.Mode())
	}
	mustApply(t, m, ToggleScreen{})
	if m.Screen() != ScreenLibrary {
		t.Fatalf("expected library, got %s", m.Screen())
	}

	m.screens = []Screen{ScreenQueue}
	mustApply(t, m, ToggleScreen{})
	mustApply(t, m, ToggleScreen{})
	if m.Screen() != ScreenQueue {
		t.Fatalf("expected single-screen cycle to stay on queue, got %s", m.Screen())
	}
}

func TestPlaybackMessages(t *testing.T) {
	m, fake := newTestModel(t)
	m.status = mpd.Status{State: mpd.StatePlaying, Song: 1, SongID: 11, Elapsed: 3 * 1e9}

	cases := []struct {
		msg   Message
		call  string
		dirty Dirty
	}{
		{PlayPause{}, "toggle playing", DirtyStatus},
		{NextSong{}, "next", DirtyStatus | DirtyCurrentSong},
		{PreviousSong{}, "previous", DirtyStatus | DirtyCurrentSong},
		{Seek{Forward: true}, "seek 1 8s", DirtyStatus},
		{Seek{}, "seek 1 -2s", DirtyStatus},
	}
	for _, tc := range cases {
		fake.calls = nil
		dirty := mustApply(t, m, tc.msg)
		if dirty != tc.dirty {
			t.Fatalf("%s: expected %s, got %s", messageName(tc.msg), tc.dirty, dirty)
		}
		if len(fake.calls) != 1 || fake.calls[0] != tc.call {
			t.Fatalf("%s: expected %q, got %v", messageName(tc.msg), tc.call, fake.calls)
		}
	}
}

func TestSeekWithoutSongIsNoop(t *testing.T) {
	m, fake := newTestModel(t)
	if d := mustApply(t, m, Seek{Forward: true}); d != 0 {
		t.Fatalf("expected no-op, got %s", d)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("expected no calls, got %v", fake.calls)
	}
}

func TestClearQueue(t *testing.T) {
	m, fake := newTestModel(t)
	dirty := mustApply(t, m, ClearQueue{})
	if !dirty.Has(DirtyQueue) || m.queue.Len() != 0 {
		t.Fatalf("expected cleared queue, got %d items (%s)", m.queue.Len(), dirty)
	}
	if fake.calls[0] != "clear" {
		t.Fatalf("expected clear call, got %v", fake.calls)
	}
}

func TestUnhandledMessagesAreNoops(t *testing.T) {
	m, fake := queueModel(t)
	for _, msg := range []Message{TogglePanel{}} {
		if d := mustApply(t, m, msg); d != 0 {
			t.Fatalf("%s: expected no-op, got %s", messageName(msg), d)
		}
	}
	if len(fake.calls) != 0 {
		t.Fatalf("expected no calls, got %v", fake.calls)
	}
}

func TestDispatchRefreshesQueueWhenVersionMoves(t *testing.T) {
	m, fake := newTestModel(t)
	fake.queue = fake.queue[:2]
	fake.status.PlaylistVersion = 7
	m.dispatch(Tick{})
	if m.queue.Len() != 2 {
		t.Fatalf("expected queue refetched, got %d items", m.queue.Len())
	}
	if m.status.PlaylistVersion != 7 {
		t.Fatalf("expected status refreshed, got version %d", m.status.PlaylistVersion)
	}
	if m.Err() != "" {
		t.Fatalf("unexpected error %q", m.Err())
	}
}

func TestDispatchSurfacesErrors(t *testing.T) {
	m, fake := queueModel(t)
	fake.fail["switch"] = errors.New("broken pipe")
	m.dispatch(Select{})
	if m.Err() != "play: broken pipe" {
		t.Fatalf("expected surfaced error, got %q", m.Err())
	}
	delete(fake.fail, "switch")
	m.dispatch(Select{})
	if m.Err() != "" {
		t.Fatalf("expected error cleared after a successful call, got %q", m.Err())
	}

	fake.fail["status"] = errors.New("timeout")
	m.dispatch(Tick{})
	if m.Err() != "status: timeout" {
		t.Fatalf("expected refresh error, got %q", m.Err())
	}
}

func TestDirtyString(t *testing.T) {
	if got := Dirty(0).String(); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}
	if got := (DirtyStatus | DirtyQueue).String(); got != "status|queue" {
		t.Fatalf("expected status|queue, got %q", got)
	}
}

func TestScrollOverlapZeroIsKept(t *testing.T) {
	items := make([]mpd.QueueItem, 20)
	for i := range items {
		items[i] = mpd.QueueItem{Song: mpd.Song{File: fmt.Sprintf("%02d.flac", i)}, Pos: i, ID: i}
	}
	cases := []struct {
		overlap    int
		wantOffset int
	}{
		{overlap: 0, wantOffset: 5},
		{overlap: 2, wantOffset: 3},
		{overlap: -1, wantOffset: 5 - state.DefaultScrollOverlap},
	}
	for _, tc := range cases {
		m := NewModel(Options{
			Matcher:       match.Fuzzy{},
			Snapshot:      mpd.Snapshot{Queue: items},
			ScrollOverlap: tc.overlap,
			Width:         100,
			Height:        30,
		})
		m.queue.Select(0)
		m.scrollPage(state.Down, 5, m.queue)
		if got := m.queue.Offset(); got != tc.wantOffset {
			t.Fatalf("overlap %d: expected offset %d, got %d", tc.overlap, tc.wantOffset, got)
		}
		if got := selected(t, m.queue); got != 5 {
			t.Fatalf("overlap %d: expected selection 5, got %d", tc.overlap, got)
		}
	}
}

func TestPlaybackErrorsAreLogged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")
	logging.Configure(path)
	t.Cleanup(func() { logging.Configure(testLogPath) })

	m, fake := newTestModel(t)
	fake.fail["next"] = errors.New("not playing")
	m.dispatch(NextSong{})
	logging.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "next: not playing") {
		t.Fatalf("expected the failure in the log, got %q", data)
	}
}
