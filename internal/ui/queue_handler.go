package ui

import "github.com/atomicstack/tunetable/internal/ui/state"

func (m *Model) applyQueue(msg Message) (Dirty, error) {
	q := m.queue
	switch msg := msg.(type) {
	case MoveVertical:
		state.MoveVertical(msg.Dir, q)
		return 0, nil
	case ScrollScreenful:
		m.scrollPage(msg.Dir, m.queueLayout().List.Height, q)
		return 0, nil
	case Select:
		item, ok := q.SelectedItem()
		if !ok || m.playback == nil {
			return 0, nil
		}
		if err := m.playback.SwitchTo(item.Pos); err != nil {
			return 0, playbackErr("play", err)
		}
		return DirtyStatus | DirtyCurrentSong, nil
	case MoveHorizontal:
		return m.swapQueueItem(msg.Dir)
	case Delete:
		return m.deleteQueueItem()
	case LocalSearch:
		switch msg.Phase {
		case SearchStart:
			q.Search().Active = true
			m.mode = ModeSearching
			if q.Len() != 0 {
				q.Select(0)
			}
		case SearchEnd:
			m.mode = ModeRunning
		}
		return 0, nil
	case Escape:
		q.Search().Reset()
		q.UpdateFilterCache(m.matcher, m.searchTopK())
		ensureSelection(q)
		m.mode = ModeRunning
		return 0, nil
	}
	return 0, nil
}

// swapQueueItem exchanges the selected song with its neighbour in queue
// order and moves the selection with it. The queue itself is only reloaded
// from the server after the swap succeeded. Swapping is disabled while a
// filter hides part of the queue, since visible neighbours need not be
// adjacent.
func (m *Model) swapQueueItem(dir Horizontal) (Dirty, error) {
	q := m.queue
	if q.Search().Filtering() || m.playback == nil {
		return 0, nil
	}
	n := q.Len()
	p, ok := q.Selected()
	if n < 2 || !ok {
		return 0, nil
	}
	to := state.AddClamped(p, 1, n)
	if dir == Left {
		to = state.SubClamped(p, 1, n)
	}
	if to == p {
		return 0, nil
	}
	a, _ := q.SelectedItem()
	b, _, _ := q.Visible(to)
	if err := m.playback.Swap(a.Pos, b.Pos); err != nil {
		return 0, playbackErr("swap", err)
	}
	q.Select(to)
	state.WatchOutOfBounds(q)
	return DirtyStatus | DirtyQueue, nil
}

// deleteQueueItem removes the selected song and selects the row above it.
func (m *Model) deleteQueueItem() (Dirty, error) {
	q := m.queue
	p, ok := q.Selected()
	if !ok || m.playback == nil {
		return 0, nil
	}
	item, _ := q.SelectedItem()
	if err := m.playback.DeleteAt(item.Pos); err != nil {
		return 0, playbackErr("delete", err)
	}
	q.Select(state.SubClamped(p, 1, q.Len()-1))
	state.WatchOutOfBounds(q)
	return DirtyStatus | DirtyQueue, nil
}
