package state

import (
	"sort"

	"github.com/atomicstack/tunetable/internal/library"
)

// TrackList is an artist's album and track rows. A query never hides rows;
// matching rows get a rank and highlight offsets instead.
type TrackList struct {
	entries    []library.Entry
	highlights [][]int
	search     SearchState
	cur        cursor
}

// NewTrackList wraps entries, selecting the first row.
func NewTrackList(entries []library.Entry) *TrackList {
	return &TrackList{
		entries:    entries,
		highlights: make([][]int, len(entries)),
		cur:        newCursor(len(entries)),
	}
}

func (t *TrackList) Len() int              { return len(t.entries) }
func (t *TrackList) Selected() (int, bool) { return t.cur.get() }
func (t *TrackList) Select(i int)          { t.cur.set(i, len(t.entries)) }
func (t *TrackList) Deselect()             { t.cur.selected = -1 }
func (t *TrackList) Offset() int           { return t.cur.offset }
func (t *TrackList) SetOffset(o int)       { t.cur.setOffset(o, len(t.entries)) }
func (t *TrackList) Search() *SearchState  { return &t.search }

// Entries returns every row.
func (t *TrackList) Entries() []library.Entry {
	return t.entries
}

// At returns row i and its highlight offsets.
func (t *TrackList) At(i int) (library.Entry, []int, bool) {
	if i < 0 || i >= len(t.entries) {
		return library.Entry{}, nil, false
	}
	return t.entries[i], t.highlights[i], true
}

// SelectedEntry returns the row under the selection.
func (t *TrackList) SelectedEntry() (library.Entry, bool) {
	i, ok := t.Selected()
	if !ok {
		return library.Entry{}, false
	}
	e, _, ok := t.At(i)
	return e, ok
}

// UpdateFilterCache matches the query against every row and assigns ranks
// to the survivors. Ranks follow row order, not score order, so NextMatch
// and PrevMatch walk the panel top to bottom; the score only decides which
// rows survive topK. Rows that do not match lose their rank. With an empty
// query no row is ranked.
func (t *TrackList) UpdateFilterCache(m Matcher, topK int) {
	candidates := make([]string, len(t.entries))
	for i, e := range t.entries {
		candidates[i] = e.TrackString()
	}
	for i := range t.entries {
		t.entries[i].Rank = nil
		t.highlights[i] = nil
	}
	if !t.search.Filtering() {
		t.search.Cache.Matches = UpdateFilter("", candidates, m, topK)
		return
	}
	matches := UpdateFilter(t.search.Query, candidates, m, topK)
	sort.SliceStable(matches, func(a, b int) bool { return matches[a].Index < matches[b].Index })
	t.search.Cache.Matches = matches
	for rank, match := range matches {
		r := rank
		t.entries[match.Index].Rank = &r
		t.highlights[match.Index] = match.Offsets
	}
	WatchOutOfBounds(t)
}

// UpdateSearch refreshes ranks and moves the selection to the first match.
func (t *TrackList) UpdateSearch(m Matcher) {
	t.UpdateFilterCache(m, 0)
	if idx := t.indexOfRank(0); idx >= 0 {
		t.Select(idx)
	}
}

// NextMatch selects the row ranked after the selected one.
func (t *TrackList) NextMatch() bool {
	return t.stepMatch(1)
}

// PrevMatch selects the row ranked before the selected one.
func (t *TrackList) PrevMatch() bool {
	return t.stepMatch(-1)
}

func (t *TrackList) stepMatch(delta int) bool {
	e, ok := t.SelectedEntry()
	if !ok {
		return false
	}
	rank, ok := e.MatchRank()
	if !ok || rank+delta < 0 {
		return false
	}
	idx := t.indexOfRank(rank + delta)
	if idx < 0 {
		return false
	}
	t.Select(idx)
	return true
}

func (t *TrackList) indexOfRank(rank int) int {
	for i, e := range t.entries {
		if r, ok := e.MatchRank(); ok && r == rank {
			return i
		}
	}
	return -1
}

// IndexOf returns the row index of the entry with the given file, or of the
// album header when file is empty.
func (t *TrackList) IndexOf(album, file string) int {
	for i, e := range t.entries {
		if file != "" && e.File == file {
			return i
		}
		if file == "" && e.IsAlbum() && e.Album == album {
			return i
		}
	}
	return -1
}
