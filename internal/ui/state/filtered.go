package state

// Searchable is a Selector whose rows can be narrowed by a query.
type Searchable interface {
	Selector
	Search() *SearchState
	UpdateFilterCache(m Matcher, topK int)
}

// FilteredList holds every item and shows the subset selected by its search
// cache. Indexes passed to Selector methods refer to visible rows.
type FilteredList[T any] struct {
	all     []T
	key     func(T) string
	search  SearchState
	cur     cursor
	matcher Matcher
	topK    int
}

// NewFilteredList builds a list whose rows are matched through key.
func NewFilteredList[T any](items []T, key func(T) string, m Matcher) *FilteredList[T] {
	l := &FilteredList[T]{all: items, key: key, matcher: m}
	l.refilter()
	l.cur = newCursor(l.Len())
	return l
}

func (l *FilteredList[T]) Len() int              { return len(l.search.Cache.Matches) }
func (l *FilteredList[T]) Selected() (int, bool) { return l.cur.get() }
func (l *FilteredList[T]) Select(i int)          { l.cur.set(i, l.Len()) }
func (l *FilteredList[T]) Deselect()             { l.cur.selected = -1 }
func (l *FilteredList[T]) Offset() int           { return l.cur.offset }
func (l *FilteredList[T]) SetOffset(o int)       { l.cur.setOffset(o, l.Len()) }
func (l *FilteredList[T]) Search() *SearchState  { return &l.search }

// UpdateFilterCache recomputes the visible rows and re-clamps the selection.
func (l *FilteredList[T]) UpdateFilterCache(m Matcher, topK int) {
	if m != nil {
		l.matcher = m
	}
	l.topK = topK
	l.refilter()
	WatchOutOfBounds(l)
}

func (l *FilteredList[T]) refilter() {
	candidates := make([]string, len(l.all))
	for i, item := range l.all {
		candidates[i] = l.key(item)
	}
	l.search.Cache.Matches = UpdateFilter(l.search.Query, candidates, l.matcher, l.topK)
}

// All returns every item regardless of the filter.
func (l *FilteredList[T]) All() []T {
	return l.all
}

// SetItems replaces the backing items, re-applying the current query.
func (l *FilteredList[T]) SetItems(items []T) {
	l.all = items
	l.refilter()
	WatchOutOfBounds(l)
}

// Visible returns the item and highlight offsets of visible row i.
func (l *FilteredList[T]) Visible(i int) (T, []int, bool) {
	var zero T
	if i < 0 || i >= l.Len() {
		return zero, nil, false
	}
	m := l.search.Cache.Matches[i]
	return l.all[m.Index], m.Offsets, true
}

// SelectedItem returns the item under the selection.
func (l *FilteredList[T]) SelectedItem() (T, bool) {
	i, ok := l.Selected()
	if !ok {
		var zero T
		return zero, false
	}
	item, _, ok := l.Visible(i)
	return item, ok
}

// SourceIndex maps visible row i to its index in All.
func (l *FilteredList[T]) SourceIndex(i int) (int, bool) {
	if i < 0 || i >= l.Len() {
		return 0, false
	}
	return l.search.Cache.Matches[i].Index, true
}

// VisibleIndex maps an index into All to its visible row, or -1.
func (l *FilteredList[T]) VisibleIndex(source int) int {
	for i, m := range l.search.Cache.Matches {
		if m.Index == source {
			return i
		}
	}
	return -1
}
