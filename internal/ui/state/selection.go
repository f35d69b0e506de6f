package state

// Selector is implemented by every list holder the navigation helpers operate
// on. Selected indexes and offsets refer to the visible rows.
type Selector interface {
	Len() int
	Selected() (int, bool)
	Select(i int)
	Deselect()
	Offset() int
	SetOffset(o int)
}

// cursor stores a selection and viewport offset against a length supplied by
// the owning list. selected is -1 when nothing is selected.
type cursor struct {
	selected int
	offset   int
}

func newCursor(n int) cursor {
	if n == 0 {
		return cursor{selected: -1}
	}
	return cursor{selected: 0}
}

func (c *cursor) get() (int, bool) {
	if c.selected < 0 {
		return 0, false
	}
	return c.selected, true
}

func (c *cursor) set(i, n int) {
	if n == 0 {
		c.selected = -1
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	c.selected = i
}

func (c *cursor) setOffset(o, n int) {
	if o < 0 || n == 0 {
		o = 0
	}
	if n > 0 && o > n-1 {
		o = n - 1
	}
	c.offset = o
}

// List is a plain selectable collection.
type List[T any] struct {
	items []T
	cur   cursor
}

// NewList returns a list selecting its first row when non-empty.
func NewList[T any](items []T) *List[T] {
	return &List[T]{items: items, cur: newCursor(len(items))}
}

func (l *List[T]) Len() int              { return len(l.items) }
func (l *List[T]) Selected() (int, bool) { return l.cur.get() }
func (l *List[T]) Select(i int)          { l.cur.set(i, len(l.items)) }
func (l *List[T]) Deselect()             { l.cur.selected = -1 }
func (l *List[T]) Offset() int           { return l.cur.offset }
func (l *List[T]) SetOffset(o int)       { l.cur.setOffset(o, len(l.items)) }

// Items returns the backing slice.
func (l *List[T]) Items() []T {
	return l.items
}

// At returns the item at i.
func (l *List[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, false
	}
	return l.items[i], true
}

// SelectedItem returns the item under the selection.
func (l *List[T]) SelectedItem() (T, bool) {
	i, ok := l.Selected()
	if !ok {
		var zero T
		return zero, false
	}
	return l.At(i)
}

// SetItems replaces the items and re-clamps selection and offset.
func (l *List[T]) SetItems(items []T) {
	l.items = items
	WatchOutOfBounds(l)
}
