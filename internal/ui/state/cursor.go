package state

// Direction is a vertical navigation step.
type Direction int

const (
	Up Direction = iota
	Down
	Top
	Bottom
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// DefaultScrollOverlap is the number of rows kept in view across a page flip.
const DefaultScrollOverlap = 3

// AddClamped returns i+k kept inside [0, n). i is returned unchanged when
// n is zero.
func AddClamped(i, k, n int) int {
	if n == 0 {
		return i
	}
	if i+k >= n {
		return n - 1
	}
	return i + k
}

// SubClamped returns i-k floored at zero. i is returned unchanged when n or i
// is zero.
func SubClamped(i, k, n int) int {
	if n == 0 || i == 0 {
		return i
	}
	if k >= i {
		return 0
	}
	return i - k
}

// MoveVertical moves the selection one row or to either end. With nothing
// selected any direction selects the first row.
func MoveVertical(dir Direction, s Selector) {
	n := s.Len()
	sel, ok := s.Selected()
	if !ok {
		if n != 0 {
			s.Select(0)
		}
		return
	}
	switch dir {
	case Up:
		s.Select(SubClamped(sel, 1, n))
	case Down:
		s.Select(AddClamped(sel, 1, n))
	case Top:
		s.Select(0)
	case Bottom:
		s.Select(SubClamped(n, 1, n))
	}
}

// ScrollByPage flips one page of the given height using DefaultScrollOverlap.
func ScrollByPage(dir Direction, height int, s Selector) {
	ScrollByPageOverlap(dir, height, DefaultScrollOverlap, s)
}

// ScrollByPageOverlap flips one page. Up selects the first visible row and
// moves the viewport back a page. Down selects the row a page below the
// viewport start; unless that row is at either end, the viewport moves there
// less overlap rows. Top and Bottom are ignored.
func ScrollByPageOverlap(dir Direction, height, overlap int, s Selector) {
	n := s.Len()
	switch dir {
	case Up:
		offset := s.Offset()
		s.Select(offset)
		s.SetOffset(SubClamped(offset, height, n))
	case Down:
		next := AddClamped(s.Offset(), height, n)
		if next > 0 && next < SubClamped(n, 1, n) {
			s.SetOffset(SubClamped(next, overlap, n))
		}
		s.Select(next)
	}
}

// WatchOutOfBounds re-clamps selection and offset after the list shrank.
func WatchOutOfBounds(s Selector) {
	n := s.Len()
	if n == 0 {
		s.Deselect()
		s.SetOffset(0)
		return
	}
	if sel, ok := s.Selected(); ok && sel >= n {
		s.Select(n - 1)
	}
	if s.Offset() > n-1 {
		s.SetOffset(n - 1)
	}
}

// EnsureVisible adjusts the offset so the selection is inside a viewport of
// the given height.
func EnsureVisible(s Selector, height int) {
	n := s.Len()
	if n == 0 || height <= 0 {
		s.SetOffset(0)
		return
	}
	maxOffset := n - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset := s.Offset()
	if offset > maxOffset {
		offset = maxOffset
	}
	sel, ok := s.Selected()
	if ok {
		if sel < offset {
			offset = sel
		}
		if upper := offset + height - 1; sel > upper {
			offset = sel - height + 1
		}
	}
	if offset < 0 {
		offset = 0
	}
	s.SetOffset(offset)
}
