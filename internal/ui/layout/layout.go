// Package layout computes the screen regions for a frame. It holds no state;
// every call derives the regions from the frame size and which search boxes
// are open.
package layout

// Rect is a cell rectangle. A zero-sized rect marks an absent region.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inner shrinks the rect by one cell on every side, the area inside a border.
func (r Rect) Inner() Rect {
	if r.Width < 2 || r.Height < 2 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: r.X + 1, Y: r.Y + 1, Width: r.Width - 2, Height: r.Height - 2}
}

// Direction is the axis a rect is split along.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

type kind int

const (
	kindLength kind = iota
	kindMax
	kindMin
	kindPercentage
	kindRatio
)

// Constraint sizes one band of a split.
type Constraint struct {
	kind kind
	a, b int
}

// Length is exactly n cells.
func Length(n int) Constraint { return Constraint{kind: kindLength, a: n} }

// Max is at most n cells.
func Max(n int) Constraint { return Constraint{kind: kindMax, a: n} }

// Min is at least n cells and takes any space left over.
func Min(n int) Constraint { return Constraint{kind: kindMin, a: n} }

// Percentage is p percent of the split length.
func Percentage(p int) Constraint { return Constraint{kind: kindPercentage, a: p} }

// Ratio is num/den of the split length.
func Ratio(num, den int) Constraint { return Constraint{kind: kindRatio, a: num, b: den} }

func (c Constraint) base(total int) int {
	var n int
	switch c.kind {
	case kindLength, kindMax, kindMin:
		n = c.a
	case kindPercentage:
		n = total * c.a / 100
	case kindRatio:
		if c.b > 0 {
			n = total * c.a / c.b
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

func (c Constraint) flexible() bool {
	return c.kind == kindPercentage || c.kind == kindRatio
}

// Split divides r into consecutive bands along dir. Space left after the
// base sizes goes to Min bands, or to the last proportional band when there
// is no Min band. When the bands do not fit, trailing bands shrink first.
func Split(r Rect, dir Direction, constraints ...Constraint) []Rect {
	total := r.Height
	if dir == Horizontal {
		total = r.Width
	}
	if total < 0 {
		total = 0
	}
	sizes := make([]int, len(constraints))
	sum := 0
	for i, c := range constraints {
		sizes[i] = c.base(total)
		sum += sizes[i]
	}
	if sum < total {
		distribute(sizes, constraints, total-sum)
	}
	for i := len(sizes) - 1; i >= 0 && sum > total; i-- {
		cut := sum - total
		if cut > sizes[i] {
			cut = sizes[i]
		}
		sizes[i] -= cut
		sum -= cut
	}

	out := make([]Rect, len(constraints))
	pos := 0
	for i, size := range sizes {
		if dir == Horizontal {
			out[i] = Rect{X: r.X + pos, Y: r.Y, Width: size, Height: r.Height}
		} else {
			out[i] = Rect{X: r.X, Y: r.Y + pos, Width: r.Width, Height: size}
		}
		pos += size
	}
	return out
}

func distribute(sizes []int, constraints []Constraint, extra int) {
	var mins []int
	for i, c := range constraints {
		if c.kind == kindMin {
			mins = append(mins, i)
		}
	}
	if len(mins) > 0 {
		share := extra / len(mins)
		for _, i := range mins {
			sizes[i] += share
		}
		sizes[mins[len(mins)-1]] += extra - share*len(mins)
		return
	}
	for i := len(constraints) - 1; i >= 0; i-- {
		if constraints[i].flexible() {
			sizes[i] += extra
			return
		}
	}
}

// Centered returns the middle of a 20/60/20 split along both axes.
func Centered(r Rect) Rect {
	rows := Split(r, Vertical, Percentage(20), Percentage(60), Percentage(20))
	cols := Split(rows[1], Horizontal, Percentage(20), Percentage(60), Percentage(20))
	return cols[1]
}

// withSearch splits a panel into a search box and list when active.
func withSearch(r Rect, active bool) (search, list Rect) {
	if !active {
		return Rect{}, r
	}
	parts := Split(r, Vertical, Max(3), Min(1))
	return parts[0], parts[1]
}
