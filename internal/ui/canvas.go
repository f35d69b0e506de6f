package ui

import (
	"strings"

	"github.com/atomicstack/tunetable/internal/ui/layout"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// canvas is a frame of styled lines that regions are painted onto. Later
// paints cover earlier ones, which is how the popup overlays the panels.
type canvas struct {
	width int
	lines []string
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, lines: make([]string, height)}
	blank := strings.Repeat(" ", width)
	for i := range c.lines {
		c.lines[i] = blank
	}
	return c
}

// paint draws block into r, clipping and padding every row to r.Width.
func (c *canvas) paint(r layout.Rect, block string) {
	if r.Empty() {
		return
	}
	rows := strings.Split(block, "\n")
	for i := 0; i < r.Height; i++ {
		y := r.Y + i
		if y < 0 || y >= len(c.lines) {
			continue
		}
		row := ""
		if i < len(rows) {
			row = rows[i]
		}
		line := c.lines[y]
		left := ansi.Truncate(line, r.X, "")
		if pad := r.X - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(line, r.X+r.Width, "")
		c.lines[y] = left + fitCells(row, r.Width) + right
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// fitCells truncates or pads s to exactly width cells.
func fitCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// boxed renders lines inside a rounded border sized to r.
func boxed(r layout.Rect, border lipgloss.Style, lines []string) string {
	inner := r.Inner()
	if inner.Empty() {
		return strings.Join(lines, "\n")
	}
	fitted := make([]string, inner.Height)
	for i := range fitted {
		if i < len(lines) {
			fitted[i] = fitCells(lines[i], inner.Width)
		} else {
			fitted[i] = strings.Repeat(" ", inner.Width)
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border.GetForeground()).
		Render(strings.Join(fitted, "\n"))
}

// highlight renders text with the runes at offsets drawn in hl on top of
// base.
func highlight(text string, offsets []int, base, hl lipgloss.Style) string {
	if len(offsets) == 0 {
		return base.Render(text)
	}
	marked := make(map[int]struct{}, len(offsets))
	for _, o := range offsets {
		marked[o] = struct{}{}
	}
	on := hl.Inherit(base)
	var b strings.Builder
	var run []rune
	runMarked := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runMarked {
			b.WriteString(on.Render(string(run)))
		} else {
			b.WriteString(base.Render(string(run)))
		}
		run = run[:0]
	}
	for i, r := range []rune(text) {
		_, m := marked[i]
		if m != runMarked {
			flush()
			runMarked = m
		}
		run = append(run, r)
	}
	flush()
	return b.String()
}
