package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes how one column is laid out. Fixed columns keep their
// natural width; the others share whatever room is left.
type Column struct {
	Align Alignment
	Fixed bool
}

const (
	gap  = "  "
	tail = "…"
)

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	cols := make([]Column, len(alignments))
	for i, a := range alignments {
		cols[i] = Column{Align: a}
	}
	return Fit(rows, cols, 0)
}

// Fit pads rows into columns no wider than width cells in total. A width of
// zero or less disables truncation. Flexible columns are shrunk in proportion
// to their natural width and truncated with an ellipsis.
func Fit(rows [][]string, cols []Column, width int) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if w := CellWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	if width > 0 {
		widths = shrink(widths, cols, width-len(gap)*(colCount-1))
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(gap)
			}
			if CellWidth(cell) > widths[c] {
				cell = truncate.StringWithTail(cell, uint(widths[c]), tail)
			}
			pad := widths[c] - CellWidth(cell)
			if c < len(cols) && cols[c].Align == AlignRight {
				writeSpaces(&b, pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				writeSpaces(&b, pad)
			}
		}
		out[i] = b.String()
	}
	return out
}

func shrink(widths []int, cols []Column, avail int) []int {
	total, fixed, flex := 0, 0, 0
	for c, w := range widths {
		total += w
		if c < len(cols) && cols[c].Fixed {
			fixed += w
		} else {
			flex += w
		}
	}
	if total <= avail || flex == 0 {
		return widths
	}
	room := avail - fixed
	if room < 0 {
		room = 0
	}
	out := make([]int, len(widths))
	used := 0
	last := -1
	for c, w := range widths {
		if c < len(cols) && cols[c].Fixed {
			out[c] = w
			continue
		}
		out[c] = w * room / flex
		used += out[c]
		last = c
	}
	if last >= 0 {
		out[last] += room - used
	}
	return out
}

// CellWidth is the number of terminal cells text occupies.
func CellWidth(text string) int {
	return runewidth.StringWidth(text)
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
