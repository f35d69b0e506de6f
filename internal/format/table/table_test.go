package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := Format([][]string{
		{"Hyperballad", "Björk", "3:33"},
		{"Jóga", "Björk", "5:05"},
	}, []Alignment{AlignLeft, AlignLeft, AlignRight})
	require.Len(t, rows, 2)
	assert.Equal(t, "Hyperballad  Björk  3:33", rows[0])
	assert.Equal(t, "Jóga         Björk  5:05", rows[1])
}

func TestFormatWideRunes(t *testing.T) {
	rows := Format([][]string{{"東京", "x"}, {"ab", "y"}}, nil)
	assert.Equal(t, "東京  x", rows[0])
	assert.Equal(t, "ab    y", rows[1])
}

func TestFitTruncatesFlexibleColumns(t *testing.T) {
	cols := []Column{{}, {}, {Align: AlignRight, Fixed: true}}
	rows := Fit([][]string{{"abcdefghij", "klmnopqrst", "1:00"}}, cols, 20)
	require.Len(t, rows, 1)
	assert.Equal(t, 20, CellWidth(rows[0]))
	assert.Contains(t, rows[0], "…")
	assert.True(t, len(rows[0]) > 4 && rows[0][len(rows[0])-4:] == "1:00")
}

func TestFitLeavesNarrowRows(t *testing.T) {
	rows := Fit([][]string{{"a", "b"}}, []Column{{}, {}}, 80)
	assert.Equal(t, "a  b", rows[0])
}

func TestFormatEmpty(t *testing.T) {
	assert.Nil(t, Format(nil, nil))
}
