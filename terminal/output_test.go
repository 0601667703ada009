package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colored(r rune) Cell {
	return Cell{Rune: r, Fg: RGB{10, 20, 30}, Bg: RGB{40, 50, 60}, Attrs: AttrFg | AttrBg | AttrBold}
}

func TestStreamWriter_TrueColor(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf, ColorModeTrueColor)

	require.NoError(t, w.Write([]CellWrite{{X: 0, Y: 0, Cell: colored('a')}}))

	out := buf.String()
	assert.Contains(t, out, "\x1b[1;1H")
	assert.Contains(t, out, "\x1b[0;1;38;2;10;20;30;48;2;40;50;60ma")
	assert.True(t, strings.HasSuffix(out, "\x1b[0m"))
}

func TestStreamWriter_CoalescesStyleAndCursor(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf, ColorModeTrueColor)

	require.NoError(t, w.Write([]CellWrite{
		{X: 3, Y: 2, Cell: colored('a')},
		{X: 4, Y: 2, Cell: colored('b')},
		{X: 5, Y: 2, Cell: colored('c')},
	}))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "H"), "contiguous cells share one cursor move")
	assert.Equal(t, 1, strings.Count(out, "38;2;"), "identical style emitted once")
	assert.Contains(t, out, "abc")
}

func TestStreamWriter_NoColorStripsColorCodes(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf, ColorModeNone)

	require.NoError(t, w.Write([]CellWrite{
		{X: 0, Y: 0, Cell: colored('*')},
		{X: 1, Y: 0, Cell: Cell{Rune: '.', Fg: RGB{200, 0, 0}, Attrs: AttrFg}},
	}))

	out := buf.String()
	assert.NotContains(t, out, "38;")
	assert.NotContains(t, out, "48;")
	assert.Contains(t, out, "*")
	assert.Contains(t, out, ".")
}

func TestStreamWriter_256Color(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf, ColorMode256)

	require.NoError(t, w.Write([]CellWrite{{X: 0, Y: 0, Cell: Cell{Rune: 'x', Fg: RGB{255, 0, 0}, Attrs: AttrFg}}}))
	assert.Contains(t, buf.String(), "38;5;196")
}

func TestStreamWriter_ZeroRuneIsSpace(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf, ColorModeNone)

	require.NoError(t, w.Write([]CellWrite{{X: 0, Y: 0}}))
	assert.Contains(t, buf.String(), "\x1b[0m \x1b[0m")
}

func TestStreamWriter_EmptyWriteEmitsNothing(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf, ColorModeTrueColor)

	require.NoError(t, w.Write(nil))
	assert.Zero(t, buf.Len())
}
