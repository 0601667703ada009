package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/weathr/terminal"
)

var blankCell = terminal.Cell{Rune: ' '}

// Frame is a row-major grid of cells
type Frame struct {
	cells  []terminal.Cell
	width  int
	height int
}

// NewFrame creates a frame with the specified dimensions
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize adjusts dimensions, reallocating only if capacity is insufficient
func (f *Frame) Resize(width, height int) {
	size := width * height
	if cap(f.cells) < size {
		f.cells = make([]terminal.Cell, size)
	} else {
		f.cells = f.cells[:size]
	}
	f.width = width
	f.height = height
	f.Clear()
}

// Clear resets all cells using exponential copy
func (f *Frame) Clear() {
	if len(f.cells) == 0 {
		return
	}
	f.cells[0] = blankCell
	for filled := 1; filled < len(f.cells); filled *= 2 {
		copy(f.cells[filled:], f.cells[:filled])
	}
}

// Size returns the frame dimensions
func (f *Frame) Size() (width, height int) {
	return f.width, f.height
}

// Cell returns the cell at x, y; out of bounds yields a blank cell
func (f *Frame) Cell(x, y int) terminal.Cell {
	if !f.inBounds(x, y) {
		return blankCell
	}
	return f.cells[y*f.width+x]
}

func (f *Frame) inBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// SetBg replaces the background while preserving rune and foreground
func (f *Frame) SetBg(x, y int, bg RGB) {
	if !f.inBounds(x, y) {
		return
	}
	dst := &f.cells[y*f.width+x]
	dst.Bg = bg
	dst.Attrs |= terminal.AttrBg
}

// SetFg writes a glyph over the existing background
func (f *Frame) SetFg(x, y int, r rune, fg RGB, attrs terminal.Attr) {
	if !f.inBounds(x, y) {
		return
	}
	dst := &f.cells[y*f.width+x]
	dst.Rune = r
	dst.Fg = fg
	dst.Attrs = dst.Attrs&terminal.AttrBg | attrs&terminal.AttrStyle | terminal.AttrFg
}

// SetText writes s from x on row y, advancing by display width and clipping at the edge
func (f *Frame) SetText(x, y int, s string, fg RGB, attrs terminal.Attr) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > f.width {
			return
		}
		f.SetFg(x, y, r, fg, attrs)
		x += w
	}
}

// SetShape draws a multi-line sprite with top-left at x, y; spaces are transparent
func (f *Frame) SetShape(x, y int, shape []string, fg RGB, attrs terminal.Attr) {
	for dy, line := range shape {
		col := x
		for _, r := range line {
			if r != ' ' {
				f.SetFg(col, y+dy, r, fg, attrs)
			}
			col++
		}
	}
}

func (f *Frame) stripColor() {
	for i := range f.cells {
		f.cells[i] = f.cells[i].Plain()
	}
}
