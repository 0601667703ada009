package terminal

import (
	"bufio"
	"io"
)

// StreamWriter serializes cell writes as ANSI, coalescing cursor moves and SGR state
type StreamWriter struct {
	writer    *bufio.Writer
	colorMode ColorMode

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	lastFg    RGB
	lastBg    RGB
	lastAttr  Attr
	lastValid bool
}

// NewStreamWriter creates a writer emitting to w in the given color mode
func NewStreamWriter(w io.Writer, colorMode ColorMode) *StreamWriter {
	return &StreamWriter{
		writer:    bufio.NewWriterSize(w, 65536),
		colorMode: colorMode,
	}
}

// Write emits the cells; writes are expected in row-major order for best coalescing
func (o *StreamWriter) Write(writes []CellWrite) error {
	w := o.writer

	for _, cw := range writes {
		if !o.cursorValid || cw.X != o.cursorX || cw.Y != o.cursorY {
			writeCursorPos(w, cw.X, cw.Y)
			o.cursorX = cw.X
			o.cursorY = cw.Y
			o.cursorValid = true
		}

		c := cw.Cell
		if !o.colorMode.Enabled() {
			c = c.Plain()
		}
		o.writeStyleCoalesced(w, c.Fg, c.Bg, c.Attrs)

		r := c.Rune
		if r == 0 {
			r = ' '
		}
		if r < 0x80 {
			w.WriteByte(byte(r))
		} else {
			w.WriteRune(r)
		}
		o.cursorX++
	}

	if len(writes) > 0 {
		w.Write(csiSGR0)
		o.lastValid = false
	}

	return w.Flush()
}

// Clear wipes the screen and forgets cursor/style state
func (o *StreamWriter) Clear() error {
	o.writer.Write(csiSGR0)
	o.writer.Write(csiClear)
	o.invalidate()
	return o.writer.Flush()
}

// writeRaw emits control sequences through the same buffer to keep stream order
func (o *StreamWriter) writeRaw(p []byte) {
	o.writer.Write(p)
	o.writer.Flush()
}

func (o *StreamWriter) invalidate() {
	o.lastValid = false
	o.cursorValid = false
}

// writeStyleCoalesced emits a single combined SGR sequence when style changes
func (o *StreamWriter) writeStyleCoalesced(w *bufio.Writer, fg, bg RGB, attr Attr) {
	if o.lastValid && fg == o.lastFg && bg == o.lastBg && attr == o.lastAttr {
		return
	}

	// Always reset first so a dropped color or attribute cannot leak from the previous cell
	w.Write(csi)
	w.WriteByte('0')
	if attr&AttrBold != 0 {
		w.Write([]byte(";1"))
	}
	if attr&AttrDim != 0 {
		w.Write([]byte(";2"))
	}
	if attr&AttrFg != 0 {
		o.writeColorInline(w, fg, '3')
	}
	if attr&AttrBg != 0 {
		o.writeColorInline(w, bg, '4')
	}
	w.WriteByte('m')

	o.lastFg = fg
	o.lastBg = bg
	o.lastAttr = attr
	o.lastValid = true
}

// writeColorInline writes ;38;... or ;48;... parameters (layer is '3' for fg, '4' for bg)
func (o *StreamWriter) writeColorInline(w *bufio.Writer, c RGB, layer byte) {
	w.WriteByte(';')
	w.WriteByte(layer)
	if o.colorMode == ColorModeTrueColor {
		w.Write([]byte("8;2;"))
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
		return
	}
	w.Write([]byte("8;5;"))
	writeInt(w, int(RGBTo256(c)))
}
