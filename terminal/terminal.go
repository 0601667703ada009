package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << 0
	AttrDim  Attr = 1 << 1
	AttrFg   Attr = 1 << 6 // Fg carries a color
	AttrBg   Attr = 1 << 7 // Bg carries a color
)

// AttrStyle masks only the style bits (excludes color presence flags)
const AttrStyle Attr = AttrBold | AttrDim

// AttrColor masks the color presence flags
const AttrColor Attr = AttrFg | AttrBg

// Cell represents a single terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// Plain returns the cell with all color information removed
func (c Cell) Plain() Cell {
	return Cell{Rune: c.Rune, Attrs: c.Attrs &^ AttrColor}
}

// CellWrite is a single changed cell at a grid position (0-indexed)
type CellWrite struct {
	X, Y int
	Cell Cell
}

// Screen is the terminal surface the engine draws on
type Screen interface {
	// Init enters raw mode, alternate screen buffer, hides cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// Events returns the input/resize channel; consumers must not block on it
	Events() <-chan Event

	// Write emits the given cells in order and flushes
	Write(writes []CellWrite) error

	// Clear wipes the physical screen before a full redraw
	Clear()

	// ColorMode returns the resolved color capability
	ColorMode() ColorMode
}

// Backend names accepted by New
const (
	BackendTcell = "tcell"
	BackendANSI  = "ansi"
)

var ErrUnknownBackend = errors.New("unknown terminal backend")

// New creates a Screen for the named backend writing to the process tty
func New(backend string, mode ColorMode) (Screen, error) {
	switch backend {
	case "", BackendTcell:
		return NewTcellScreen(mode)
	case BackendANSI:
		return NewANSIScreen(mode)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
