// Package terminal is the boundary between the animation engine and the tty.
//
// Features:
//   - Screen interface consumed by the engine: size, events, cell writes
//   - tcell backend (default) and a raw ANSI backend with its own output writer
//   - Color capability resolution (NO_COLOR, tty detection, COLORTERM/TERM)
//   - Clean terminal restoration on exit/panic
//
// Cell writes arrive already diffed; backends only position, style and emit them.
package terminal
