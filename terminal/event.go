package terminal

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventResize
	EventClosed // Input closed
)

// Key identifies non-printable keys; printable input uses KeyRune
type Key uint8

const (
	KeyRune Key = iota
	KeyEscape
	KeyCtrlC
	KeyEnter
	KeyOther
)

// Event represents a terminal input event
type Event struct {
	Type   EventType
	Key    Key
	Rune   rune
	Width  int // For EventResize
	Height int // For EventResize
}

// IsInterrupt reports an Escape or Ctrl-C key press
func (e Event) IsInterrupt() bool {
	return e.Type == EventKey && (e.Key == KeyEscape || e.Key == KeyCtrlC)
}

// sendEvent delivers without blocking the producer; a pending resize is replaced by the newer one
func sendEvent(ch chan Event, ev Event) {
	select {
	case ch <- ev:
		return
	default:
	}
	if ev.Type != EventResize {
		return // Queue full, drop key
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- ev:
	default:
	}
}
