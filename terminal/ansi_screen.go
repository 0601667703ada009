package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/weathr/parameter"
)

// ansiScreen drives the tty directly through a raw backend and a StreamWriter
type ansiScreen struct {
	mu      sync.Mutex
	backend Backend
	output  *StreamWriter
	mode    ColorMode

	eventCh chan Event
	stopCh  chan struct{}
	wg      sync.WaitGroup

	initialized bool
	finalized   bool

	// Persistent buffer for stream assembly across reads
	buf []byte
}

// NewANSIScreen creates a Screen on the process tty using raw ANSI sequences
func NewANSIScreen(mode ColorMode) (Screen, error) {
	return newANSIScreen(newBackend(), mode), nil
}

func newANSIScreen(b Backend, mode ColorMode) *ansiScreen {
	return &ansiScreen{
		backend: b,
		output:  NewStreamWriter(b.Output(), mode),
		mode:    mode,
		eventCh: make(chan Event, parameter.EventQueueSize),
		stopCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

func (s *ansiScreen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := s.backend.Init(); err != nil {
		return err
	}

	s.output.writeRaw(csiAltScreenEnter)
	s.output.writeRaw(csiCursorHide)
	s.output.writeRaw(csiAutoWrapOff)
	s.output.Clear()

	s.wg.Add(2)
	go s.readLoop()
	go s.resizeLoop()

	s.initialized = true
	return nil
}

func (s *ansiScreen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return
	}

	close(s.stopCh)
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(parameter.InputShutdownGrace):
	}

	s.output.writeRaw(csiCursorShow)
	s.output.writeRaw(csiAltScreenExit)
	s.output.writeRaw(csiAutoWrapOn)
	s.output.writeRaw(csiSGR0)

	s.backend.Fini()
	s.finalized = true
}

func (s *ansiScreen) Size() (int, int) {
	return s.backend.Size()
}

func (s *ansiScreen) Events() <-chan Event {
	return s.eventCh
}

func (s *ansiScreen) Write(writes []CellWrite) error {
	if err := s.output.Write(writes); err != nil {
		s.output.invalidate()
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (s *ansiScreen) Clear() {
	s.output.Clear()
}

func (s *ansiScreen) ColorMode() ColorMode {
	return s.mode
}

func (s *ansiScreen) resizeLoop() {
	defer s.wg.Done()
	resized := s.backend.Resized()
	for {
		select {
		case <-s.stopCh:
			return
		case <-resized:
			w, h := s.backend.Size()
			sendEvent(s.eventCh, Event{Type: EventResize, Width: w, Height: h})
		}
	}
}

func (s *ansiScreen) readLoop() {
	defer s.wg.Done()

	defer func() {
		if r := recover(); r != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	chunk := make([]byte, 256)
	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		n, err := s.backend.Read(chunk, parameter.InputPollTimeout)
		if err != nil {
			sendEvent(s.eventCh, Event{Type: EventClosed})
			return
		}
		if n == 0 {
			// Poll expired: a lone pending ESC is a standalone key
			if len(s.buf) == 1 && s.buf[0] == 0x1b {
				sendEvent(s.eventCh, Event{Type: EventKey, Key: KeyEscape})
				s.buf = s.buf[:0]
			}
			continue
		}

		s.buf = append(s.buf, chunk[:n]...)
		consumed := parseInput(s.buf, func(ev Event) { sendEvent(s.eventCh, ev) })
		if consumed >= len(s.buf) {
			s.buf = s.buf[:0]
		} else if consumed > 0 {
			copy(s.buf, s.buf[consumed:])
			s.buf = s.buf[:len(s.buf)-consumed]
		}
	}
}

// parseInput decodes raw tty bytes into key events and returns bytes consumed (stops on incomplete sequence)
func parseInput(data []byte, emit func(Event)) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		switch {
		case b >= 0x20 && b < 0x7f:
			emit(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++

		case b == 0x03:
			emit(Event{Type: EventKey, Key: KeyCtrlC})
			i++

		case b == '\r' || b == '\n':
			emit(Event{Type: EventKey, Key: KeyEnter})
			i++

		case b == 0x1b:
			if i+1 >= n {
				return i // Wait for more data or poll timeout
			}
			consumed := escapeLength(data[i:])
			if consumed == 0 {
				return i
			}
			emit(Event{Type: EventKey, Key: KeyOther})
			i += consumed

		case b >= 0x80:
			if !utf8.FullRune(data[i:]) {
				return i
			}
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError {
				emit(Event{Type: EventKey, Key: KeyOther})
			} else {
				emit(Event{Type: EventKey, Key: KeyRune, Rune: r})
			}
			i += size

		default:
			emit(Event{Type: EventKey, Key: KeyOther})
			i++
		}
	}
	return i
}

// escapeLength returns the length of the escape sequence at data[0], or 0 if incomplete
func escapeLength(data []byte) int {
	switch data[1] {
	case '[':
		// CSI: parameters then a final byte in 0x40..0x7e
		for j := 2; j < len(data); j++ {
			if data[j] >= 0x40 && data[j] <= 0x7e {
				return j + 1
			}
		}
		return 0
	case 'O':
		// SS3: one final byte
		if len(data) < 3 {
			return 0
		}
		return 3
	default:
		// Alt+key
		return 2
	}
}
