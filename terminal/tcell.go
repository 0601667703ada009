package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/weathr/parameter"
)

// tcellScreen adapts a tcell.Screen to the Screen interface
type tcellScreen struct {
	screen tcell.Screen
	mode   ColorMode

	eventCh  chan Event
	stopCh   chan struct{}
	doneCh   chan struct{}
	finiOnce sync.Once
	started  bool
}

// NewTcellScreen creates a Screen backed by the process tty through tcell
func NewTcellScreen(mode ColorMode) (Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create tcell screen: %w", err)
	}
	return NewTcellScreenFrom(s, mode), nil
}

// NewTcellScreenFrom wraps an existing tcell screen, such as a simulation screen
func NewTcellScreenFrom(s tcell.Screen, mode ColorMode) Screen {
	return &tcellScreen{
		screen:  s,
		mode:    mode,
		eventCh: make(chan Event, parameter.EventQueueSize),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (t *tcellScreen) Init() error {
	if t.started {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init tcell screen: %w", err)
	}
	t.screen.HideCursor()
	t.screen.Clear()
	t.started = true
	go t.pollLoop()
	return nil
}

func (t *tcellScreen) Fini() {
	if !t.started {
		return
	}
	t.finiOnce.Do(func() {
		close(t.stopCh)
		// Fini unblocks PollEvent with a nil event
		t.screen.Fini()
		<-t.doneCh
	})
}

func (t *tcellScreen) Size() (int, int) {
	return t.screen.Size()
}

func (t *tcellScreen) Events() <-chan Event {
	return t.eventCh
}

func (t *tcellScreen) Write(writes []CellWrite) error {
	for _, cw := range writes {
		c := cw.Cell
		if !t.mode.Enabled() {
			c = c.Plain()
		}
		r := c.Rune
		if r == 0 {
			r = ' '
		}
		t.screen.SetContent(cw.X, cw.Y, r, nil, t.style(c))
	}
	if len(writes) > 0 {
		t.screen.Show()
	}
	return nil
}

func (t *tcellScreen) Clear() {
	t.screen.Clear()
	t.screen.Sync()
}

func (t *tcellScreen) ColorMode() ColorMode {
	return t.mode
}

func (t *tcellScreen) style(c Cell) tcell.Style {
	st := tcell.StyleDefault
	if c.Attrs&AttrFg != 0 {
		st = st.Foreground(t.color(c.Fg))
	}
	if c.Attrs&AttrBg != 0 {
		st = st.Background(t.color(c.Bg))
	}
	if c.Attrs&AttrBold != 0 {
		st = st.Bold(true)
	}
	if c.Attrs&AttrDim != 0 {
		st = st.Dim(true)
	}
	return st
}

func (t *tcellScreen) color(c RGB) tcell.Color {
	if t.mode == ColorMode256 {
		return tcell.PaletteColor(int(RGBTo256(c)))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (t *tcellScreen) pollLoop() {
	defer close(t.doneCh)

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			sendEvent(t.eventCh, Event{Type: EventClosed})
			return
		}
		select {
		case <-t.stopCh:
			return
		default:
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			sendEvent(t.eventCh, translateKey(e))
		case *tcell.EventResize:
			w, h := e.Size()
			sendEvent(t.eventCh, Event{Type: EventResize, Width: w, Height: h})
		}
	}
}

func translateKey(e *tcell.EventKey) Event {
	switch e.Key() {
	case tcell.KeyRune:
		return Event{Type: EventKey, Key: KeyRune, Rune: e.Rune()}
	case tcell.KeyEscape:
		return Event{Type: EventKey, Key: KeyEscape}
	case tcell.KeyCtrlC:
		return Event{Type: EventKey, Key: KeyCtrlC}
	case tcell.KeyEnter:
		return Event{Type: EventKey, Key: KeyEnter}
	default:
		return Event{Type: EventKey, Key: KeyOther}
	}
}
