package terminal

import (
	"io"
	"os"
	"time"
)

// Backend is the platform raw tty the ANSI screen runs on
type Backend interface {
	Init() error
	Fini()

	Size() (width, height int)
	Output() io.Writer

	// Read waits up to timeout for input into p
	// n == 0 with a nil error means the wait expired; io.EOF means input closed
	Read(p []byte, timeout time.Duration) (n int, err error)

	// Resized receives a value on each window size change between Init and Fini
	Resized() <-chan os.Signal
}
