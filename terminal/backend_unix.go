//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/lixenwraith/weathr/parameter"
)

// ttyBackend puts stdin in raw mode and writes to stdout
type ttyBackend struct {
	in, out *os.File
	saved   *term.State
	winch   chan os.Signal
}

func newBackend() Backend {
	return &ttyBackend{in: os.Stdin, out: os.Stdout}
}

func (b *ttyBackend) Init() error {
	fd := int(b.in.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal")
	}
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	b.saved = saved
	b.winch = make(chan os.Signal, 1)
	signal.Notify(b.winch, syscall.SIGWINCH)
	return nil
}

func (b *ttyBackend) Fini() {
	if b.winch != nil {
		signal.Stop(b.winch)
	}
	if b.saved != nil {
		_ = term.Restore(int(b.in.Fd()), b.saved)
		b.saved = nil
	}
}

func (b *ttyBackend) Size() (int, int) {
	w, h, err := term.GetSize(int(b.out.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return parameter.DefaultGridWidth, parameter.DefaultGridHeight
	}
	return w, h
}

func (b *ttyBackend) Output() io.Writer { return b.out }

func (b *ttyBackend) Resized() <-chan os.Signal { return b.winch }

func (b *ttyBackend) Read(p []byte, timeout time.Duration) (int, error) {
	fd := int(b.in.Fd())
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}

	ready, err := unix.Poll(fds, int(timeout/time.Millisecond))
	switch {
	case errors.Is(err, unix.EINTR):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("poll stdin: %w", err)
	case ready == 0:
		return 0, nil
	}

	n, err := unix.Read(fd, p)
	switch {
	case errors.Is(err, unix.EINTR), errors.Is(err, unix.EAGAIN):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("read stdin: %w", err)
	case n == 0:
		return 0, io.EOF
	}
	return n, nil
}

// resetTerminalMode restores cooked mode on the controlling tty after a crash
func resetTerminalMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return
	}
	t.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Iflag |= unix.ICRNL
	_ = unix.IoctlSetTermios(fd, ioctlSetTermios, t)
}
