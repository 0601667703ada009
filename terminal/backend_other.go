//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/lixenwraith/weathr/parameter"
)

var errANSIUnsupported = errors.New("ansi backend requires a unix tty")

type unsupportedBackend struct{}

func newBackend() Backend { return unsupportedBackend{} }

func (unsupportedBackend) Init() error { return errANSIUnsupported }
func (unsupportedBackend) Fini()       {}
func (unsupportedBackend) Size() (int, int) {
	return parameter.DefaultGridWidth, parameter.DefaultGridHeight
}
func (unsupportedBackend) Output() io.Writer                       { return os.Stdout }
func (unsupportedBackend) Read([]byte, time.Duration) (int, error) { return 0, errANSIUnsupported }
func (unsupportedBackend) Resized() <-chan os.Signal               { return nil }

func resetTerminalMode() {}
