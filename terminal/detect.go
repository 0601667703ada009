package terminal

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// DetectColorMode determines stdout color capability from tty state and environment
func DetectColorMode() ColorMode {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return detectColorMode(os.Getenv, tty)
}

func detectColorMode(getenv func(string) string, tty bool) ColorMode {
	// https://no-color.org: any non-empty value disables color
	if getenv("NO_COLOR") != "" {
		return ColorModeNone
	}
	if !tty {
		return ColorModeNone
	}

	term := strings.ToLower(getenv("TERM"))
	if term == "dumb" {
		return ColorModeNone
	}

	colorterm := getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if getenv("KITTY_WINDOW_ID") != "" ||
		getenv("KONSOLE_VERSION") != "" ||
		getenv("ITERM_SESSION_ID") != "" ||
		getenv("ALACRITTY_WINDOW_ID") != "" ||
		getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}
