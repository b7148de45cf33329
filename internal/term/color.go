// Package term styles CLI output when it goes to a terminal.
package term

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// =============================================================================
// Color support detection
// =============================================================================

// colorLevel caches the detected color support: 0=none, 1=basic(16), 256=256colors, 16777216=truecolor
var (
	colorLevelOnce sync.Once
	colorLevelVal  int
)

// Env abstracts the process environment for detection.
type Env struct {
	Lookup func(string) (string, bool)
	IsTTY  func(fd uintptr) bool
}

// OSEnv reads the real environment and file descriptors.
var OSEnv = Env{
	Lookup: os.LookupEnv,
	IsTTY: func(fd uintptr) bool {
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	},
}

// DetectColorLevel reports the color support of the stream with descriptor fd.
func DetectColorLevel(env Env, fd uintptr) int {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := env.Lookup("NO_COLOR"); ok {
		return 0
	}

	// Not a terminal
	if !env.IsTTY(fd) {
		return 0
	}

	term, _ := env.Lookup("TERM")
	if term == "dumb" {
		return 0
	}

	// Truecolor detection
	colorTerm, _ := env.Lookup("COLORTERM")
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return 16777216
	}

	// 256-color detection
	if strings.Contains(term, "256color") {
		return 256
	}

	// Basic color support
	return 1
}

func stdoutColorLevel() int {
	colorLevelOnce.Do(func() {
		colorLevelVal = DetectColorLevel(OSEnv, os.Stdout.Fd())
	})
	return colorLevelVal
}

// =============================================================================
// ANSI escape code helpers
// =============================================================================

// Styler wraps strings in ANSI escapes when enabled.
type Styler struct {
	enabled bool
}

// ForStdout returns a Styler enabled when stdout supports color.
func ForStdout() Styler {
	return Styler{enabled: stdoutColorLevel() > 0}
}

// For returns a Styler for w: enabled only when w is a color terminal.
func For(w io.Writer, env Env) Styler {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return Styler{}
	}
	return Styler{enabled: DetectColorLevel(env, f.Fd()) > 0}
}

func NewStyler(enabled bool) Styler { return Styler{enabled: enabled} }

func (s Styler) Enabled() bool { return s.enabled }

func (s Styler) wrap(code, resetCode, text string) string {
	if !s.enabled {
		return text
	}
	return code + text + resetCode
}

func (s Styler) fg(colorCode int, text string) string {
	return s.wrap(fmt.Sprintf("\033[%dm", colorCode), "\033[39m", text)
}

func (s Styler) Bold(text string) string  { return s.wrap("\033[1m", "\033[22m", text) }
func (s Styler) Dim(text string) string   { return s.wrap("\033[2m", "\033[22m", text) }
func (s Styler) Red(text string) string   { return s.fg(31, text) }
func (s Styler) Green(text string) string { return s.fg(32, text) }
func (s Styler) Cyan(text string) string  { return s.fg(36, text) }
