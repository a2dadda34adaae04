package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// stdoutColors reports whether stdout takes colour. termenv honours NO_COLOR
// and CLICOLOR on top of the tty check.
var stdoutColors = sync.OnceValue(func() bool {
	return termenv.EnvColorProfile() != termenv.Ascii
})

func C(color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || stdoutColors() {
		return color + s + reset
	}
	return s
}

// Hex turns "#rrggbb" into a 24-bit foreground escape. Bad input yields "".
func Hex(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ""
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", v>>16&0xff, v>>8&0xff, v&0xff)
}

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, C(fgGreen, symCheck+" "+msg)) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, C(fgRed, symCross+" "+msg)) }
func Warn(w io.Writer, msg string) { fmt.Fprintln(w, C(fgYellow, "! "+msg)) }
func Hint(w io.Writer, msg string) { fmt.Fprintln(w, C(fgGray, msg)) }
