package ui

import (
	"os"

	"golang.org/x/term"
)

const (
	ColorReset  = "\033[0m"
	ColorGray   = "\033[90m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[91m"
	ColorGreen  = "\033[92m"
	ColorYellow = "\033[93m"
)

// ColorsEnabled reports whether stdout is a terminal. Piped output (CI
// gates, report files) always gets the plain rendering.
func ColorsEnabled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
