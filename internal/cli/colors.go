// Package cli provides shared terminal output utilities.
package cli

import (
	"os"

	"golang.org/x/term"
)

// ANSI style codes.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

// colorsEnabled caches whether colors should be used.
var colorsEnabled *bool

// ColorsEnabled returns true if stdout is a terminal and NO_COLOR is
// not set.
func ColorsEnabled() bool {
	if colorsEnabled != nil {
		return *colorsEnabled
	}

	enabled := term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""
	colorsEnabled = &enabled
	return enabled
}

// ForceColors enables or disables colors regardless of terminal detection.
func ForceColors(enabled bool) {
	colorsEnabled = &enabled
}

// Styled wraps text with a style code and reset.
func Styled(text, code string) string {
	if !ColorsEnabled() {
		return text
	}
	return code + text + Reset
}

func Bolden(text string) string {
	return Styled(text, Bold)
}

func Dimmed(text string) string {
	return Styled(text, Dim)
}

func GreenText(text string) string {
	return Styled(text, Green)
}

func CyanText(text string) string {
	return Styled(text, Cyan)
}

func BoldCyan(text string) string {
	return Styled(text, Bold+Cyan)
}
