// Package output provides terminal output formatting utilities for the relog
// CLI. This package is designed to have minimal dependencies to avoid import
// cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// Infof prints an informational message to w with a cyan INFO prefix.
func Infof(w io.Writer, format string, args ...any) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", cyan("INFO:"), fmt.Sprintf(format, args...))
}

// Warnf prints a warning message to w with a yellow WARNING prefix.
func Warnf(w io.Writer, format string, args ...any) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", yellow("WARNING:"), fmt.Sprintf(format, args...))
}

// Errorf prints an error message to w with a red ERROR prefix.
func Errorf(w io.Writer, format string, args ...any) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", red("ERROR:"), fmt.Sprintf(format, args...))
}
