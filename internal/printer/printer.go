// Package printer renders the output of the parwork demo commands.
package printer

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func init() {
	// Keep color output on when piped; NO_COLOR still disables it.
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	cyan  = color.New(color.FgCyan, color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed, color.Bold)
)

// Section prints a cyan section header.
func Section(name string) {
	cyan.Printf("== %s ==\n", name)
}

// Info prints a plain message.
func Info(format string, a ...any) {
	fmt.Printf(format, a...)
}

// Success prints a green message with a checkmark prefix.
func Success(format string, a ...any) {
	green.Printf("✓ "+format, a...)
}

// Fail prints a red message with a cross prefix to stderr.
func Fail(format string, a ...any) {
	red.Fprintf(os.Stderr, "✗ "+format, a...)
}
