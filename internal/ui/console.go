package ui

import (
	"fmt"
	"os"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31;1m"
	ansiGreen = "\033[32m"
	ansiBlue  = "\033[34m"
)

// Console writes user-facing status lines, colored only when stderr is a
// terminal.
type Console struct {
	useColors bool
}

func NewConsole() *Console {
	stat, _ := os.Stderr.Stat()
	return &Console{
		useColors: (stat.Mode() & os.ModeCharDevice) != 0,
	}
}

func (c *Console) colorize(color, message string) string {
	if !c.useColors {
		return message
	}
	return color + message + ansiReset
}

func (c *Console) PrintError(message string) {
	fmt.Fprintln(os.Stderr, c.colorize(ansiRed, "Error: "+message))
}

func (c *Console) PrintSuccess(message string) {
	fmt.Println(c.colorize(ansiGreen, message))
}

func (c *Console) PrintInfo(message string) {
	fmt.Println(c.colorize(ansiBlue, message))
}

// FormatErrorMessage joins context, cause, and suggestion into the multi-line
// form used for user-facing failures.
func (c *Console) FormatErrorMessage(context, cause, suggestion string) string {
	parts := make([]string, 0, 3)
	if context != "" {
		parts = append(parts, context)
	}
	if cause != "" {
		parts = append(parts, "Cause: "+cause)
	}
	if suggestion != "" {
		parts = append(parts, "Suggestion: "+suggestion)
	}
	return strings.Join(parts, "\n")
}
