// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var statusColors = map[string]*color.Color{
	"pending":     color.New(color.FgYellow),
	"in_progress": color.New(color.FgBlue),
	"completed":   color.New(color.FgCyan),
	"in_review":   color.New(color.FgMagenta),
	"approved":    color.New(color.FgGreen),
	"rejected":    color.New(color.FgRed),
	"scheduled":   color.New(color.FgYellow),
}

// colorStatus pads status to width and colours it.
func colorStatus(status string, width int) string {
	padded := fmt.Sprintf("%-*s", width, status)
	if c, ok := statusColors[status]; ok {
		return c.Sprint(padded)
	}
	return padded
}

func success(out io.Writer, format string, args ...any) {
	fmt.Fprintf(out, "%s %s\n", color.New(color.FgGreen).Sprint("✓"), fmt.Sprintf(format, args...))
}

func orNone(s string) string {
	if s == "" {
		return "(unassigned)"
	}
	return s
}

const rule = "────────────────────────────────────────────────────────────────"
