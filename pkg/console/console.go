// Package console prints coloured status lines for palm-dbt commands.
//
// Colours are only emitted when the writer is a terminal that supports them.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Console writes styled lines to a writer.
type Console struct {
	w       io.Writer
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

// New creates a Console for w, detecting its colour support.
func New(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)

	return &Console{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Info prints an unstyled line.
func (c *Console) Info(format string, args ...any) {
	_, _ = fmt.Fprintln(c.w, fmt.Sprintf(format, args...))
}

// Success prints a green line.
func (c *Console) Success(format string, args ...any) {
	c.print(c.success, format, args...)
}

// Warn prints a yellow line.
func (c *Console) Warn(format string, args ...any) {
	c.print(c.warning, format, args...)
}

// Error prints a red line.
func (c *Console) Error(format string, args ...any) {
	c.print(c.failure, format, args...)
}

// Result prints msg in green when success is set and in red otherwise.
func (c *Console) Result(success bool, msg string) {
	if success {
		c.Success("%s", msg)
		return
	}

	c.Error("%s", msg)
}

func (c *Console) print(style lipgloss.Style, format string, args ...any) {
	_, _ = fmt.Fprintln(c.w, style.Render(fmt.Sprintf(format, args...)))
}
