// Package msgfmt prints conversation progress and answers on a terminal.
package msgfmt

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/casualjim/arggpt/events"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
)

// Console returns a hook that prints tool calls, their results and errors to w.
// Assistant text is printed only when it accompanies tool calls, the answer is
// left to the caller.
func Console(w io.Writer) events.Hook {
	return &console{w: w}
}

type console struct {
	mu sync.Mutex
	w  io.Writer
}

func (c *console) OnResponse(_ context.Context, e events.Response) {
	if e.Message.Content == "" || len(e.Message.ToolCalls) == 0 {
		return
	}
	c.printf("%s: %s\n", color.MagentaString("Assistant"), e.Message.Content)
}

func (c *console) OnToolCall(_ context.Context, e events.ToolCall) {
	args := strings.ReplaceAll(e.Arguments, ": ", "=")
	c.printf("%s%s\n", color.YellowString(e.Name), args)
}

func (c *console) OnToolResult(_ context.Context, e events.ToolResult) {
	if !e.Succeeded() {
		c.printf("  %s %s\n", color.RedString(e.Failure+":"), e.Content)
		return
	}
	c.printf("  %s %s\n", color.GreenString("->"), e.Content)
}

func (c *console) OnError(_ context.Context, e events.Error) {
	c.printf("Error: %v\n", e.Err)
}

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format, args...)
}

// Renderer renders markdown answers for the terminal.
type Renderer struct {
	glam *glamour.TermRenderer
}

// NewRenderer picks a style for the terminal and wraps at width columns, 0
// disables wrapping.
func NewRenderer(width int) (*Renderer, error) {
	glam, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{glam: glam}, nil
}

// Render returns the rendered markdown, or content itself when rendering fails.
func (r *Renderer) Render(content string) string {
	out, err := r.glam.Render(content)
	if err != nil {
		return content
	}
	return out
}
