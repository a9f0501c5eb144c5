package events

import (
	"context"
	"log/slog"

	"github.com/casualjim/arggpt/pkg/slogx"
)

// Hook receives interpretation events. Implementations are called synchronously
// from the interpreter and must not block for long.
type Hook interface {
	OnResponse(context.Context, Response)
	OnToolCall(context.Context, ToolCall)
	OnToolResult(context.Context, ToolResult)
	OnError(context.Context, Error)
}

// Dispatch delivers event to the matching method of hook.
func Dispatch(ctx context.Context, hook Hook, event Event) {
	switch e := event.(type) {
	case Response:
		hook.OnResponse(ctx, e)
	case ToolCall:
		hook.OnToolCall(ctx, e)
	case ToolResult:
		hook.OnToolResult(ctx, e)
	case Error:
		hook.OnError(ctx, e)
	}
}

// Nop ignores every event. Embed it to implement only some of the methods.
type Nop struct{}

func (Nop) OnResponse(context.Context, Response)     {}
func (Nop) OnToolCall(context.Context, ToolCall)     {}
func (Nop) OnToolResult(context.Context, ToolResult) {}
func (Nop) OnError(context.Context, Error)           {}

type multiHook []Hook

// Multi fans events out to every hook in order. Nil hooks are skipped.
func Multi(hooks ...Hook) Hook {
	result := make(multiHook, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			result = append(result, h)
		}
	}
	return result
}

func (m multiHook) OnResponse(ctx context.Context, e Response) {
	for _, h := range m {
		h.OnResponse(ctx, e)
	}
}

func (m multiHook) OnToolCall(ctx context.Context, e ToolCall) {
	for _, h := range m {
		h.OnToolCall(ctx, e)
	}
}

func (m multiHook) OnToolResult(ctx context.Context, e ToolResult) {
	for _, h := range m {
		h.OnToolResult(ctx, e)
	}
}

func (m multiHook) OnError(ctx context.Context, e Error) {
	for _, h := range m {
		h.OnError(ctx, e)
	}
}

type slogHook struct {
	logger *slog.Logger
}

// Slog logs every event. A nil logger uses slog.Default.
func Slog(logger *slog.Logger) Hook {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogHook{logger: logger.With(slogx.LoggerName("events"))}
}

func (s *slogHook) OnResponse(ctx context.Context, e Response) {
	s.logger.DebugContext(ctx, "received response",
		slog.String("run_id", e.RunID.String()),
		slog.String("model", e.Model),
		slog.String("finish_reason", e.FinishReason),
		slog.Int("tool_calls", len(e.Message.ToolCalls)),
	)
}

func (s *slogHook) OnToolCall(ctx context.Context, e ToolCall) {
	s.logger.DebugContext(ctx, "dispatching tool call",
		slog.String("run_id", e.RunID.String()),
		slogx.Tool(e.Name, e.CallID),
		slog.String("arguments", e.Arguments),
	)
}

func (s *slogHook) OnToolResult(ctx context.Context, e ToolResult) {
	if !e.Succeeded() {
		s.logger.WarnContext(ctx, "tool call failed",
			slog.String("run_id", e.RunID.String()),
			slogx.Tool(e.Name, e.CallID),
			slog.String("failure", e.Failure),
			slog.String("content", e.Content),
		)
		return
	}
	s.logger.DebugContext(ctx, "tool call succeeded",
		slog.String("run_id", e.RunID.String()),
		slogx.Tool(e.Name, e.CallID),
		slog.Duration("duration", e.Duration),
	)
}

func (s *slogHook) OnError(ctx context.Context, e Error) {
	s.logger.ErrorContext(ctx, "interpretation failed",
		slog.String("run_id", e.RunID.String()),
		slogx.Error(e.Err),
	)
}

// Recorder keeps every event it receives. It's meant for tests and debugging
// and is not safe for concurrent use.
type Recorder struct {
	Events []Event
}

func (r *Recorder) OnResponse(_ context.Context, e Response)     { r.Events = append(r.Events, e) }
func (r *Recorder) OnToolCall(_ context.Context, e ToolCall)     { r.Events = append(r.Events, e) }
func (r *Recorder) OnToolResult(_ context.Context, e ToolResult) { r.Events = append(r.Events, e) }
func (r *Recorder) OnError(_ context.Context, e Error)           { r.Events = append(r.Events, e) }
