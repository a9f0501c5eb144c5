package broker

import (
	"context"
	"log/slog"

	"github.com/casualjim/arggpt/events"
	"github.com/casualjim/arggpt/pkg/slogx"
)

type publisher struct {
	topic  Topic
	logger *slog.Logger
}

// Publisher returns a hook that publishes every event to topic. Publish errors
// are logged and never reach the interpreter.
func Publisher(topic Topic, logger *slog.Logger) events.Hook {
	if logger == nil {
		logger = slog.Default()
	}
	return &publisher{topic: topic, logger: logger.With(slogx.LoggerName("broker"))}
}

func (p *publisher) publish(ctx context.Context, event events.Event) {
	if err := p.topic.Publish(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "failed to publish event",
			slog.String("run_id", event.Run().String()),
			slog.String("event", eventType(event)),
			slogx.Error(err),
		)
	}
}

func (p *publisher) OnResponse(ctx context.Context, e events.Response)     { p.publish(ctx, e) }
func (p *publisher) OnToolCall(ctx context.Context, e events.ToolCall)     { p.publish(ctx, e) }
func (p *publisher) OnToolResult(ctx context.Context, e events.ToolResult) { p.publish(ctx, e) }
func (p *publisher) OnError(ctx context.Context, e events.Error)           { p.publish(ctx, e) }

func eventType(event events.Event) string {
	switch event.(type) {
	case events.Response:
		return "response"
	case events.ToolCall:
		return "tool_call"
	case events.ToolResult:
		return "tool_result"
	case events.Error:
		return "error"
	default:
		return "unknown"
	}
}
