package interpreter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/casualjim/arggpt/events"
	"github.com/casualjim/arggpt/messages"
	"github.com/casualjim/arggpt/pkg/slogx"
	"github.com/casualjim/arggpt/pkg/uuidx"
	"github.com/casualjim/arggpt/provider"
	"github.com/casualjim/arggpt/tool"
	"github.com/fogfish/opts"
	"github.com/google/uuid"
)

// SuccessMessage is the content of the tool message for a call without a result.
const SuccessMessage = "Function executed successfully"

// Lookup resolves a tool call to the definition registered under its name.
// *tool.Registry implements it.
type Lookup interface {
	ByName(name string) (tool.Definition, bool)
}

type Interpreter struct {
	lookup   Lookup
	hook     events.Hook
	logger   *slog.Logger
	validate bool
}

type Option = opts.Option[Interpreter]

var (
	// WithHook sets the hook that receives lifecycle events.
	WithHook = opts.ForName[Interpreter, events.Hook]("hook")
	// WithLogger sets the logger. slog.Default is used otherwise.
	WithLogger = opts.ForName[Interpreter, *slog.Logger]("logger")
)

// WithArgumentValidation checks parsed arguments against the parameter schema
// of the function before it runs. A violation is reported as invalid arguments.
func WithArgumentValidation() Option {
	return opts.Type[Interpreter](func(i *Interpreter) error {
		i.validate = true
		return nil
	})
}

func New(lookup Lookup, options ...Option) (*Interpreter, error) {
	if lookup == nil {
		return nil, errors.New("lookup is required")
	}

	i := &Interpreter{lookup: lookup}
	if err := opts.Apply(i, options); err != nil {
		return nil, err
	}
	if i.hook == nil {
		i.hook = events.Nop{}
	}
	if i.logger == nil {
		i.logger = slog.Default()
	}
	i.logger = i.logger.With(slogx.LoggerName("interpreter"))
	return i, nil
}

// Interpret returns the assistant message of the first choice followed by one
// tool message per tool call. A nil response or one without choices yields no
// messages.
func (i *Interpreter) Interpret(ctx context.Context, resp *provider.Response) (result []messages.Message) {
	if ctx == nil {
		ctx = context.Background()
	}
	runID := uuidx.New()

	defer func() {
		if r := recover(); r != nil {
			err := tool.NewError(tool.ErrInterpretation, "", fmt.Errorf("%v", r))
			i.logger.ErrorContext(ctx, "recovered from panic while interpreting response",
				slog.String("run_id", runID.String()),
				slogx.Error(err),
				slog.String("stack", string(debug.Stack())),
			)
			i.notify(func() {
				i.hook.OnError(ctx, events.Error{RunID: runID, Err: err, Timestamp: events.Now()})
			})
			msg := messages.ToolMessage{Content: err.Error()}
			if choice, ok := resp.First(); ok && len(choice.Message.ToolCalls) > 0 {
				msg.ToolCallID = choice.Message.ToolCalls[0].ID
				msg.Name = choice.Message.ToolCalls[0].Function.Name
			}
			result = []messages.Message{msg}
		}
	}()

	choice, ok := resp.First()
	if !ok {
		i.logger.WarnContext(ctx, "response has no choices", slog.String("run_id", runID.String()))
		return []messages.Message{}
	}
	i.logger.DebugContext(ctx, "interpreting response",
		slog.String("run_id", runID.String()),
		slog.Int("choices", len(resp.Choices)),
		slog.Int("tool_calls", len(choice.Message.ToolCalls)),
	)

	i.hook.OnResponse(ctx, events.Response{
		RunID:        runID,
		ResponseID:   resp.ID,
		Model:        resp.Model,
		FinishReason: string(choice.FinishReason),
		Message:      choice.Message,
		Timestamp:    events.Now(),
	})

	result = make([]messages.Message, 0, len(choice.Message.ToolCalls)+1)
	result = append(result, choice.Message)
	for _, call := range choice.Message.ToolCalls {
		result = append(result, i.dispatch(ctx, runID, call))
	}
	return result
}

func (i *Interpreter) dispatch(ctx context.Context, runID uuid.UUID, call messages.ToolCall) messages.ToolMessage {
	name := call.Function.Name
	i.notify(func() {
		i.hook.OnToolCall(ctx, events.ToolCall{
			RunID:     runID,
			CallID:    call.ID,
			Name:      name,
			Arguments: call.Function.Arguments,
			Timestamp: events.Now(),
		})
	})

	start := time.Now()
	content, err := i.execute(ctx, call)
	ev := events.ToolResult{
		RunID:    runID,
		CallID:   call.ID,
		Name:     name,
		Content:  content,
		Duration: time.Since(start),
	}
	if err != nil {
		content = err.Error()
		ev.Content = content
		ev.Failure = failure(err)
	}
	ev.Timestamp = events.Now()
	i.notify(func() { i.hook.OnToolResult(ctx, ev) })

	return messages.ToolMessage{
		ToolCallID: call.ID,
		Name:       name,
		Content:    content,
	}
}

// execute runs a single call. Panics are contained so the next call still runs.
func (i *Interpreter) execute(ctx context.Context, call messages.ToolCall) (content string, err error) {
	name := call.Function.Name
	defer func() {
		if r := recover(); r != nil {
			content, err = "", tool.NewError(tool.ErrInterpretation, name, fmt.Errorf("%v", r))
		}
	}()

	def, ok := i.lookup.ByName(name)
	if !ok {
		i.logger.WarnContext(ctx, "unknown function", slogx.Tool(name, call.ID))
		return "", tool.NewError(tool.ErrUnknownFunction, name, nil)
	}

	args, err := tool.ParseArguments(call.Function.Arguments)
	if err != nil {
		return "", err
	}
	if i.validate {
		if err := validateArguments(def, call.Function.Arguments); err != nil {
			return "", err
		}
	}

	value, err := def.Call(ctx, args)
	if err != nil {
		return "", err
	}

	text, ok, err := tool.Stringify(value)
	if err != nil {
		return "", tool.NewError(tool.ErrExecution, name, err)
	}
	if !ok {
		return SuccessMessage, nil
	}
	return text, nil
}

// notify calls a hook method. A panicking hook is logged and otherwise ignored.
func (i *Interpreter) notify(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.Error("hook panicked", slog.Any("panic", r))
		}
	}()
	fn()
}

func failure(err error) string {
	if kind, ok := tool.KindOf(err); ok {
		return kind.Error()
	}
	return err.Error()
}
