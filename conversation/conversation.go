// Package conversation drives a function calling exchange with a model until it
// stops asking for tools, then asks it to summarize the result.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/casualjim/arggpt/events"
	"github.com/casualjim/arggpt/interpreter"
	"github.com/casualjim/arggpt/messages"
	"github.com/casualjim/arggpt/pkg/slogx"
	"github.com/casualjim/arggpt/provider"
	"github.com/casualjim/arggpt/tool"
	"github.com/fogfish/opts"
)

const (
	DefaultModel     = "gpt-3.5-turbo-1106"
	DefaultMaxTokens = 500
	DefaultMaxTurns  = 10
)

var (
	ErrMaxTurns      = errors.New("max turns exceeded")
	ErrEmptyResponse = errors.New("provider returned no choices")
)

// Functions is the set of functions offered to the model. *tool.Registry implements it.
type Functions interface {
	interpreter.Lookup
	Tools() ([]tool.Tool, error)
}

type Conversation struct {
	provider  provider.Provider
	functions Functions
	interp    *interpreter.Interpreter

	model     string
	maxTokens int
	maxTurns  int
	hook      events.Hook
	logger    *slog.Logger
	validate  bool
	noSummary bool
}

type Option = opts.Option[Conversation]

var (
	WithModel     = opts.ForName[Conversation, string]("model")
	WithMaxTokens = opts.ForName[Conversation, int]("maxTokens")
	WithMaxTurns  = opts.ForName[Conversation, int]("maxTurns")
	WithHook      = opts.ForName[Conversation, events.Hook]("hook")
	WithLogger    = opts.ForName[Conversation, *slog.Logger]("logger")
)

// WithArgumentValidation validates tool call arguments against the parameter schema.
func WithArgumentValidation() Option {
	return opts.Type[Conversation](func(c *Conversation) error {
		c.validate = true
		return nil
	})
}

// WithoutSummary makes Run return the last assistant reply instead of asking for a summary.
func WithoutSummary() Option {
	return opts.Type[Conversation](func(c *Conversation) error {
		c.noSummary = true
		return nil
	})
}

func New(p provider.Provider, functions Functions, options ...Option) (*Conversation, error) {
	c := &Conversation{
		provider:  p,
		functions: functions,
		model:     DefaultModel,
		maxTokens: DefaultMaxTokens,
		maxTurns:  DefaultMaxTurns,
	}
	if err := opts.Apply(c, options); err != nil {
		return nil, err
	}
	if err := c.validateConfig(); err != nil {
		return nil, err
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	interpOpts := []interpreter.Option{interpreter.WithLogger(c.logger)}
	c.logger = c.logger.With(slogx.LoggerName("conversation"))
	if c.hook != nil {
		interpOpts = append(interpOpts, interpreter.WithHook(c.hook))
	}
	if c.validate {
		interpOpts = append(interpOpts, interpreter.WithArgumentValidation())
	}
	interp, err := interpreter.New(functions, interpOpts...)
	if err != nil {
		return nil, err
	}
	c.interp = interp
	return c, nil
}

func (c *Conversation) validateConfig() error {
	var errs []error
	if c.provider == nil {
		errs = append(errs, errors.New("provider is required"))
	}
	if c.functions == nil {
		errs = append(errs, errors.New("functions are required"))
	}
	if strings.TrimSpace(c.model) == "" {
		errs = append(errs, errors.New("model is required"))
	}
	if c.maxTurns < 1 {
		errs = append(errs, fmt.Errorf("max turns must be positive, got %d", c.maxTurns))
	}
	if c.maxTokens < 0 {
		errs = append(errs, fmt.Errorf("max tokens can't be negative, got %d", c.maxTokens))
	}
	return errors.Join(errs...)
}

// Result is the outcome of a conversation.
type Result struct {
	// Content is the summary, or the last assistant reply when summaries are disabled.
	Content string
	// Messages is the whole conversation, the summary exchange included.
	Messages messages.Thread
	// Turns counts the requests made with tools, the summary request excluded.
	Turns int
}

// Run seeds a conversation with prompt and exchanges messages with the model
// until its finish reason is terminal.
func (c *Conversation) Run(ctx context.Context, prompt string) (Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return Result{}, errors.New("prompt is required")
	}

	tools, err := c.functions.Tools()
	if err != nil {
		return Result{}, fmt.Errorf("failed to assemble tools: %w", err)
	}

	result := Result{Messages: Seed(prompt)}
	c.logger.InfoContext(ctx, "starting conversation", slog.Int("tools", len(tools)), slog.String("model", c.model))

	for {
		if result.Turns >= c.maxTurns {
			return result, fmt.Errorf("%w: %d", ErrMaxTurns, c.maxTurns)
		}
		result.Turns++

		choice, err := c.turn(ctx, &result, tools)
		if err != nil {
			return result, fmt.Errorf("turn %d: %w", result.Turns, err)
		}
		if choice.FinishReason.Terminal() {
			result.Content = choice.Message.Content
			c.logger.InfoContext(ctx, "conversation finished",
				slog.Int("turns", result.Turns),
				slog.String("finish_reason", string(choice.FinishReason)),
			)
			break
		}
	}

	if c.noSummary {
		return result, nil
	}

	result.Messages = append(result.Messages, Summarize()...)
	choice, err := c.turn(ctx, &result, nil)
	if err != nil {
		return result, fmt.Errorf("summary: %w", err)
	}
	result.Content = choice.Message.Content
	c.logger.DebugContext(ctx, "summarized conversation", slog.String("content", result.Content))
	return result, nil
}

func (c *Conversation) turn(ctx context.Context, result *Result, tools []tool.Tool) (provider.Choice, error) {
	if err := ctx.Err(); err != nil {
		return provider.Choice{}, err
	}

	resp, err := c.provider.ChatCompletion(ctx, provider.Request{
		Model:     c.model,
		Messages:  result.Messages,
		Tools:     tools,
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return provider.Choice{}, err
	}
	choice, ok := resp.First()
	if !ok {
		return provider.Choice{}, ErrEmptyResponse
	}

	result.Messages = append(result.Messages, c.interp.Interpret(ctx, resp)...)
	return choice, nil
}
