package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/casualjim/arggpt/conversation"
	"github.com/casualjim/arggpt/events"
	"github.com/casualjim/arggpt/internal/broker"
	"github.com/casualjim/arggpt/internal/config"
	"github.com/casualjim/arggpt/internal/msgfmt"
	"github.com/casualjim/arggpt/pkg/natsx"
	"github.com/casualjim/arggpt/pkg/slogx"
	"github.com/casualjim/arggpt/provider"
	"github.com/casualjim/arggpt/provider/compat"
	"github.com/casualjim/arggpt/provider/openai"
	"github.com/fatih/color"
	"github.com/k0kubun/pp/v3"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go/option"
	"github.com/spf13/cobra"
)

const flushTimeout = 2 * time.Second

// app holds what the conversation commands share.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	conv     *conversation.Conversation
	renderer *msgfmt.Renderer
	dumper   *pp.PrettyPrinter
	closers  []func()
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.Load(o.cfgFile, func(cfg *config.Config) {
		if o.model != "" {
			cfg.Model = o.model
		}
		if o.provider != "" {
			cfg.Provider.Kind = o.provider
		}
	})
}

func (o *rootOptions) newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	level, _ := slogx.ParseLevel(cfg.Log.Level)
	if o.debug {
		level = slog.LevelDebug
	}
	logger := slogx.Setup(cmd.ErrOrStderr(), slogx.Format(cfg.Log.Format), level)

	p, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := msgfmt.NewRenderer(100)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, renderer: renderer}
	hooks := []events.Hook{msgfmt.Console(cmd.OutOrStdout())}

	if o.debug {
		a.dumper = pp.New()
		a.dumper.SetOutput(cmd.ErrOrStderr())
		a.dumper.SetColoringEnabled(!color.NoColor)
		hook, closer, err := debugObservers(cmd.Context(), logger, a.dumper)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closer)
		hooks = append(hooks, hook)
	}

	if cfg.NATS.Enabled() {
		hook, closer, err := natsPublisher(cmd.Context(), cfg.NATS, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closer)
		hooks = append(hooks, hook)
	}

	options := []conversation.Option{
		conversation.WithModel(cfg.Model),
		conversation.WithMaxTokens(cfg.MaxTokens),
		conversation.WithMaxTurns(cfg.MaxTurns),
		conversation.WithHook(events.Multi(hooks...)),
		conversation.WithLogger(logger),
	}
	if cfg.ValidateArguments {
		options = append(options, conversation.WithArgumentValidation())
	}
	if !cfg.Summarize {
		options = append(options, conversation.WithoutSummary())
	}

	a.conv, err = conversation.New(p, o.functions, options...)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		c()
	}
}

// answer runs one conversation and prints the rendered answer.
func (a *app) answer(ctx context.Context, w io.Writer, prompt string) error {
	result, err := a.conv.Run(ctx, prompt)
	if a.dumper != nil {
		a.dumper.Println(result.Messages)
	}
	if err != nil {
		if last, ok := result.Messages.LastAssistant(); ok && last.Content != "" {
			fmt.Fprintf(w, "%s: %s\n", color.MagentaString("Last reply"), last.Content)
		}
		return err
	}
	a.logger.Debug("conversation finished", slog.Int("turns", result.Turns), slog.Int("messages", len(result.Messages)))
	fmt.Fprintln(w, a.renderer.Render(result.Content))
	return nil
}

func newProvider(cfg *config.Config) (provider.Provider, error) {
	switch cfg.Provider.Kind {
	case config.ProviderOpenAI:
		opts := []option.RequestOption{option.WithAPIKey(cfg.Provider.APIKey)}
		if cfg.Provider.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.Provider.BaseURL))
		}
		for k, v := range cfg.Provider.Headers {
			opts = append(opts, option.WithHeader(k, v))
		}
		return openai.New(opts...), nil
	case config.ProviderCompat, config.ProviderGroq:
		baseURL := cfg.Provider.BaseURL
		if baseURL == "" && cfg.Provider.Kind == config.ProviderGroq {
			baseURL = compat.GroqBaseURL
		}
		opts := []compat.Option{
			compat.WithBaseURL(baseURL),
			compat.WithAPIKey(cfg.Provider.APIKey),
		}
		for k, v := range cfg.Provider.Headers {
			opts = append(opts, compat.WithHeader(k, v))
		}
		return compat.New(opts...)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider.Kind)
	}
}

func natsPublisher(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger) (events.Hook, func(), error) {
	nc, err := natsx.Connect(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to nats at %s: %w", cfg.URL, err)
	}
	topic := broker.NATS(nc).Topic(ctx, cfg.Subject)
	closer := func() {
		if err := nc.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			logger.Warn("failed to drain nats connection", slogx.Error(err))
		}
	}
	return broker.Publisher(topic, logger), closer, nil
}

// debugObservers fans the events out to the slog and dump hooks through an
// in-process topic, off the interpreter's goroutine. The closer waits for the
// queued events to be written.
func debugObservers(ctx context.Context, logger *slog.Logger, dumper *pp.PrettyPrinter) (events.Hook, func(), error) {
	local := broker.Local()
	topic := local.Topic(ctx, "debug")
	for _, hook := range []events.Hook{events.Slog(logger), &dumpHook{pp: dumper}} {
		if _, err := topic.Subscribe(ctx, hook); err != nil {
			return nil, nil, err
		}
	}

	closer := func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
		defer cancel()
		if err := local.Close(ctx); err != nil {
			logger.Warn("debug events were not all written", slogx.Error(err))
		}
	}
	return broker.Publisher(topic, logger), closer, nil
}

type dumpHook struct {
	mu sync.Mutex
	pp *pp.PrettyPrinter
}

func (d *dumpHook) dump(e events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pp.Println(e)
}

func (d *dumpHook) OnResponse(_ context.Context, e events.Response)     { d.dump(e) }
func (d *dumpHook) OnToolCall(_ context.Context, e events.ToolCall)     { d.dump(e) }
func (d *dumpHook) OnToolResult(_ context.Context, e events.ToolResult) { d.dump(e) }
func (d *dumpHook) OnError(_ context.Context, e events.Error)           { d.dump(e) }
