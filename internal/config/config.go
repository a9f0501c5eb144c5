// Package config loads the settings for the arggpt command.
//
// Values are resolved in order: built-in defaults, an optional YAML file, a
// .env file in the working directory and finally the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/casualjim/arggpt/conversation"
	"github.com/casualjim/arggpt/pkg/slogx"
	"github.com/casualjim/arggpt/provider/compat"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider kinds.
const (
	ProviderOpenAI = "openai"
	ProviderCompat = "compat"
	ProviderGroq   = "groq"
)

// DefaultSubject is the NATS subject events are published on when none is configured.
const DefaultSubject = "arggpt.events"

// Config is the complete configuration.
type Config struct {
	Provider          ProviderConfig `yaml:"provider"`
	Model             string         `yaml:"model"`
	MaxTokens         int            `yaml:"max_tokens"`
	MaxTurns          int            `yaml:"max_turns"`
	ValidateArguments bool           `yaml:"validate_arguments"`
	Summarize         bool           `yaml:"summarize"`
	Log               LogConfig      `yaml:"log"`
	NATS              NATSConfig     `yaml:"nats"`
}

// ProviderConfig selects the chat completion backend.
type ProviderConfig struct {
	Kind    string            `yaml:"kind"`
	APIKey  string            `yaml:"api_key"`
	BaseURL string            `yaml:"base_url"`
	Headers map[string]string `yaml:"headers"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NATSConfig enables event publishing when URL is set.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// Enabled reports whether events should be published to NATS.
func (n NATSConfig) Enabled() bool {
	return n.URL != ""
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Kind: ProviderOpenAI,
		},
		Model:     conversation.DefaultModel,
		MaxTokens: conversation.DefaultMaxTokens,
		MaxTurns:  conversation.DefaultMaxTurns,
		Summarize: true,
		Log: LogConfig{
			Level:  "info",
			Format: string(slogx.FormatConsole),
		},
		NATS: NATSConfig{
			Subject: DefaultSubject,
		},
	}
}

// Load builds the configuration. An empty path skips the YAML file; a path that
// doesn't exist is an error. Overrides are applied last, before validation.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a number", key, v))
			return
		}
		*dst = n
	}

	str("ARGGPT_PROVIDER", &c.Provider.Kind)
	c.Provider.Kind = strings.ToLower(c.Provider.Kind)
	switch c.Provider.Kind {
	case ProviderGroq:
		str("GROQ_API_KEY", &c.Provider.APIKey)
	case ProviderOpenAI:
		str("OPENAI_API_KEY", &c.Provider.APIKey)
	}
	str("ARGGPT_API_KEY", &c.Provider.APIKey)
	str("ARGGPT_BASE_URL", &c.Provider.BaseURL)
	str("ARGGPT_MODEL", &c.Model)
	num("ARGGPT_MAX_TOKENS", &c.MaxTokens)
	num("ARGGPT_MAX_TURNS", &c.MaxTurns)
	str("ARGGPT_LOG_LEVEL", &c.Log.Level)
	str("ARGGPT_LOG_FORMAT", &c.Log.Format)
	str("NATS_URL", &c.NATS.URL)
	str("ARGGPT_NATS_SUBJECT", &c.NATS.Subject)

	if c.Provider.Kind == ProviderGroq && c.Provider.BaseURL == "" {
		c.Provider.BaseURL = compat.GroqBaseURL
	}
	return errors.Join(errs...)
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Provider.Kind {
	case ProviderOpenAI, ProviderGroq:
		if c.Provider.APIKey == "" {
			errs = append(errs, fmt.Errorf("an api key is required for the %s provider", c.Provider.Kind))
		}
	case ProviderCompat:
		if c.Provider.BaseURL == "" {
			errs = append(errs, errors.New("a base url is required for the compat provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider.Kind))
	}

	if strings.TrimSpace(c.Model) == "" {
		errs = append(errs, errors.New("model is required"))
	}
	if c.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("max tokens can't be negative, got %d", c.MaxTokens))
	}
	if c.MaxTurns < 1 {
		errs = append(errs, fmt.Errorf("max turns must be positive, got %d", c.MaxTurns))
	}
	if _, err := slogx.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch slogx.Format(c.Log.Format) {
	case slogx.FormatConsole, slogx.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if c.NATS.Enabled() && c.NATS.Subject == "" {
		errs = append(errs, errors.New("a nats subject is required when nats is enabled"))
	}

	return errors.Join(errs...)
}
