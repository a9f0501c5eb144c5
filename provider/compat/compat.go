// Package compat talks to OpenAI compatible chat completion endpoints (Groq,
// llama.cpp, vLLM, Ollama) with plain HTTP. The request body is the
// provider.Request as is, so tool envelopes keep their "returns" schema.
package compat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/casualjim/arggpt/provider"
	"github.com/fogfish/opts"
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// GroqBaseURL is the OpenAI compatible endpoint of Groq.
const GroqBaseURL = "https://api.groq.com/openai/v1"

const maxErrorBody = 4096

type Provider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Headers map[string]string
}

type Option = opts.Option[Provider]

var (
	WithBaseURL    = opts.ForName[Provider, string]("BaseURL")
	WithAPIKey     = opts.ForName[Provider, string]("APIKey")
	WithHTTPClient = opts.ForName[Provider, *http.Client]("Client")
)

// WithHeader adds a header to every request.
func WithHeader(name, value string) Option {
	return opts.Type[Provider](func(p *Provider) error {
		if p.Headers == nil {
			p.Headers = make(map[string]string)
		}
		p.Headers[name] = value
		return nil
	})
}

var _ provider.Provider = (*Provider)(nil)

func New(options ...Option) (*Provider, error) {
	p := &Provider{}
	if err := opts.Apply(p, options); err != nil {
		return nil, err
	}
	p.BaseURL = strings.TrimRight(strings.TrimSpace(p.BaseURL), "/")
	if p.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if p.Client == nil {
		p.Client = http.DefaultClient
	}
	return p, nil
}

func (p *Provider) ChatCompletion(ctx context.Context, req provider.Request) (*provider.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if p.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	}
	for k, v := range p.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, data)
	}
	return provider.ParseResponse(data)
}

func statusError(code int, body []byte) error {
	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
		return fmt.Errorf("chat completion failed with status %d: %s", code, msg.String())
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return fmt.Errorf("chat completion failed with status %d: %s", code, bytes.TrimSpace(body))
}
