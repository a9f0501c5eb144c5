package provider

import (
	"context"
	"fmt"

	"github.com/casualjim/arggpt/messages"
	"github.com/casualjim/arggpt/tool"
	json "github.com/goccy/go-json"
)

// Provider sends a chat completion request to a model.
type Provider interface {
	ChatCompletion(context.Context, Request) (*Response, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(context.Context, Request) (*Response, error)

func (f ProviderFunc) ChatCompletion(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

// Request is a chat completion request.
type Request struct {
	Model    string             `json:"model"`
	Messages []messages.Message `json:"messages"`
	// Tools are offered to the model. Leave empty for a plain completion.
	Tools     []tool.Tool `json:"tools,omitempty"`
	MaxTokens int         `json:"max_tokens,omitempty"`
}

// FinishReason explains why the model stopped producing output.
type FinishReason string

const (
	FinishStop          FinishReason = "stop"
	FinishLength        FinishReason = "length"
	FinishMaxTokens     FinishReason = "max_tokens"
	FinishContentFilter FinishReason = "content_filter"
	FinishToolCalls     FinishReason = "tool_calls"
	FinishFunctionCall  FinishReason = "function_call"
)

// Terminal reports whether the conversation should stop asking for more turns.
func (f FinishReason) Terminal() bool {
	switch f {
	case FinishStop, FinishLength, FinishMaxTokens, FinishContentFilter:
		return true
	}
	return false
}

// Response is a chat completion response.
type Response struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Index        int                       `json:"index"`
	Message      messages.AssistantMessage `json:"message"`
	FinishReason FinishReason              `json:"finish_reason"`
}

// First returns the first choice, if any.
func (r *Response) First() (Choice, bool) {
	if r == nil || len(r.Choices) == 0 {
		return Choice{}, false
	}
	return r.Choices[0], true
}

// ParseResponse decodes a response in the OpenAI chat completion wire format.
func ParseResponse(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode chat completion: %w", err)
	}
	return &resp, nil
}
