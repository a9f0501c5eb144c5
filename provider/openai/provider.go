package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/casualjim/arggpt/messages"
	"github.com/casualjim/arggpt/pkg/jsonx"
	"github.com/casualjim/arggpt/provider"
	"github.com/casualjim/arggpt/tool"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

var _ provider.Provider = (*Provider)(nil)

type Provider struct {
	client *openai.Client
}

func New(options ...option.RequestOption) *Provider {
	client := openai.NewClient(options...)
	return &Provider{
		client: client,
	}
}

func (p *Provider) ChatCompletion(ctx context.Context, req provider.Request) (*provider.Response, error) {
	params, err := buildRequest(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	chat, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	return completionToResponse(chat), nil
}

func buildRequest(req provider.Request) (openai.ChatCompletionNewParams, error) {
	if strings.TrimSpace(req.Model) == "" {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("model is required")
	}

	msgs, err := messagesToOpenAI(req.Messages)
	if err != nil {
		return openai.ChatCompletionNewParams{}, err
	}

	params := openai.ChatCompletionNewParams{
		Messages: openai.F(msgs),
		Model:    openai.F(req.Model),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	if len(req.Tools) > 0 {
		tools, err := toolsToOpenAI(req.Tools)
		if err != nil {
			return openai.ChatCompletionNewParams{}, err
		}
		params.Tools = openai.F(tools)
	}
	return params, nil
}

func toolsToOpenAI(tools []tool.Tool) ([]openai.ChatCompletionToolParam, error) {
	result := make([]openai.ChatCompletionToolParam, len(tools))
	for i, t := range tools {
		if strings.TrimSpace(t.Function.Name) == "" {
			return nil, fmt.Errorf("tool %d has no name", i)
		}

		jv, err := jsonx.ToDynamicJSON(t.Function.Parameters)
		if err != nil {
			return nil, fmt.Errorf("failed to convert parameters of tool %s: %w", t.Function.Name, err)
		}

		def := openai.FunctionDefinitionParam{
			Name:       openai.String(t.Function.Name),
			Parameters: openai.F(shared.FunctionParameters(jv)),
		}
		if strings.TrimSpace(t.Function.Description) != "" {
			def.Description = openai.String(t.Function.Description)
		}

		result[i] = openai.ChatCompletionToolParam{
			Type:     openai.F(openai.ChatCompletionToolTypeFunction),
			Function: openai.F(def),
		}
	}
	return result, nil
}

func messagesToOpenAI(msgs []messages.Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for i, message := range msgs {
		switch msg := message.(type) {
		case messages.SystemMessage:
			result = append(result, openai.SystemMessage(msg.Content))
		case messages.UserMessage:
			result = append(result, openai.UserMessage(msg.Content))
		case messages.ToolMessage:
			result = append(result, openai.ToolMessage(msg.ToolCallID, msg.Content))
		case messages.AssistantMessage:
			result = append(result, assistantToOpenAI(msg))
		default:
			return nil, fmt.Errorf("message %d: unsupported message type %T", i, message)
		}
	}
	return result, nil
}

func assistantToOpenAI(msg messages.AssistantMessage) openai.ChatCompletionAssistantMessageParam {
	am := openai.ChatCompletionAssistantMessageParam{
		Role: openai.F(openai.ChatCompletionAssistantMessageParamRoleAssistant),
	}
	if msg.Content != "" {
		am.Content = openai.F([]openai.ChatCompletionAssistantMessageParamContentUnion{
			openai.TextPart(msg.Content),
		})
	}
	if msg.Refusal != "" {
		am.Refusal = openai.String(msg.Refusal)
	}
	if msg.HasToolCalls() {
		tcd := make([]openai.ChatCompletionMessageToolCallParam, len(msg.ToolCalls))
		for i, tc := range msg.ToolCalls {
			tcd[i] = openai.ChatCompletionMessageToolCallParam{
				ID:   openai.String(tc.ID),
				Type: openai.F(openai.ChatCompletionMessageToolCallTypeFunction),
				Function: openai.F(openai.ChatCompletionMessageToolCallFunctionParam{
					Name:      openai.String(tc.Function.Name),
					Arguments: openai.String(tc.Function.Arguments),
				}),
			}
		}
		am.ToolCalls = openai.F(tcd)
	}
	return am
}

func completionToResponse(chat *openai.ChatCompletion) *provider.Response {
	resp := &provider.Response{
		ID:      chat.ID,
		Model:   chat.Model,
		Choices: make([]provider.Choice, len(chat.Choices)),
	}

	for i, choice := range chat.Choices {
		msg := messages.AssistantMessage{
			Content: choice.Message.Content,
			Refusal: choice.Message.Refusal,
		}
		if len(choice.Message.ToolCalls) > 0 {
			msg.ToolCalls = make([]messages.ToolCall, len(choice.Message.ToolCalls))
			for j, tc := range choice.Message.ToolCalls {
				msg.ToolCalls[j] = messages.ToolCall{
					ID:   tc.ID,
					Type: string(openai.ChatCompletionMessageToolCallTypeFunction),
					Function: messages.FunctionCall{
						Name:      tc.Function.Name,
						Arguments: tc.Function.Arguments,
					},
				}
			}
		}

		resp.Choices[i] = provider.Choice{
			Index:        int(choice.Index),
			Message:      msg,
			FinishReason: provider.FinishReason(choice.FinishReason),
		}
	}
	return resp
}
