package provider

import (
	"context"
	"testing"

	"github.com/casualjim/arggpt/messages"
	"github.com/casualjim/arggpt/tool"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	resp, err := ParseResponse([]byte(`{
		"id": "chatcmpl-123",
		"object": "chat.completion",
		"model": "gpt-3.5-turbo-1106",
		"choices": [{
			"index": 0,
			"message": {
				"role": "assistant",
				"content": null,
				"tool_calls": [
					{"id": "call_1", "type": "function", "function": {"name": "get_sky_color", "arguments": "{\"time_of_day\": \"day\"}"}},
					{"id": "call_2", "type": "function", "function": {"name": "spell_word", "arguments": "{\"word\": \"sky\"}"}}
				]
			},
			"finish_reason": "tool_calls"
		}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "chatcmpl-123", resp.ID)
	choice, ok := resp.First()
	require.True(t, ok)
	assert.Equal(t, FinishToolCalls, choice.FinishReason)
	assert.False(t, choice.FinishReason.Terminal())
	require.Len(t, choice.Message.ToolCalls, 2)
	assert.Equal(t, "get_sky_color", choice.Message.ToolCalls[0].Function.Name)
	assert.JSONEq(t, `{"time_of_day": "day"}`, choice.Message.ToolCalls[0].Function.Arguments)
	assert.Equal(t, "call_2", choice.Message.ToolCalls[1].ID)

	_, err = ParseResponse([]byte(`{"choices": "nope"}`))
	assert.ErrorContains(t, err, "failed to decode chat completion")
}

func TestResponse_First(t *testing.T) {
	var nilResp *Response
	_, ok := nilResp.First()
	assert.False(t, ok)

	_, ok = (&Response{}).First()
	assert.False(t, ok)
}

func TestFinishReason_Terminal(t *testing.T) {
	tests := []struct {
		reason FinishReason
		want   bool
	}{
		{FinishStop, true},
		{FinishLength, true},
		{FinishMaxTokens, true},
		{FinishContentFilter, true},
		{FinishToolCalls, false},
		{FinishFunctionCall, false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reason.Terminal())
		})
	}
}

func TestRequest_MarshalJSON(t *testing.T) {
	tools, err := tool.Assemble(tool.Must(func(word string) string { return word }, tool.Name("spell_word"), tool.Parameters("word")))
	require.NoError(t, err)

	b, err := json.Marshal(Request{
		Model: "gpt-3.5-turbo-1106",
		Messages: []messages.Message{
			messages.SystemMessage{Content: "be detailed"},
			messages.UserMessage{Content: "spell sky"},
		},
		Tools:     tools,
		MaxTokens: 500,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"model": "gpt-3.5-turbo-1106",
		"messages": [
			{"role": "system", "content": "be detailed"},
			{"role": "user", "content": "spell sky"}
		],
		"tools": [{
			"type": "function",
			"function": {
				"name": "spell_word",
				"description": "No description available.",
				"parameters": {"type": "object", "properties": {"word": {"type": "string"}}, "required": ["word"]},
				"returns": {"type": "string"}
			}
		}],
		"max_tokens": 500
	}`, string(b))

	b, err = json.Marshal(Request{Model: "m", Messages: []messages.Message{messages.UserMessage{Content: "hi"}}})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "tools")
	assert.NotContains(t, string(b), "max_tokens")
}

func TestProviderFunc(t *testing.T) {
	var got Request
	p := ProviderFunc(func(_ context.Context, req Request) (*Response, error) {
		got = req
		return &Response{ID: "x"}, nil
	})

	resp, err := p.ChatCompletion(context.Background(), Request{Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "x", resp.ID)
	assert.Equal(t, "m", got.Model)
}
