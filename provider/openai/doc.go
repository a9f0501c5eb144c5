// Package openai implements provider.Provider on top of the official openai-go
// client.
//
// Tool envelopes are converted to function definitions. The "returns" schema
// is not part of the OpenAI tool format and is dropped on the way out; use the
// compat provider to send it verbatim.
//
//	p := openai.New(option.WithAPIKey(os.Getenv("OPENAI_API_KEY")))
//	resp, err := p.ChatCompletion(ctx, provider.Request{
//		Model:    "gpt-3.5-turbo-1106",
//		Messages: thread,
//		Tools:    tools,
//	})
//
// Model returns a cached provider bound to one model name. Its client is
// created on first use and shared by every caller asking for the same name.
package openai
