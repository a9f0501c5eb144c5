// Package provider is the boundary to a chat completion service.
//
// A Provider takes the conversation so far plus the tool envelopes and returns
// the model's reply. Request and Response follow the OpenAI chat wire format,
// so an implementation that talks to an OpenAI compatible endpoint can send
// and decode them directly.
//
// Implementations:
//   - provider/openai uses the official openai-go client.
//   - provider/compat posts the request as is over plain HTTP, for servers that
//     speak the same protocol.
//
// Example usage:
//
//	resp, err := p.ChatCompletion(ctx, provider.Request{
//	    Model:     "gpt-3.5-turbo-1106",
//	    Messages:  thread,
//	    Tools:     tools,
//	    MaxTokens: 500,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(resp.Choices[0].Message.Content)
//
// Retries, backoff and streaming are left to the caller.
package provider
