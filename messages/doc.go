// Package messages holds the chat messages exchanged with a function calling model.
//
// Message is a closed set: SystemMessage, UserMessage, AssistantMessage and
// ToolMessage. Every message marshals to the OpenAI chat wire format with its
// role included, and Unmarshal dispatches on that role to decode one.
//
// Tool messages always carry string content. The interpreter renders results
// and failures to text before they reach a ToolMessage.
package messages
