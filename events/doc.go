// Package events describes what happens while a model response is interpreted.
//
// Every interpretation run gets a time ordered run id. The interpreter reports
// the response it received, each tool call it dispatches, each tool result it
// produces and any failure outside the per-call loop to a Hook.
//
// Event hierarchy:
//   - Event: Base interface for all interpretation events
//     ├── Response: the assistant message that started the run
//     ├── ToolCall: a tool call about to be dispatched
//     ├── ToolResult: the tool message produced for a call
//     └── Error: a failure that aborted the run
//
// Events have a stable JSON form, tagged with a "type" field, so they can be
// published to a message broker and decoded on the other side with FromJSON.
//
// Example usage:
//
//	hook := events.Multi(events.Slog(logger), myHook)
//	interp := interpreter.New(registry, interpreter.WithHook(hook))
package events
