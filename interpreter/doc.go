// Package interpreter turns a chat completion response into the messages that
// continue the conversation.
//
// The assistant message of the first choice always comes first. Every tool call
// it carries is then resolved by name, its JSON arguments are parsed and the
// function is run. Each call produces exactly one tool message, in the order the
// model issued the calls:
//
//   - an unknown function yields "Error: Unknown function '<name>'"
//   - malformed arguments yield "Error: Invalid function arguments - <details>"
//   - a failing function yields "Error executing function: <details>"
//   - a function without a result yields "Function executed successfully"
//   - anything else yields the string form of the result
//
// A failed call never prevents the calls after it from running. Interpret
// doesn't return errors: an unexpected failure while walking the response is
// reported as a single "Error interpreting response" tool message.
package interpreter
