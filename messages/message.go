package messages

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Role is the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one of SystemMessage, UserMessage, AssistantMessage or ToolMessage.
type Message interface {
	Role() Role
	message()
}

type SystemMessage struct {
	Content string `json:"content"`
}

type UserMessage struct {
	Content string `json:"content"`
}

// AssistantMessage is a model reply. It carries text, a refusal, tool calls or a combination.
type AssistantMessage struct {
	Content   string     `json:"content"`
	Refusal   string     `json:"refusal,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ToolMessage is the result of one tool call.
type ToolMessage struct {
	ToolCallID string `json:"tool_call_id"`
	Name       string `json:"name"`
	Content    string `json:"content"`
}

// ToolCall is a model request to run a function.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall names the function and carries its JSON encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

func (SystemMessage) Role() Role    { return RoleSystem }
func (UserMessage) Role() Role      { return RoleUser }
func (AssistantMessage) Role() Role { return RoleAssistant }
func (ToolMessage) Role() Role      { return RoleTool }

func (SystemMessage) message()    {}
func (UserMessage) message()      {}
func (AssistantMessage) message() {}
func (ToolMessage) message()      {}

// HasToolCalls reports whether the model asked for any function to be run.
func (a AssistantMessage) HasToolCalls() bool {
	return len(a.ToolCalls) > 0
}

func (s SystemMessage) MarshalJSON() ([]byte, error) {
	type plain SystemMessage
	return withRole(plain(s), RoleSystem)
}

func (u UserMessage) MarshalJSON() ([]byte, error) {
	type plain UserMessage
	return withRole(plain(u), RoleUser)
}

func (a AssistantMessage) MarshalJSON() ([]byte, error) {
	type plain AssistantMessage
	return withRole(plain(a), RoleAssistant)
}

func (t ToolMessage) MarshalJSON() ([]byte, error) {
	type plain ToolMessage
	return withRole(plain(t), RoleTool)
}

func withRole(v any, role Role) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(b, "role", string(role))
}

// Unmarshal decodes a single message, picking its type from the role field.
func Unmarshal(data []byte) (Message, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid message JSON")
	}

	role := Role(gjson.GetBytes(data, "role").String())
	switch role {
	case RoleSystem:
		var m SystemMessage
		return decode(data, &m)
	case RoleUser:
		var m UserMessage
		return decode(data, &m)
	case RoleAssistant:
		var m AssistantMessage
		return decode(data, &m)
	case RoleTool:
		var m ToolMessage
		return decode(data, &m)
	default:
		return nil, fmt.Errorf("unknown message role %q", role)
	}
}

func decode[T Message](data []byte, target *T) (Message, error) {
	if err := json.Unmarshal(data, target); err != nil {
		return nil, fmt.Errorf("failed to decode %s message: %w", (*target).Role(), err)
	}
	return *target, nil
}

// Thread is an ordered conversation.
type Thread []Message

// UnmarshalJSON decodes a JSON array of messages.
func (t *Thread) UnmarshalJSON(data []byte) error {
	arr := gjson.ParseBytes(data)
	if !arr.IsArray() {
		return fmt.Errorf("expected a JSON array of messages")
	}

	var result Thread
	var err error
	arr.ForEach(func(_, value gjson.Result) bool {
		var m Message
		m, err = Unmarshal([]byte(value.Raw))
		if err != nil {
			return false
		}
		result = append(result, m)
		return true
	})
	if err != nil {
		return err
	}
	*t = result
	return nil
}

// LastAssistant returns the most recent assistant message.
func (t Thread) LastAssistant() (AssistantMessage, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if a, ok := t[i].(AssistantMessage); ok {
			return a, true
		}
	}
	return AssistantMessage{}, false
}
