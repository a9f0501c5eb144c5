package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/casualjim/arggpt/messages"
	"github.com/casualjim/arggpt/pkg/uuidx"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	responseJSON   = []byte(`{"type":"response"}`)
	toolCallJSON   = []byte(`{"type":"tool_call"}`)
	toolResultJSON = []byte(`{"type":"tool_result"}`)
	errorJSON      = []byte(`{"type":"error"}`)
)

// Event is one of Response, ToolCall, ToolResult or Error.
type Event interface {
	Run() uuid.UUID
	event()
}

// Response is emitted when a provider response is received.
type Response struct {
	RunID        uuid.UUID                 `json:"run_id"`
	ResponseID   string                    `json:"response_id,omitempty"`
	Model        string                    `json:"model,omitempty"`
	FinishReason string                    `json:"finish_reason,omitempty"`
	Message      messages.AssistantMessage `json:"message"`
	Timestamp    strfmt.DateTime           `json:"timestamp,omitempty"`
}

// ToolCall is emitted before a tool call is dispatched.
type ToolCall struct {
	RunID     uuid.UUID       `json:"run_id"`
	CallID    string          `json:"call_id"`
	Name      string          `json:"name"`
	Arguments string          `json:"arguments"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

// ToolResult is emitted with the tool message produced for a call. Failure is
// the error kind when the call failed, empty on success.
type ToolResult struct {
	RunID     uuid.UUID       `json:"run_id"`
	CallID    string          `json:"call_id"`
	Name      string          `json:"name"`
	Content   string          `json:"content"`
	Failure   string          `json:"failure,omitempty"`
	Duration  time.Duration   `json:"duration"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

// Error is emitted when interpretation fails outside of a tool call.
type Error struct {
	RunID     uuid.UUID       `json:"run_id"`
	Err       error           `json:"error"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

func (r Response) Run() uuid.UUID   { return r.RunID }
func (t ToolCall) Run() uuid.UUID   { return t.RunID }
func (t ToolResult) Run() uuid.UUID { return t.RunID }
func (e Error) Run() uuid.UUID      { return e.RunID }

func (Response) event()   {}
func (ToolCall) event()   {}
func (ToolResult) event() {}
func (Error) event()      {}

// Succeeded reports whether the call produced a result rather than an error message.
func (t ToolResult) Succeeded() bool {
	return t.Failure == ""
}

func (e Error) Error() string {
	return fmt.Sprintf("run_id: %s, timestamp: %s, error: %v", e.RunID, e.Timestamp, e.Err)
}

func (e Error) Unwrap() error {
	return e.Err
}

// Now returns the current time as an event timestamp.
func Now() strfmt.DateTime {
	return strfmt.DateTime(time.Now().UTC())
}

type setter func([]byte) ([]byte, error)

func set(path string, value any) setter {
	return func(b []byte) ([]byte, error) { return sjson.SetBytes(b, path, value) }
}

func setRaw(path string, raw []byte) setter {
	return func(b []byte) ([]byte, error) { return sjson.SetRawBytes(b, path, raw) }
}

func setTimestamp(ts strfmt.DateTime) setter {
	return func(b []byte) ([]byte, error) {
		if time.Time(ts).IsZero() {
			return b, nil
		}
		return sjson.SetBytes(b, "timestamp", ts.String())
	}
}

func build(base []byte, setters ...setter) ([]byte, error) {
	result := append([]byte(nil), base...)
	var err error
	for _, s := range setters {
		if result, err = s(result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// MarshalJSON implements custom JSON marshaling for Response
func (r Response) MarshalJSON() ([]byte, error) {
	msg, err := r.Message.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return build(responseJSON,
		set("run_id", r.RunID.String()),
		set("response_id", r.ResponseID),
		set("model", r.Model),
		set("finish_reason", r.FinishReason),
		setRaw("message", msg),
		setTimestamp(r.Timestamp),
	)
}

// UnmarshalJSON implements custom JSON unmarshaling for Response
func (r *Response) UnmarshalJSON(data []byte) error {
	doc, err := parse(data, "response")
	if err != nil {
		return err
	}
	if r.RunID, err = runID(doc); err != nil {
		return err
	}

	raw := doc.Get("message")
	if !raw.Exists() {
		return fmt.Errorf("missing required field 'message'")
	}
	msg, err := messages.Unmarshal([]byte(raw.Raw))
	if err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}
	assistant, ok := msg.(messages.AssistantMessage)
	if !ok {
		return fmt.Errorf("expected an assistant message, got %s", msg.Role())
	}
	r.Message = assistant

	r.ResponseID = doc.Get("response_id").String()
	r.Model = doc.Get("model").String()
	r.FinishReason = doc.Get("finish_reason").String()
	r.Timestamp, err = timestamp(doc)
	return err
}

// MarshalJSON implements custom JSON marshaling for ToolCall
func (t ToolCall) MarshalJSON() ([]byte, error) {
	return build(toolCallJSON,
		set("run_id", t.RunID.String()),
		set("call_id", t.CallID),
		set("name", t.Name),
		set("arguments", t.Arguments),
		setTimestamp(t.Timestamp),
	)
}

// UnmarshalJSON implements custom JSON unmarshaling for ToolCall
func (t *ToolCall) UnmarshalJSON(data []byte) error {
	doc, err := parse(data, "tool_call")
	if err != nil {
		return err
	}
	if t.RunID, err = runID(doc); err != nil {
		return err
	}
	name := doc.Get("name")
	if !name.Exists() {
		return fmt.Errorf("missing required field 'name'")
	}
	t.Name = name.String()
	t.CallID = doc.Get("call_id").String()
	t.Arguments = doc.Get("arguments").String()
	t.Timestamp, err = timestamp(doc)
	return err
}

// MarshalJSON implements custom JSON marshaling for ToolResult
func (t ToolResult) MarshalJSON() ([]byte, error) {
	setters := []setter{
		set("run_id", t.RunID.String()),
		set("call_id", t.CallID),
		set("name", t.Name),
		set("content", t.Content),
		set("duration", int64(t.Duration)),
	}
	if t.Failure != "" {
		setters = append(setters, set("failure", t.Failure))
	}
	setters = append(setters, setTimestamp(t.Timestamp))
	return build(toolResultJSON, setters...)
}

// UnmarshalJSON implements custom JSON unmarshaling for ToolResult
func (t *ToolResult) UnmarshalJSON(data []byte) error {
	doc, err := parse(data, "tool_result")
	if err != nil {
		return err
	}
	if t.RunID, err = runID(doc); err != nil {
		return err
	}
	content := doc.Get("content")
	if !content.Exists() {
		return fmt.Errorf("missing required field 'content'")
	}
	t.Content = content.String()
	t.CallID = doc.Get("call_id").String()
	t.Name = doc.Get("name").String()
	t.Failure = doc.Get("failure").String()
	t.Duration = time.Duration(doc.Get("duration").Int())
	t.Timestamp, err = timestamp(doc)
	return err
}

// MarshalJSON implements custom JSON marshaling for Error
func (e Error) MarshalJSON() ([]byte, error) {
	setters := []setter{set("run_id", e.RunID.String())}
	if e.Err != nil {
		setters = append(setters, set("error", e.Err.Error()))
	}
	setters = append(setters, setTimestamp(e.Timestamp))
	return build(errorJSON, setters...)
}

// UnmarshalJSON implements custom JSON unmarshaling for Error
func (e *Error) UnmarshalJSON(data []byte) error {
	doc, err := parse(data, "error")
	if err != nil {
		return err
	}
	if e.RunID, err = runID(doc); err != nil {
		return err
	}
	errMsg := doc.Get("error")
	if !errMsg.Exists() {
		return errors.New("missing required field 'error'")
	}
	e.Err = errors.New(errMsg.String())
	e.Timestamp, err = timestamp(doc)
	return err
}

// ToJSON encodes an event with its type tag.
func ToJSON(event Event) ([]byte, error) {
	switch e := event.(type) {
	case Response:
		return e.MarshalJSON()
	case ToolCall:
		return e.MarshalJSON()
	case ToolResult:
		return e.MarshalJSON()
	case Error:
		return e.MarshalJSON()
	default:
		return nil, fmt.Errorf("unknown event type: %T", event)
	}
}

// FromJSON decodes an event produced by ToJSON.
func FromJSON(data []byte) (Event, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json: %s", data)
	}

	switch typ := gjson.GetBytes(data, "type").String(); typ {
	case "response":
		var e Response
		err := e.UnmarshalJSON(data)
		return e, err
	case "tool_call":
		var e ToolCall
		err := e.UnmarshalJSON(data)
		return e, err
	case "tool_result":
		var e ToolResult
		err := e.UnmarshalJSON(data)
		return e, err
	case "error":
		var e Error
		err := e.UnmarshalJSON(data)
		return e, err
	default:
		return nil, fmt.Errorf("unknown event type: %q", typ)
	}
}

func parse(data []byte, want string) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("invalid json: %s", data)
	}
	doc := gjson.ParseBytes(data)
	if typ := doc.Get("type"); !typ.Exists() || typ.String() != want {
		return gjson.Result{}, fmt.Errorf("missing or invalid type, expected '%s'", want)
	}
	return doc, nil
}

func runID(doc gjson.Result) (uuid.UUID, error) {
	raw := doc.Get("run_id")
	if !raw.Exists() {
		return uuid.Nil, fmt.Errorf("missing required field 'run_id'")
	}
	id, err := uuidx.Parse(raw.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid run_id: %w", err)
	}
	return id, nil
}

func timestamp(doc gjson.Result) (strfmt.DateTime, error) {
	var ts strfmt.DateTime
	raw := doc.Get("timestamp")
	if !raw.Exists() {
		return ts, nil
	}
	if err := ts.UnmarshalText([]byte(raw.String())); err != nil {
		return ts, fmt.Errorf("invalid timestamp: %w", err)
	}
	return ts, nil
}
