package tool

import (
	"errors"
	"fmt"
)

// Kind classifies a failure in the tool pipeline. Kinds are errors themselves so
// they can be matched with errors.Is.
type Kind uint8

const (
	// ErrInvalidInput is a programming error in a function's signature or doc comment.
	ErrInvalidInput Kind = iota + 1
	// ErrUnknownFunction is a tool call naming a function that isn't registered.
	ErrUnknownFunction
	// ErrArgumentParse is a tool call whose arguments can't be decoded.
	ErrArgumentParse
	// ErrExecution is a failure raised by the function itself.
	ErrExecution
	// ErrInterpretation is any other failure while walking a provider response.
	ErrInterpretation
)

func (k Kind) Error() string {
	switch k {
	case ErrInvalidInput:
		return "invalid input"
	case ErrUnknownFunction:
		return "unknown function"
	case ErrArgumentParse:
		return "argument parse error"
	case ErrExecution:
		return "execution error"
	case ErrInterpretation:
		return "interpretation error"
	default:
		return fmt.Sprintf("tool error kind %d", uint8(k))
	}
}

// Error is a classified failure for a named function. Its message is the text
// that is fed back into the conversation.
type Error struct {
	Kind Kind
	Name string
	Err  error
}

// NewError returns an Error of the given kind.
func NewError(kind Kind, name string, err error) *Error {
	return &Error{Kind: kind, Name: name, Err: err}
}

func errorf(kind Kind, name, format string, args ...any) *Error {
	return NewError(kind, name, fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnknownFunction:
		return fmt.Sprintf("Error: Unknown function '%s'", e.Name)
	case ErrArgumentParse:
		return "Error: Invalid function arguments - " + e.details()
	case ErrExecution:
		return "Error executing function: " + e.details()
	case ErrInterpretation:
		return "Error interpreting response: " + e.details()
	default:
		return "invalid input: " + e.details()
	}
}

func (e *Error) details() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the kind of the first tool Error in err's tree.
func KindOf(err error) (Kind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}
