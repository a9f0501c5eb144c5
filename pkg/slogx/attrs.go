package slogx

import (
	"fmt"
	"log/slog"
)

// Error returns an "error" attribute holding the error message.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// ByteString returns an attribute with value rendered as a string.
func ByteString(key string, value []byte) slog.Attr {
	return slog.String(key, string(value))
}

// Stringer returns an attribute with the String() form of value.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

// KeyLoggerName is the attribute key that names a component logger.
const KeyLoggerName = "logger"

// LoggerName returns an attribute naming a component logger.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}

// Tool returns the attributes describing a tool call.
func Tool(name, callID string) slog.Attr {
	return slog.Group("tool", slog.String("name", name), slog.String("call_id", callID))
}
