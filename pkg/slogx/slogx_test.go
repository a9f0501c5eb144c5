package slogx

import (
	"bytes"
	"errors"
	"log/slog"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestAttrs(t *testing.T) {
	assert.Equal(t, slog.String("error", "boom"), Error(errors.New("boom")))
	assert.Equal(t, slog.String("error", "<nil>"), Error(nil))
	assert.Equal(t, slog.String("body", "raw"), ByteString("body", []byte("raw")))
	assert.Equal(t, slog.String("addr", "10.0.0.1"), Stringer("addr", netip.MustParseAddr("10.0.0.1")))
	assert.Equal(t, slog.String(KeyLoggerName, "interpreter"), LoggerName("interpreter"))

	group := Tool("add", "call_1")
	assert.Equal(t, "tool", group.Key)
	assert.Len(t, group.Value.Group(), 2)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, FormatJSON, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("tool executed", LoggerName("interpreter"), slog.Int("count", 2))

	line := buf.String()
	require.NotEmpty(t, line)
	assert.NotContains(t, line, "hidden")
	assert.Equal(t, "tool executed", gjson.Get(line, "message").String())
	assert.Equal(t, "interpreter", gjson.Get(line, "logger").String())
	assert.Equal(t, int64(2), gjson.Get(line, "count").Int())
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, FormatConsole, slog.LevelDebug)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestSetup(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	logger := Setup(&buf, FormatJSON, slog.LevelWarn)
	assert.Same(t, logger, slog.Default())

	slog.Warn("careful")
	assert.Contains(t, buf.String(), "careful")
}
