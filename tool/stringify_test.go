package tool

import (
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color int

func (c color) String() string {
	if c == 0 {
		return "blue"
	}
	return "black"
}

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func TestStringify(t *testing.T) {
	var (
		nilPtr *point
		nilMap map[string]int
	)
	when := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		value  any
		want   string
		wantOK bool
	}{
		{"nil", nil, "", false},
		{"nil pointer", nilPtr, "", false},
		{"nil map", nilMap, "", false},
		{"string", "blue", "blue", true},
		{"empty string", "", "", true},
		{"bytes", []byte("raw"), "raw", true},
		{"int", 42, "42", true},
		{"negative int64", int64(-7), "-7", true},
		{"uint8", uint8(255), "255", true},
		{"float64", 3.25, "3.25", true},
		{"float32", float32(0.1), "0.1", true},
		{"bool", true, "true", true},
		{"time", when, "2024-03-01T12:30:00Z", true},
		{"error", errors.New("boom"), "boom", true},
		{"stringer", color(0), "blue", true},
		{"text marshaler", netip.MustParseAddr("10.0.0.1"), "10.0.0.1", true},
		{"struct", point{X: 1, Y: 2}, `{"x":1,"y":2}`, true},
		{"struct pointer", &point{X: 3}, `{"x":3,"y":0}`, true},
		{"slice", []string{"ls", "pwd"}, `["ls","pwd"]`, true},
		{"map", map[string]int{"a": 1}, `{"a":1}`, true},
		{"empty slice", []int{}, `[]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Stringify(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringify_Unmarshalable(t *testing.T) {
	_, ok, err := Stringify(make(chan int))
	require.Error(t, err)
	assert.False(t, ok)
}
