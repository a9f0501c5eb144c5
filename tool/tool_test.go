package tool

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMust(t *testing.T) {
	testFunc := func() {}

	t.Run("valid function", func(t *testing.T) {
		assert.NotPanics(t, func() {
			def := Must(testFunc)
			assert.Equal(t, reflect.ValueOf(testFunc).Pointer(), reflect.ValueOf(def.Function).Pointer())
		})
	})

	t.Run("invalid function", func(t *testing.T) {
		assert.Panics(t, func() {
			Must("not a function")
		})
	})
}

func TestName(t *testing.T) {
	tests := []struct {
		name     string
		toolName string
	}{
		{
			name:     "simple name",
			toolName: "test_tool",
		},
		{
			name:     "name with spaces",
			toolName: "test tool name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFunc := func() {}
			def, err := New(testFunc, Name(tt.toolName))
			require.NoError(t, err)
			assert.Equal(t, tt.toolName, def.Name)
		})
	}

	t.Run("defaults to the function name", func(t *testing.T) {
		def, err := New(add)
		require.NoError(t, err)
		assert.Equal(t, "add", def.Name)
	})
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
	}{
		{
			name:        "simple description",
			description: "A test tool",
		},
		{
			name:        "empty description",
			description: "",
		},
		{
			name:        "multiline description",
			description: "Line 1\nLine 2\nLine 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFunc := func() {}
			def, err := New(testFunc, Description(tt.description))
			require.NoError(t, err)
			assert.Equal(t, tt.description, def.Description)
		})
	}
}

func TestParameters(t *testing.T) {
	tests := []struct {
		name       string
		fn         any
		parameters []string
		want       []string
	}{
		{
			name:       "no parameters",
			fn:         func() {},
			parameters: []string{},
			want:       nil,
		},
		{
			name:       "all named",
			fn:         func(string, int, bool) {},
			parameters: []string{"text", "count", "verbose"},
			want:       []string{"text", "count", "verbose"},
		},
		{
			name:       "missing names fall back to paramN",
			fn:         func(string, int, bool) {},
			parameters: []string{"text"},
			want:       []string{"text", "param1", "param2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := New(tt.fn, Parameters(tt.parameters...))
			require.NoError(t, err)

			sig, err := def.signature()
			require.NoError(t, err)

			var got []string
			for _, p := range sig.params {
				got = append(got, p.name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithToolCombined(t *testing.T) {
	def, err := New(scale,
		Name("scale_tool"),
		Description("Scales a number"),
		Doc("Multiplies x by y."),
		Parameters("x", "y"),
		Default("y", 42),
		RequireSections("Description"),
	)
	require.NoError(t, err)

	assert.Equal(t, "scale_tool", def.Name)
	assert.Equal(t, "Scales a number", def.Description)
	assert.Equal(t, "Multiplies x by y.", def.Doc)
	assert.Equal(t, []string{"x", "y"}, def.Parameters)
	assert.Equal(t, map[string]any{"y": 42}, def.Defaults)
	assert.Equal(t, []string{"Description"}, def.RequiredSections)
}

type counter struct{ n int }

func (c *counter) incr(by int) int {
	c.n += by
	return c.n
}

func TestNew_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		fn      any
		options []Option
		errMsg  string
	}{
		{
			name:   "not a function",
			fn:     "not a function",
			errMsg: "is not a function",
		},
		{
			name:   "nil",
			fn:     nil,
			errMsg: "is not a function",
		},
		{
			name:   "method expression",
			fn:     (*counter).incr,
			errMsg: "method expressions are not supported",
		},
		{
			name:    "too many parameter names",
			fn:      add,
			options: []Option{Parameters("a", "b", "c")},
			errMsg:  "3 parameter names given for 2 parameters",
		},
		{
			name:    "duplicate parameter names",
			fn:      add,
			options: []Option{Parameters("a", "a")},
			errMsg:  `duplicate parameter name "a"`,
		},
		{
			name:    "default for an undeclared parameter",
			fn:      add,
			options: []Option{Parameters("a", "b"), Default("c", 1)},
			errMsg:  `default given for undeclared parameter "c"`,
		},
		{
			name:    "default of the wrong type",
			fn:      add,
			options: []Option{Parameters("a", "b"), Default("b", "two")},
			errMsg:  `default for parameter "b"`,
		},
		{
			name:    "default without a name",
			fn:      add,
			options: []Option{Default("", 1)},
			errMsg:  "default value needs a parameter name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.fn, tt.options...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestNew_MethodValue(t *testing.T) {
	c := &counter{}
	def, err := New(c.incr, Parameters("by"))
	require.NoError(t, err)
	assert.Equal(t, "incr", def.Name)
}

func TestNew_ConvertibleDefaults(t *testing.T) {
	_, err := New(func(ratio float64, label string) {}, Parameters("ratio", "label"), Default("ratio", 1), Default("label", nil))
	require.NoError(t, err)

	_, err = New(func(tags []string) {}, Parameters("tags"), Default("tags", []any{"a", "b"}))
	require.NoError(t, err)
}
