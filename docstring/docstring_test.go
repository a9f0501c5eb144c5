package docstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Sections
	}{
		{
			name: "empty",
			doc:  "",
			want: Sections{},
		},
		{
			name: "whitespace only",
			doc:  "  \n\t\n",
			want: Sections{},
		},
		{
			name: "description only",
			doc:  "returns the color of the sky,\n  based on the time of day\n",
			want: Sections{
				"Description": {Name: "Description", Content: "returns the color of the sky, based on the time of day"},
			},
		},
		{
			name: "description and arguments",
			doc: `returns the color of the sky, based on the time of day
Arguments:
    time_of_day: time of day, either day or night
`,
			want: Sections{
				"Description": {Name: "Description", Content: "returns the color of the sky, based on the time of day"},
				"Arguments":   {Name: "Arguments", Content: "time_of_day: time of day, either day or night"},
			},
		},
		{
			name: "bulleted arguments keep one line per entry",
			doc: `Adds numbers.

Args:
  - a: first
  * b: second

Returns:
  sum`,
			want: Sections{
				"Description": {Name: "Description", Content: "Adds numbers."},
				"Args":        {Name: "Args", Content: "a: first\nb: second"},
				"Returns":     {Name: "Returns", Content: "sum"},
			},
		},
		{
			name: "inline marker content",
			doc:  "Does things.\nReturns: the result",
			want: Sections{
				"Description": {Name: "Description", Content: "Does things."},
				"Returns":     {Name: "Returns", Content: "the result"},
			},
		},
		{
			name: "marker without description",
			doc:  "Parameters:\n  x: value",
			want: Sections{
				"Parameters": {Name: "Parameters", Content: "x: value"},
			},
		},
		{
			name: "separator sections",
			doc:  "Summary line\n----\nfooter text",
			want: Sections{
				"Description": {Name: "Description", Content: "Summary line"},
				"----":        {Name: "----", Content: "footer text"},
			},
		},
		{
			name: "repeated section keeps the last one",
			doc:  "Note:\n first\nNote:\n second",
			want: Sections{
				"Note": {Name: "Note", Content: "second"},
			},
		},
		{
			name: "blank lines inside a section are preserved",
			doc:  "Example:\n  call()\n\n  call(1)\n",
			want: Sections{
				"Example": {Name: "Example", Content: "call()\n\ncall(1)"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.doc)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_DescriptionOnlyYieldsOneSection(t *testing.T) {
	first := Parse("just a sentence\nspread over\nthree lines")
	require.Len(t, first, 1)

	again := Parse(first[DescriptionSection].Content)
	require.Len(t, again, 1)
	assert.Equal(t, first, again)
}

func TestSectionsLookup(t *testing.T) {
	sections := Parse("desc\nArgs:\n a: x\nReturn:\n y")

	sec, ok := sections.Lookup(ArgumentSections...)
	require.True(t, ok)
	assert.Equal(t, "Args", sec.Name)

	sec, ok = sections.Lookup(ReturnSections...)
	require.True(t, ok)
	assert.Equal(t, "y", sec.Content)

	_, ok = sections.Lookup("Raises")
	assert.False(t, ok)
}

func TestCleanLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  plain  ", "plain"},
		{"- bullet", "bullet"},
		{"*\tstar", "star"},
		{"-dash-no-space", "-dash-no-space"},
		{"---", "---"},
		{"-", "-"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanLine(tt.in))
		})
	}
}

func TestParameterDescriptions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string]string
	}{
		{
			name:    "empty",
			content: "",
			want:    map[string]string{},
		},
		{
			name:    "one per line",
			content: "a: first\nb: second",
			want:    map[string]string{"a": "first", "b": "second"},
		},
		{
			name:    "continuation lines without labels stay attached",
			content: "commands: A list of strings,\neach representing a Unix command.",
			want:    map[string]string{"commands": "A list of strings,\neach representing a Unix command."},
		},
		{
			name:    "a later label truncates the description",
			content: "url: where to go, e.g. http://example.com",
			want:    map[string]string{"url": "where to go, e.g.", "http": "//example.com"},
		},
		{
			name:    "label with nothing after it",
			content: "a: first\nb:",
			want:    map[string]string{"a": "first"},
		},
		{
			name:    "label followed by whitespace only",
			content: "a: \n",
			want:    map[string]string{"a": ""},
		},
		{
			name:    "no labels",
			content: "None",
			want:    map[string]string{},
		},
		{
			name:    "duplicate label keeps the last",
			content: "a: one\na: two",
			want:    map[string]string{"a": "two"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParameterDescriptions(tt.content))
		})
	}
}
