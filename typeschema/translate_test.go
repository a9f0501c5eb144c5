package typeschema

import (
	"reflect"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toJSON(t *testing.T, s *jsonschema.Schema) string {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	return string(b)
}

func TestTranslate_Primitives(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"string", reflect.TypeFor[string](), "string"},
		{"int", reflect.TypeFor[int](), "integer"},
		{"int64", reflect.TypeFor[int64](), "integer"},
		{"uint8", reflect.TypeFor[uint8](), "integer"},
		{"float32", reflect.TypeFor[float32](), "number"},
		{"float64", reflect.TypeFor[float64](), "number"},
		{"bool", reflect.TypeFor[bool](), "boolean"},
		{"bytes", reflect.TypeFor[[]byte](), "string"},
		{"nil type", nil, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(Of(tt.typ), "")
			assert.Equal(t, tt.want, got.Type)
			assert.Empty(t, got.Description)
			assert.False(t, isNullable(got))

			opt := Translate(OptionalOf(Of(tt.typ)), "")
			assert.Equal(t, got.Type, opt.Type)
			assert.True(t, isNullable(opt))
		})
	}
}

func TestTranslate_OptionalIsNotAnyOf(t *testing.T) {
	for _, a := range []Annotation{
		OptionalOf(Int),
		UnionOf(Int, None),
		UnionOf(None, Int),
		Of(reflect.TypeFor[*int]()),
	} {
		t.Run(a.String(), func(t *testing.T) {
			got := Translate(a, "a count")
			assert.JSONEq(t, `{"type":"integer","description":"a count","nullable":true}`, toJSON(t, got))
			assert.Nil(t, got.AnyOf)
		})
	}
}

func TestTranslate_Union(t *testing.T) {
	t.Run("two non-none arms", func(t *testing.T) {
		got := Translate(UnionOf(Str, Int), "a key")
		require.Len(t, got.AnyOf, 2)
		assert.Equal(t, "a key", got.Description)
		assert.Empty(t, got.Type)
		assert.Equal(t, "string", got.AnyOf[0].Type)
		assert.Equal(t, "integer", got.AnyOf[1].Type)
		for _, arm := range got.AnyOf {
			assert.Empty(t, arm.Description)
		}
	})

	t.Run("three arms including none", func(t *testing.T) {
		got := Translate(UnionOf(Str, Int, None), "")
		require.Len(t, got.AnyOf, 3)
		assert.Equal(t, "null", got.AnyOf[2].Type)
		assert.False(t, isNullable(got))
	})
}

func TestTranslate_Sequence(t *testing.T) {
	t.Run("items equal element translation", func(t *testing.T) {
		for _, elem := range []Annotation{Str, Int, Num, Bool} {
			got := Translate(ListOf(elem), "")
			assert.Equal(t, "array", got.Type)
			assert.Equal(t, Translate(elem, ""), got.Items)
		}
	})

	t.Run("nested lists", func(t *testing.T) {
		got := Translate(Of(reflect.TypeFor[[][]float64]()), "")
		require.NotNil(t, got.Items)
		require.NotNil(t, got.Items.Items)
		assert.Equal(t, "number", got.Items.Items.Type)
	})

	t.Run("description is prefixed through the nesting", func(t *testing.T) {
		got := Translate(ListOf(ListOf(Str)), "names")
		assert.JSONEq(t, `{
			"type": "array",
			"description": "names",
			"items": {
				"type": "array",
				"description": "An array of names",
				"items": {"type": "string", "description": "An array of An array of names"}
			}
		}`, toJSON(t, got))
	})

	t.Run("unconstrained elements", func(t *testing.T) {
		got := Translate(Sequence{}, "")
		require.NotNil(t, got.Items)
		assert.Empty(t, got.Items.Type)

		got = Translate(Of(reflect.TypeFor[[]any]()), "values")
		assert.Equal(t, "An array of values", got.Items.Description)
		assert.Empty(t, got.Items.Type)
	})
}

func TestTranslate_Mapping(t *testing.T) {
	t.Run("additional properties equal value translation", func(t *testing.T) {
		got := Translate(Of(reflect.TypeFor[map[string]int]()), "")
		assert.Equal(t, "object", got.Type)
		assert.Equal(t, Translate(Int, ""), got.AdditionalProperties)
	})

	t.Run("union values", func(t *testing.T) {
		got := Translate(DictOf(Str, UnionOf(Str, Int)), "scores")
		require.NotNil(t, got.AdditionalProperties)
		assert.Equal(t, "A dictionary of scores", got.AdditionalProperties.Description)
		require.Len(t, got.AdditionalProperties.AnyOf, 2)
		types := []string{got.AdditionalProperties.AnyOf[0].Type, got.AdditionalProperties.AnyOf[1].Type}
		assert.ElementsMatch(t, []string{"string", "integer"}, types)
	})

	t.Run("key type is not represented", func(t *testing.T) {
		got := Translate(DictOf(Int, Bool), "")
		assert.JSONEq(t, `{"type":"object","additionalProperties":{"type":"boolean"}}`, toJSON(t, got))
	})
}

func TestTranslate_Generic(t *testing.T) {
	got := Translate(Generic{Origin: Opaque{Name: "set"}, Args: []Annotation{Str}}, "tags")
	assert.Equal(t, "object", got.Type)
	require.NotNil(t, got.Items)
	assert.Equal(t, "string", got.Items.Type)
	assert.Equal(t, "An instance of tags", got.Items.Description)

	got = Translate(Generic{Origin: List, Args: []Annotation{Int}}, "")
	assert.Equal(t, "array", got.Type)
	assert.Empty(t, got.Items.Description)

	got = Translate(Of(reflect.TypeFor[chan int]()), "")
	assert.Equal(t, "object", got.Type)
	assert.Equal(t, "integer", got.Items.Type)

	got = Translate(Generic{Origin: Dict}, "")
	assert.Nil(t, got.Items)
}

func TestTranslate_Fallbacks(t *testing.T) {
	assert.Equal(t, "object", Translate(Opaque{Name: "func()"}, "").Type)
	assert.Equal(t, "object", Translate(Of(reflect.TypeFor[func()]()), "").Type)
	assert.Equal(t, "object", Translate(Of(reflect.TypeFor[error]()), "").Type)
	assert.Equal(t, "null", Translate(nil, "").Type)
	assert.Equal(t, "object", Translate(Primitive{Kind: Kind(42)}, "").Type)
}

type weatherQuery struct {
	City string    `json:"city"`
	When time.Time `json:"when,omitempty"`
}

func TestTranslate_Struct(t *testing.T) {
	got := Translate(Of(reflect.TypeFor[weatherQuery]()), "the query")
	assert.Equal(t, "object", got.Type)
	assert.Equal(t, "the query", got.Description)
	assert.Empty(t, got.Version)
	require.NotNil(t, got.Properties)

	city, ok := got.Properties.Get("city")
	require.True(t, ok)
	assert.Equal(t, "string", city.Type)
	assert.Contains(t, got.Required, "city")

	got = Translate(Of(reflect.TypeFor[time.Time]()), "")
	assert.Equal(t, "string", got.Type)
	assert.Equal(t, "date-time", got.Format)
}

type treeNode struct {
	Name     string      `json:"name"`
	Children []*treeNode `json:"children"`
}

type linkedA struct {
	Next *linkedB `json:"next"`
}

type linkedB struct {
	Back []linkedA `json:"back"`
}

type jobHandle struct {
	ID     string        `json:"id"`
	Done   chan struct{} `json:"done"`
	Cancel func()        `json:"cancel"`
}

type hiddenHandle struct {
	ID     string        `json:"id"`
	Done   chan struct{} `json:"-"`
	cancel func()
}

func TestTranslate_UnreflectableStruct(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"self referential", reflect.TypeFor[treeNode](), `{"type":"object","description":"a node"}`},
		{"pointer to self referential", reflect.TypeFor[*treeNode](), `{"type":"object","description":"a node","nullable":true}`},
		{"mutually recursive", reflect.TypeFor[linkedA](), `{"type":"object","description":"a node"}`},
		{"channel and func fields", reflect.TypeFor[jobHandle](), `{"type":"object","description":"a node"}`},
		{"nested in a list", reflect.TypeFor[[]jobHandle](), `{"type":"array","description":"a node","items":{"type":"object","description":"An array of a node"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *jsonschema.Schema
			require.NotPanics(t, func() { got = Translate(Of(tt.typ), "a node") })
			assert.JSONEq(t, tt.want, toJSON(t, got))
		})
	}

	t.Run("skipped fields do not count", func(t *testing.T) {
		got := Translate(Of(reflect.TypeFor[hiddenHandle]()), "")
		require.NotNil(t, got.Properties)
		_, ok := got.Properties.Get("id")
		assert.True(t, ok)
		assert.Equal(t, 1, got.Properties.Len())
	})
}

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want Annotation
	}{
		{"slice", reflect.TypeFor[[]string](), ListOf(Str)},
		{"array", reflect.TypeFor[[3]int](), ListOf(Int)},
		{"map", reflect.TypeFor[map[string]bool](), DictOf(Str, Bool)},
		{"pointer", reflect.TypeFor[*float64](), OptionalOf(Num)},
		{"any", reflect.TypeFor[any](), Any{}},
		{"nested", reflect.TypeFor[map[string][]*int](), DictOf(Str, ListOf(OptionalOf(Int)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Of(tt.typ))
		})
	}
}

type tree map[string]tree

func TestOf_RecursiveType(t *testing.T) {
	assert.Equal(t, DictOf(Str, Any{}), Of(reflect.TypeFor[tree]()))
}

func TestAnnotationString(t *testing.T) {
	assert.Equal(t, "Dict[string, List[Optional[integer]]]", DictOf(Str, ListOf(OptionalOf(Int))).String())
	assert.Equal(t, "Union[string, null]", UnionOf(Str, None).String())
	assert.Equal(t, "List[any]", Sequence{}.String())
}
