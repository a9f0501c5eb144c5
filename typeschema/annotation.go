// Package typeschema translates type annotations into JSON schema fragments.
//
// Annotations form a closed sum type: every Go type a tool can accept is first
// mapped onto one of the shapes below with Of, and Translate turns that shape
// into a *jsonschema.Schema. Annotations can also be built by hand, which is
// how shapes that Go reflection cannot observe (unions, other generics) are
// described.
package typeschema

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind is a primitive JSON schema type.
type Kind int

const (
	Null Kind = iota
	String
	Integer
	Number
	Boolean
	Array
	Object
)

var kindNames = [...]string{
	Null:    "null",
	String:  "string",
	Integer: "integer",
	Number:  "number",
	Boolean: "boolean",
	Array:   "array",
	Object:  "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "object"
	}
	return kindNames[k]
}

// Annotation is one of Primitive, Optional, Union, Sequence, Mapping, Generic, Struct, Any or Opaque.
type Annotation interface {
	annotation()
	fmt.Stringer
}

// Primitive is a type that maps directly onto a JSON schema type.
type Primitive struct {
	Kind Kind
}

// Optional is a value of type Of or null.
type Optional struct {
	Of Annotation
}

// Union is a value matching any of its arms. A Union with exactly two arms, one
// of them None, behaves like Optional.
type Union struct {
	Arms []Annotation
}

// Sequence is a list of Elem. A nil Elem leaves the elements unconstrained.
type Sequence struct {
	Elem Annotation
}

// Mapping is an object with string keys and values of type Value.
// The key type is informational only.
type Mapping struct {
	Key   Annotation
	Value Annotation
}

// Generic is any other parametrised type.
type Generic struct {
	Origin Annotation
	Args   []Annotation
}

// Struct is a Go struct type, described field by field.
type Struct struct {
	Type reflect.Type
}

// Any accepts any JSON value.
type Any struct{}

// Opaque is a type that has no JSON schema representation.
type Opaque struct {
	Name string
}

func (Primitive) annotation() {}
func (Optional) annotation()  {}
func (Union) annotation()     {}
func (Sequence) annotation()  {}
func (Mapping) annotation()   {}
func (Generic) annotation()   {}
func (Struct) annotation()    {}
func (Any) annotation()       {}
func (Opaque) annotation()    {}

// Convenience values for the primitive annotations.
var (
	None = Primitive{Kind: Null}
	Str  = Primitive{Kind: String}
	Int  = Primitive{Kind: Integer}
	Num  = Primitive{Kind: Number}
	Bool = Primitive{Kind: Boolean}
	List = Primitive{Kind: Array}
	Dict = Primitive{Kind: Object}
)

// OptionalOf returns an Optional of a.
func OptionalOf(a Annotation) Optional { return Optional{Of: a} }

// UnionOf returns a Union of the arms.
func UnionOf(arms ...Annotation) Union { return Union{Arms: arms} }

// ListOf returns a Sequence of elem.
func ListOf(elem Annotation) Sequence { return Sequence{Elem: elem} }

// DictOf returns a Mapping from key to value.
func DictOf(key, value Annotation) Mapping { return Mapping{Key: key, Value: value} }

func (p Primitive) String() string { return p.Kind.String() }
func (o Optional) String() string  { return "Optional[" + str(o.Of) + "]" }
func (u Union) String() string     { return "Union[" + join(u.Arms) + "]" }
func (s Sequence) String() string  { return "List[" + str(s.Elem) + "]" }
func (m Mapping) String() string   { return "Dict[" + str(m.Key) + ", " + str(m.Value) + "]" }
func (g Generic) String() string   { return str(g.Origin) + "[" + join(g.Args) + "]" }
func (s Struct) String() string {
	if s.Type == nil {
		return "struct"
	}
	return s.Type.String()
}
func (Any) String() string      { return "any" }
func (o Opaque) String() string { return o.Name }

func str(a Annotation) string {
	if a == nil {
		return "any"
	}
	return a.String()
}

func join(as []Annotation) string {
	parts := make([]string, len(as))
	for i, a := range as {
		parts[i] = str(a)
	}
	return strings.Join(parts, ", ")
}

var bytesType = reflect.TypeFor[[]byte]()

// Of maps a Go type onto its annotation. A named type that refers to itself
// resolves to Any at the point of recursion.
func Of(t reflect.Type) Annotation {
	return of(t, make(map[reflect.Type]bool))
}

func of(t reflect.Type, seen map[reflect.Type]bool) Annotation {
	if t == nil {
		return None
	}
	if t == bytesType {
		return Str
	}
	if t.Name() != "" {
		if seen[t] {
			return Any{}
		}
		seen[t] = true
		defer delete(seen, t)
	}

	switch t.Kind() {
	case reflect.String:
		return Str
	case reflect.Bool:
		return Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int
	case reflect.Float32, reflect.Float64:
		return Num
	case reflect.Slice, reflect.Array:
		return Sequence{Elem: of(t.Elem(), seen)}
	case reflect.Map:
		return Mapping{Key: of(t.Key(), seen), Value: of(t.Elem(), seen)}
	case reflect.Pointer:
		return Optional{Of: of(t.Elem(), seen)}
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return Any{}
		}
		return Opaque{Name: t.String()}
	case reflect.Struct:
		return Struct{Type: t}
	case reflect.Chan:
		return Generic{Origin: Opaque{Name: "chan"}, Args: []Annotation{of(t.Elem(), seen)}}
	default:
		return Opaque{Name: t.String()}
	}
}
