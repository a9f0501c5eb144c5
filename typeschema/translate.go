package typeschema

import (
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
)

const nullableKey = "nullable"

var structReflector = jsonschema.Reflector{
	AllowAdditionalProperties: true,
	DoNotReference:            true,
}

// Translate converts an annotation into a JSON schema node. A non-empty
// description is attached to the node and, prefixed, to its element schemas.
func Translate(a Annotation, description string) *jsonschema.Schema {
	result := &jsonschema.Schema{Description: description}

	switch t := a.(type) {
	case nil:
		result.Type = Null.String()
	case Primitive:
		result.Type = t.Kind.String()
	case Optional:
		return nullable(Translate(t.Of, description))
	case Union:
		if inner, ok := optionalArm(t); ok {
			return nullable(Translate(inner, description))
		}
		result.AnyOf = make([]*jsonschema.Schema, len(t.Arms))
		for i, arm := range t.Arms {
			result.AnyOf[i] = Translate(arm, "")
		}
	case Sequence:
		result.Type = Array.String()
		result.Items = Translate(elemOrAny(t.Elem), prefixed("An array of ", description))
	case Mapping:
		result.Type = Object.String()
		result.AdditionalProperties = Translate(elemOrAny(t.Value), prefixed("A dictionary of ", description))
	case Generic:
		result.Type = lookupOrObject(t.Origin)
		if len(t.Args) > 0 {
			result.Items = Translate(t.Args[0], prefixed("An instance of ", description))
		}
	case Struct:
		return reflectStruct(t, description)
	case Any:
		// unconstrained
	default:
		result.Type = Object.String()
	}

	return result
}

func nullable(s *jsonschema.Schema) *jsonschema.Schema {
	if s.Extras == nil {
		s.Extras = make(map[string]any, 1)
	}
	s.Extras[nullableKey] = true
	return s
}

// isNullable reports whether the schema was produced from an optional annotation.
func isNullable(s *jsonschema.Schema) bool {
	if s == nil || s.Extras == nil {
		return false
	}
	v, ok := s.Extras[nullableKey].(bool)
	return ok && v
}

// optionalArm returns the non-null arm of a two-armed union that has a null arm.
func optionalArm(u Union) (Annotation, bool) {
	if len(u.Arms) != 2 {
		return nil, false
	}
	switch {
	case isNone(u.Arms[0]) && !isNone(u.Arms[1]):
		return u.Arms[1], true
	case isNone(u.Arms[1]) && !isNone(u.Arms[0]):
		return u.Arms[0], true
	}
	return nil, false
}

func isNone(a Annotation) bool {
	p, ok := a.(Primitive)
	return a == nil || (ok && p.Kind == Null)
}

func elemOrAny(a Annotation) Annotation {
	if a == nil {
		return Any{}
	}
	return a
}

func lookupOrObject(origin Annotation) string {
	if p, ok := origin.(Primitive); ok {
		return p.Kind.String()
	}
	return Object.String()
}

func prefixed(prefix, description string) string {
	if description == "" {
		return ""
	}
	return prefix + description
}

// reflectStruct expands a struct through the reflector. Types it cannot
// describe, recursive ones included, degrade to a plain object.
func reflectStruct(s Struct, description string) (schema *jsonschema.Schema) {
	fallback := &jsonschema.Schema{Type: Object.String(), Description: description}
	if s.Type == nil || !reflectable(s.Type, map[reflect.Type]bool{}) {
		return fallback
	}
	defer func() {
		if recover() != nil {
			schema = fallback
		}
	}()

	schema = structReflector.ReflectFromType(s.Type)
	schema.Version = ""
	schema.ID = ""
	if description != "" {
		schema.Description = description
	}
	return schema
}

// reflectable reports whether t expands to a finite schema made only of
// JSON representable fields. path holds the structs being visited.
func reflectable(t reflect.Type, path map[reflect.Type]bool) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return reflectable(t.Elem(), path)
	case reflect.Map:
		return reflectable(t.Key(), path) && reflectable(t.Elem(), path)
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Struct:
		if path[t] {
			return false
		}
		path[t] = true
		defer delete(path, t)

		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() && !f.Anonymous {
				continue
			}
			if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name == "-" {
				continue
			}
			if !reflectable(f.Type, path) {
				return false
			}
		}
	}
	return true
}
