package tool

import (
	"errors"
	"fmt"

	"github.com/casualjim/arggpt/docstring"
	"github.com/casualjim/arggpt/pkg/reflectx"
	"github.com/casualjim/arggpt/typeschema"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// NoDescription is the description of a function without one.
const NoDescription = "No description available."

// Inspector derives the schema of a single function from its signature and doc comment.
type Inspector struct {
	def      Definition
	sig      *signature
	sections docstring.Sections
}

// Inspect creates a Definition for fn and returns its Inspector.
func Inspect(fn any, options ...Option) (*Inspector, error) {
	if !reflectx.IsFunction(fn) {
		return nil, errorf(ErrInvalidInput, "", "provided value of type %T is not callable", fn)
	}
	def, err := New(fn, options...)
	if err != nil {
		return nil, err
	}
	return NewInspector(def)
}

// NewInspector returns the Inspector for def. The doc comment is parsed once, here.
func NewInspector(def Definition) (*Inspector, error) {
	sig, err := def.signature()
	if err != nil {
		return nil, err
	}

	sections := docstring.Parse(def.Doc)
	var missing []error
	for _, name := range def.RequiredSections {
		if _, ok := sections[name]; !ok {
			missing = append(missing, fmt.Errorf("missing required doc section %q", name))
		}
	}
	if err := errors.Join(missing...); err != nil {
		return nil, NewError(ErrInvalidInput, def.Name, err)
	}

	return &Inspector{def: def, sig: sig, sections: sections}, nil
}

// Definition returns the inspected definition.
func (i *Inspector) Definition() Definition {
	return i.def
}

// Description returns the explicit description, the Description doc section or NoDescription.
func (i *Inspector) Description() string {
	if i.def.Description != "" {
		return i.def.Description
	}
	if sec, ok := i.sections[docstring.DescriptionSection]; ok && sec.Content != "" {
		return sec.Content
	}
	return NoDescription
}

// ParameterInfo returns the parameter object schema. Properties follow signature
// order, parameters without a default are required.
func (i *Inspector) ParameterInfo() ParameterSchema {
	var descriptions map[string]string
	if sec, ok := i.sections.Lookup(docstring.ArgumentSections...); ok {
		descriptions = docstring.ParameterDescriptions(sec.Content)
	}

	result := ParameterSchema{
		Type:       "object",
		Properties: orderedmap.New[string, *jsonschema.Schema](),
		Required:   []string{},
	}
	for _, p := range i.sig.params {
		schema := typeschema.Translate(typeschema.Of(p.typ), descriptions[p.name])
		if value, ok := i.def.Defaults[p.name]; ok {
			setDefault(schema, value)
		} else {
			result.Required = append(result.Required, p.name)
		}
		result.Properties.Set(p.name, schema)
	}
	return result
}

// setDefault records value as the schema default. Schema.Default drops a nil
// value when marshaled, so an explicit null goes through Extras.
func setDefault(schema *jsonschema.Schema, value any) {
	if value != nil {
		schema.Default = value
		return
	}
	if schema.Extras == nil {
		schema.Extras = make(map[string]any, 1)
	}
	schema.Extras["default"] = nil
}

// ReturnInfo returns the schema of the function result, or nil when the function
// has no result other than an error. A Returns section alone doesn't produce one.
func (i *Inspector) ReturnInfo() *jsonschema.Schema {
	if i.sig.result == nil {
		return nil
	}
	var description string
	if sec, ok := i.sections.Lookup(docstring.ReturnSections...); ok {
		description = sec.Content
	}
	return typeschema.Translate(typeschema.Of(i.sig.result), description)
}

// Schema assembles the complete descriptor. It's rebuilt on every call.
func (i *Inspector) Schema() SchemaDescriptor {
	return SchemaDescriptor{
		Name:        i.def.Name,
		Description: i.Description(),
		Parameters:  i.ParameterInfo(),
		Returns:     i.ReturnInfo(),
	}
}
