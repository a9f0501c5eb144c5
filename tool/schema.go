package tool

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ParameterSchema is the object schema of a function's parameters.
type ParameterSchema struct {
	Type       string                                           `json:"type"`
	Properties *orderedmap.OrderedMap[string, *jsonschema.Schema] `json:"properties"`
	Required   []string                                         `json:"required"`
}

// MarshalJSON always emits properties and required, as an empty object and array when unset.
func (p ParameterSchema) MarshalJSON() ([]byte, error) {
	type plain ParameterSchema
	out := plain(p)
	if out.Type == "" {
		out.Type = "object"
	}
	if out.Properties == nil {
		out.Properties = orderedmap.New[string, *jsonschema.Schema]()
	}
	if out.Required == nil {
		out.Required = []string{}
	}
	return json.Marshal(out)
}

// SchemaDescriptor is the function-calling description of one function.
type SchemaDescriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  ParameterSchema    `json:"parameters"`
	Returns     *jsonschema.Schema `json:"returns,omitempty"`
}

// Tool is the provider's tool envelope.
type Tool struct {
	Type     string           `json:"type"`
	Function SchemaDescriptor `json:"function"`
}

// Schema inspects the definition and returns its descriptor.
func (d Definition) Schema() (SchemaDescriptor, error) {
	inspector, err := NewInspector(d)
	if err != nil {
		return SchemaDescriptor{}, err
	}
	return inspector.Schema(), nil
}

// Assemble wraps every definition into a function tool envelope.
func Assemble(defs ...Definition) ([]Tool, error) {
	tools := make([]Tool, 0, len(defs))
	var errs []error
	for _, def := range defs {
		schema, err := def.Schema()
		if err != nil {
			errs = append(errs, fmt.Errorf("tool %q: %w", def.Name, err))
			continue
		}
		tools = append(tools, Tool{Type: "function", Function: schema})
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return tools, nil
}
