package interpreter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/casualjim/arggpt/tool"
	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// validateArguments checks raw against the parameter schema of def. The schema
// is compiled on every call so it always reflects the current definition.
func validateArguments(def tool.Definition, raw string) error {
	schema, err := compileParameters(def)
	if err != nil {
		return tool.NewError(tool.ErrInterpretation, def.Name, err)
	}

	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return tool.NewError(tool.ErrArgumentParse, def.Name, err)
	}
	if err := schema.Validate(inst); err != nil {
		return tool.NewError(tool.ErrArgumentParse, def.Name, fmt.Errorf("arguments don't match the parameter schema: %w", err))
	}
	return nil
}

const parametersURL = "parameters.json"

func compileParameters(def tool.Definition) (*jsonschema.Schema, error) {
	inspector, err := tool.NewInspector(def)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(inspector.ParameterInfo())
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameter schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode parameter schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(parametersURL, nullableToType(doc)); err != nil {
		return nil, err
	}
	return c.Compile(parametersURL)
}

// nullableToType rewrites "nullable: true" into a type list that includes "null".
func nullableToType(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			node[k] = nullableToType(child)
		}
		if nullable, _ := node["nullable"].(bool); nullable {
			if typ, ok := node["type"].(string); ok {
				node["type"] = []any{typ, "null"}
			}
			delete(node, "nullable")
		}
		return node
	case []any:
		for i, child := range node {
			node[i] = nullableToType(child)
		}
		return node
	default:
		return v
	}
}
