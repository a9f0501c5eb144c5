package jsonx

import (
	json "github.com/goccy/go-json"
)

// ToDynamicJSON converts a value into its generic JSON object form by
// round-tripping it through JSON. It fails when the value doesn't encode to a
// JSON object.
func ToDynamicJSON(val any) (map[string]any, error) {
	b, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err = json.Unmarshal(b, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]any)
	}
	return result, nil
}
