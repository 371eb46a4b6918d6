package swagger

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// RenderJSON converts an OpenAPI YAML document to JSON. Map keys are sorted,
// so the output is stable for a given input.
func RenderJSON(doc []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: empty document", ErrRender)
	}
	out, err := json.Marshal(normalize(v))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return out, nil
}

// normalize turns any map[any]any left by the YAML decoder into
// map[string]any so encoding/json accepts it.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	}
	return v
}
