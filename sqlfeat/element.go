package sqlfeat

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"

	"github.com/viant/featspace/feature"
)

// asElement decodes a TEXT or BLOB SQL argument holding a JSON object into a
// feature.Element, coercing JSON number shapes to the schema's value types.
// A nil argument decodes to a nil element (SQL NULL passthrough).
func asElement(space *feature.Space, arg driver.Value) (feature.Element, error) {
	var data []byte
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil, fmt.Errorf("sqlfeat: unsupported argument type %T for element; want JSON TEXT or BLOB", arg)
	}
	return DecodeElement(space, data)
}

// DecodeElement parses a JSON object into an element of the given space.
// Values are coerced per the declared value types: JSON numbers become
// float64 or int64, JSON arrays of numbers become []float32. Features absent
// from the JSON stay absent from the element, so the engine's MissingFeature
// check still applies.
func DecodeElement(space *feature.Space, data []byte) (feature.Element, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("sqlfeat: element is not a JSON object: %w", err)
	}
	elem := make(feature.Element, len(raw))
	for _, def := range space.Features() {
		v, ok := raw[def.Name]
		if !ok {
			continue
		}
		coerced, err := coerceValue(def, v)
		if err != nil {
			return nil, err
		}
		elem[def.Name] = coerced
	}
	return elem, nil
}

func coerceValue(def feature.Definition, v any) (any, error) {
	switch def.Type {
	case feature.RealScalar:
		if f, ok := v.(float64); ok {
			return f, nil
		}
	case feature.IntScalar:
		if f, ok := v.(float64); ok {
			if f != math.Trunc(f) {
				return nil, fmt.Errorf("sqlfeat: %q: %v is not an integer", def.Name, f)
			}
			return int64(f), nil
		}
	case feature.Categorical:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case feature.Boolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case feature.Vector:
		arr, ok := v.([]any)
		if !ok {
			break
		}
		vec := make([]float32, len(arr))
		for i, c := range arr {
			f, ok := c.(float64)
			if !ok {
				return nil, fmt.Errorf("sqlfeat: %q: component %d is %T, want number", def.Name, i, c)
			}
			vec[i] = float32(f)
		}
		return vec, nil
	}
	return nil, fmt.Errorf("sqlfeat: %q: got JSON %T, want %s", def.Name, v, def.Type)
}
