package document

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FromYAML converts a value decoded by gopkg.in/yaml.v3 into a Value.
//
// Mapping keys that are not strings are rendered the way a JSON encoder
// would render them (null, true, 42, 1.5). Composite keys, non-finite
// floats and keys that collide once rendered (1 and "1") are rejected.
func FromYAML(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case []byte:
		return String(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		return Number(strconv.FormatUint(t, 10)), nil
	case float64:
		return floatNumber(t)
	case time.Time:
		return String(t.Format(time.RFC3339Nano)), nil
	case []any:
		out := make(Array, len(t))
		for i, item := range t {
			conv, err := FromYAML(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = conv
		}
		return out, nil
	case map[string]any:
		out := make(Object, len(t))
		for k, item := range t {
			conv, err := FromYAML(item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = conv
		}
		return out, nil
	case map[any]any:
		out := make(Object, len(t))
		for k, item := range t {
			key, err := keyString(k)
			if err != nil {
				return nil, err
			}
			if _, dup := out[key]; dup {
				return nil, fmt.Errorf("duplicate mapping key %q", key)
			}
			conv, err := FromYAML(item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			out[key] = conv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported YAML value of type %T", v)
	}
}

func floatNumber(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("non-finite number %v has no JSON representation", f)
	}
	return Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

func keyString(k any) (string, error) {
	switch t := k.(type) {
	case nil:
		return "null", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float64:
		n, err := floatNumber(t)
		if err != nil {
			return "", err
		}
		return string(n.(Number)), nil
	case time.Time:
		return t.Format(time.RFC3339Nano), nil
	default:
		return "", fmt.Errorf("mapping key of type %T cannot be used as an object key", k)
	}
}
