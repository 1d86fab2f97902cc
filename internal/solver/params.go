// Package solver dispatches JSON requests to the numeric, symbolic and
// plotting engines and shapes their answers into wire responses.
package solver

// Request parameters arrive as a decoded JSON object, so every getter
// tolerates the types encoding/json actually produces (numbers are
// float64) plus the ones a hand-built map might carry.

// GetNumber extracts a float64 from params with type coercion.
func GetNumber(params map[string]interface{}, key string) (float64, bool) {
	val, ok := params[key]
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// GetInt extracts an integer from params.
func GetInt(params map[string]interface{}, key string) (int, bool) {
	v, ok := GetNumber(params, key)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// GetString extracts a string from params.
func GetString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	return val, ok
}

// GetBool extracts a bool from params.
func GetBool(params map[string]interface{}, key string) (bool, bool) {
	val, ok := params[key].(bool)
	return val, ok
}

// GetStrings extracts an array of strings from params.
func GetStrings(params map[string]interface{}, key string) ([]string, bool) {
	arr, ok := params[key].([]interface{})
	if !ok {
		// A hand-built map may already hold the concrete type.
		if ss, ok := params[key].([]string); ok {
			return ss, true
		}
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// GetNumbers extracts an array of numbers from params.
func GetNumbers(params map[string]interface{}, key string) ([]float64, bool) {
	arr, ok := params[key].([]interface{})
	if !ok {
		if fs, ok := params[key].([]float64); ok {
			return fs, true
		}
		return nil, false
	}
	out := make([]float64, 0, len(arr))
	for _, v := range arr {
		switch n := v.(type) {
		case float64:
			out = append(out, n)
		case float32:
			out = append(out, float64(n))
		case int:
			out = append(out, float64(n))
		case int64:
			out = append(out, float64(n))
		default:
			return nil, false
		}
	}
	return out, true
}

// GetRange extracts a two-element numeric range, falling back to def
// when the key is absent or JSON null. A present but malformed range
// reports !ok.
func GetRange(params map[string]interface{}, key string, def [2]float64) ([2]float64, bool) {
	if v, present := params[key]; !present || v == nil {
		return def, true
	}
	vals, ok := GetNumbers(params, key)
	if !ok || len(vals) != 2 {
		return def, false
	}
	return [2]float64{vals[0], vals[1]}, true
}

// stringOr returns the string under key or def when absent.
func stringOr(params map[string]interface{}, key, def string) string {
	if v, ok := GetString(params, key); ok {
		return v
	}
	return def
}

// numberOr returns the number under key or def when absent.
func numberOr(params map[string]interface{}, key string, def float64) float64 {
	if v, ok := GetNumber(params, key); ok {
		return v
	}
	return def
}

// intOr returns the integer under key or def when absent.
func intOr(params map[string]interface{}, key string, def int) int {
	if v, ok := GetInt(params, key); ok {
		return v
	}
	return def
}

// boolOr returns the bool under key or def when absent.
func boolOr(params map[string]interface{}, key string, def bool) bool {
	if v, ok := GetBool(params, key); ok {
		return v
	}
	return def
}
