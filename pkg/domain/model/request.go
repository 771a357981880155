package model

// DispatchRequest is a single tool invocation: one of the named operations
// plus its parameter payload. Stateless; one instance per call.
type DispatchRequest struct {
	Operation  string `json:"operation"`
	Parameters Params `json:"parameters"`
}

// Params is the loosely-typed parameter payload of a dispatch request.
// Values arrive from JSON decoding or from an LLM tool call, so numbers are
// float64 and arrays are []any. The accessors coerce to the expected Go
// types and fall back to the given default when the key is absent or of the
// wrong type.
type Params map[string]any

// Has reports whether the key is present with a non-nil value.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// String returns the string value for key, or def.
func (p Params) String(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Int returns the integer value for key, or def. JSON numbers decode as
// float64, so both representations are accepted.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return def
}

// Int64 returns the 64-bit integer value for key, or def.
func (p Params) Int64(key string, def int64) int64 {
	switch v := p[key].(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	}
	return def
}

// Bool returns the boolean value for key, or def.
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

// StringSlice returns the string array value for key, or nil.
func (p Params) StringSlice(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Object returns the nested object value for key, or nil.
func (p Params) Object(key string) map[string]any {
	if v, ok := p[key].(map[string]any); ok {
		return v
	}
	return nil
}

// ObjectSlice returns the array-of-objects value for key, or nil.
func (p Params) ObjectSlice(key string) []map[string]any {
	items, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}
