package form

import (
	"reflect"
	"slices"
)

// cloneValue deep-copies maps and lists, converting string-keyed maps to
// map[string]any and slices to []any. Other values are returned as is.
func cloneValue(v any) any {
	switch t := v.(type) {
	case nil, string, bool, int, int64, float64:
		return v
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []byte:
		return slices.Clone(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return []any(nil)
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = cloneValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = cloneValue(iter.Value().Interface())
		}
		return out
	}
	return v
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneErrors(errs map[string][]string) map[string][]string {
	out := make(map[string][]string, len(errs))
	for path, messages := range errs {
		if len(messages) > 0 {
			out[path] = slices.Clone(messages)
		}
	}
	return out
}
