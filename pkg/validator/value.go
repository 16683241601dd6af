package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// IsEmpty reports whether a value counts as "not provided": nil, a nil
// pointer, an empty or whitespace-only string, or an empty slice or map.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsEmpty(rv.Elem().Interface())
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	}
	return false
}

// ToString renders scalar values as strings. It reports false for nil,
// collections and other values without a natural string form.
func ToString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []byte:
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.String:
		return rv.String(), true
	case reflect.Pointer:
		if rv.IsNil() {
			return "", false
		}
		return ToString(rv.Elem().Interface())
	}
	return "", false
}

// ToFloat converts numbers and numeric strings to float64.
func ToFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.String:
		return ToFloat(rv.String())
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, false
		}
		return ToFloat(rv.Elem().Interface())
	}
	return 0, false
}

// ToInt converts integers, integral floats and integer strings to int.
func ToInt(value any) (int, bool) {
	if s, ok := value.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		return n, err == nil
	}
	f, ok := ToFloat(value)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// elements returns the items of a slice or array value, or nil when the value
// is not a list.
func elements(value any) ([]any, bool) {
	if value == nil {
		return nil, false
	}
	if list, ok := value.([]any); ok {
		return list, true
	}
	if _, ok := value.([]byte); ok {
		return nil, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// size returns the length of strings (in runes), slices, arrays and maps.
func size(value any) (int, bool) {
	if s, ok := value.(string); ok {
		return len([]rune(s)), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	case reflect.String:
		return len([]rune(rv.String())), true
	}
	return 0, false
}

// every applies check to each element of a list value, or to the value itself
// when it is not a list.
func every(value any, check func(any) bool) bool {
	if items, ok := elements(value); ok {
		for _, item := range items {
			if !check(item) {
				return false
			}
		}
		return true
	}
	return check(value)
}
