package sanitizer

import (
	"strconv"
	"strings"
)

// Modifier transforms a field value.
type Modifier func(value any) any

// Apply runs value through mods in order.
func Apply(value any, mods ...Modifier) any {
	for _, mod := range mods {
		if mod != nil {
			value = mod(value)
		}
	}
	return value
}

// Chain composes mods into a single reusable Modifier.
func Chain(mods ...Modifier) Modifier {
	return func(value any) any {
		return Apply(value, mods...)
	}
}

// Strings lifts a string function into a Modifier. It applies to string
// values and to the string items of []any and []string lists.
func Strings(fn func(string) string) Modifier {
	return func(value any) any {
		switch v := value.(type) {
		case string:
			return fn(v)
		case []string:
			out := make([]string, len(v))
			for i, s := range v {
				out[i] = fn(s)
			}
			return out
		case []any:
			out := make([]any, len(v))
			for i, item := range v {
				if s, ok := item.(string); ok {
					out[i] = fn(s)
					continue
				}
				out[i] = item
			}
			return out
		}
		return value
	}
}

// String modifiers.
var (
	Trim           = Strings(strings.TrimSpace)
	Lower          = Strings(strings.ToLower)
	Upper          = Strings(strings.ToUpper)
	CollapseSpaces = Strings(CollapseWhitespace)
	SingleLine     = Strings(JoinLines)
	StripTags      = Strings(StripHTML)
	Digits         = Strings(KeepDigits)
	Email          = Strings(NormalizeEmail)
)

// Number converts numeric strings to int or float64. Strings that do not
// parse are returned unchanged, so rules still see the raw input.
func Number(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return value
}

// EmptyToNil turns blank strings into nil.
func EmptyToNil(value any) any {
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	return value
}
