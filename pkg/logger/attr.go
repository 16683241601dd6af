package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Field records a form field path under the key "field".
// If path is empty, it returns an empty Attr.
func Field(path string) slog.Attr {
	if path == "" {
		return slog.Attr{}
	}
	return slog.String("field", path)
}

// Fields records several field paths under the key "fields".
func Fields(paths ...string) slog.Attr {
	return slog.Any("fields", paths)
}

// Rule records a validation rule name under the key "rule".
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// Locale records a language code under the key "locale".
// If locale is empty, it returns an empty Attr.
func Locale(locale string) slog.Attr {
	if locale == "" {
		return slog.Attr{}
	}
	return slog.String("locale", locale)
}

// Valid records a validation outcome under the key "valid".
func Valid(ok bool) slog.Attr {
	return slog.Bool("valid", ok)
}

// Count records a number of items under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
