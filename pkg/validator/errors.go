package validator

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors. They signal programmer mistakes and are never folded
// into a Result.
var (
	// ErrUnknownRule is returned when a definition references a rule name that is not registered.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrMalformedExpression is returned when a rule expression cannot be parsed.
	ErrMalformedExpression = errors.New("malformed rule expression")

	// ErrMalformedPath is returned when a schema path has invalid syntax.
	ErrMalformedPath = errors.New("malformed field path")

	// ErrInvalidDefinition is returned for definition shapes the normalizer cannot resolve.
	ErrInvalidDefinition = errors.New("invalid rule definition")

	// ErrInvalidParams is returned when a rule receives params it cannot interpret.
	ErrInvalidParams = errors.New("invalid rule params")
)

// Runtime errors surfaced through the logger side channel.
var (
	// ErrRulePanicked wraps a value recovered from a panicking rule function.
	ErrRulePanicked = errors.New("validation rule panicked")

	// ErrValidationFailed is the error returned by SchemaResult.Err when no field detail is available.
	ErrValidationFailed = errors.New("validation failed")
)

// ConfigError describes a configuration mistake and where it was found.
type ConfigError struct {
	Path string
	Rule string
	Err  error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("validator: ")
	b.WriteString(e.Err.Error())
	if e.Rule != "" {
		fmt.Fprintf(&b, " %q", e.Rule)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " at path %q", e.Path)
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

func configErr(sentinel error, rule, detail string) *ConfigError {
	err := sentinel
	if detail != "" {
		err = fmt.Errorf("%w: %s", sentinel, detail)
	}
	return &ConfigError{Rule: rule, Err: err}
}

// withPath attaches the schema path to a configuration error.
func withPath(err error, path string) error {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		if cfgErr.Path == "" {
			return &ConfigError{Path: path, Rule: cfgErr.Rule, Err: cfgErr.Err}
		}
		return err
	}
	return &ConfigError{Path: path, Err: err}
}
