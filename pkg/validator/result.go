package validator

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Result is the verdict for a single field. Valid is true exactly when Errors
// is empty.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// NewResult builds a result from the collected messages.
func NewResult(messages ...string) Result {
	if len(messages) == 0 {
		return Result{Valid: true, Errors: []string{}}
	}
	return Result{Valid: false, Errors: slices.Clone(messages)}
}

// FirstError returns the first message, or an empty string for a valid result.
func (r Result) FirstError() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0]
}

// SchemaResult maps field paths to their results.
type SchemaResult map[string]Result

// Valid reports whether every field passed.
func (s SchemaResult) Valid() bool {
	for _, r := range s {
		if !r.Valid {
			return false
		}
	}
	return true
}

// Paths returns the validated paths in lexical order.
func (s SchemaResult) Paths() []string {
	return slices.Sorted(maps.Keys(s))
}

// Errors returns the messages of failing fields only.
func (s SchemaResult) Errors() map[string][]string {
	out := make(map[string][]string)
	for path, r := range s {
		if !r.Valid {
			out[path] = slices.Clone(r.Errors)
		}
	}
	return out
}

// FirstErrors returns the first message of each failing field.
func (s SchemaResult) FirstErrors() map[string]string {
	out := make(map[string]string)
	for path, r := range s {
		if !r.Valid {
			out[path] = r.FirstError()
		}
	}
	return out
}

// Err converts the failures into a ValidationErrors error, or nil when all
// fields are valid.
func (s SchemaResult) Err() error {
	var verrs ValidationErrors
	for _, path := range s.Paths() {
		for _, msg := range s[path].Errors {
			verrs.Add(ValidationError{Field: path, Message: msg})
		}
	}
	if verrs.IsEmpty() {
		return nil
	}
	return verrs
}

// ValidationError is a single field failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a list of field failures usable as an error.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ErrValidationFailed.Error()
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidationFailed) hold for validation errors.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// ExtractValidationErrors extracts ValidationErrors from an error chain.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var verrs ValidationErrors
	return errors.As(err, &verrs)
}
