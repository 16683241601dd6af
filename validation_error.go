package formkit

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// ValidationError represents field validation errors.
// It's based on url.Values to leverage built-in string slice handling.
type ValidationError url.Values

// Error implements the error interface.
// Fields are listed in lexical order with their first message.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "Validation failed"
	}

	var parts []string
	for _, field := range slices.Sorted(maps.Keys(e)) {
		if messages := e[field]; len(messages) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, messages[0]))
		}
	}

	return fmt.Sprintf("validation error: %s", strings.Join(parts, ", "))
}

// Is makes errors.Is(err, validator.ErrValidationFailed) and
// errors.Is(err, form.ErrInvalidForm) hold.
func (e ValidationError) Is(target error) bool {
	return target == validator.ErrValidationFailed || target == form.ErrInvalidForm
}

// NewValidationError creates a new validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// FromResult collects the messages of every failing path.
func FromResult(results validator.SchemaResult) ValidationError {
	e := NewValidationError()
	for path, messages := range results.Errors() {
		e[path] = messages
	}
	return e
}

// FromForm collects the errors the form currently holds.
func FromForm(f *form.Form) ValidationError {
	e := NewValidationError()
	maps.Copy(e, f.ErrorBag())
	return e
}

// AsValidationError extracts field messages from err. It understands
// ValidationError itself and validator.ValidationErrors, including the error
// returned by form.Submit for an invalid form.
func AsValidationError(err error) (ValidationError, bool) {
	if err == nil {
		return nil, false
	}

	var e ValidationError
	if errors.As(err, &e) {
		return e, true
	}

	verrs := validator.ExtractValidationErrors(err)
	if verrs == nil {
		return nil, false
	}
	e = NewValidationError()
	for _, ve := range verrs {
		e.Add(ve.Field, ve.Message)
	}
	return e, true
}

// Add adds an error message for a field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first error message for a field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// All returns every error message for a field.
func (e ValidationError) All(field string) []string {
	return slices.Clone(e[field])
}

// Has checks if a field has any errors.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty returns true if there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// Fields returns the fields with errors in lexical order.
func (e ValidationError) Fields() []string {
	return slices.Sorted(maps.Keys(e))
}
