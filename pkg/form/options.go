package form

import (
	"log/slog"
	"maps"

	"github.com/dmitrymomot/formkit/pkg/sanitizer"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Option configures a Form.
type Option func(*Form)

// WithInitialValues sets the values the form starts with and resets to.
func WithInitialValues(values map[string]any) Option {
	return func(f *Form) {
		f.initial = cloneMap(values)
	}
}

// WithSchema sets the form-level validation schema.
func WithSchema(schema validator.Schema) Option {
	return func(f *Form) {
		f.schema = schema.Flatten()
	}
}

// WithEngine sets the engine that runs validation. Defaults to
// validator.Default().
func WithEngine(engine *validator.Engine) Option {
	return func(f *Form) {
		if engine != nil {
			f.engine = engine
		}
	}
}

// WithValidateOnChange validates a field whenever its value is set.
func WithValidateOnChange(enabled bool) Option {
	return func(f *Form) {
		f.validateOnChange = enabled
	}
}

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// FieldOptions describes a registered field.
type FieldOptions struct {
	// Label is the display name used in messages.
	Label string
	// InitialValue is used when the initial values have nothing at the path.
	InitialValue any
	// Modifiers clean values passed to SetFieldValue and SetValues.
	Modifiers []sanitizer.Modifier
}

// ResetOption configures Reset.
type ResetOption func(*resetConfig)

type resetConfig struct {
	values          map[string]any
	errors          map[string][]string
	touched         map[string]bool
	keepSubmitCount bool
}

// ResetValues replaces the initial values before resetting to them.
func ResetValues(values map[string]any) ResetOption {
	return func(c *resetConfig) {
		c.values = cloneMap(values)
	}
}

// ResetErrors sets the errors the form holds after the reset.
func ResetErrors(errs map[string][]string) ResetOption {
	return func(c *resetConfig) {
		c.errors = errs
	}
}

// ResetTouched sets the touched state the form holds after the reset.
func ResetTouched(touched map[string]bool) ResetOption {
	return func(c *resetConfig) {
		c.touched = maps.Clone(touched)
	}
}

// KeepSubmitCount keeps the submit count instead of zeroing it.
func KeepSubmitCount() ResetOption {
	return func(c *resetConfig) {
		c.keepSubmitCount = true
	}
}
