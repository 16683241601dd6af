package form

import (
	"maps"
	"reflect"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// FieldMeta is the status of one field or a group of fields.
type FieldMeta struct {
	Touched bool `json:"touched"`
	Dirty   bool `json:"dirty"`
	Valid   bool `json:"valid"`
	Pending bool `json:"pending"`
	// InitialValue is only set by Meta.
	InitialValue any `json:"initialValue,omitempty"`
}

// Meta returns the status of the field at path.
func (f *Form) Meta(path string) FieldMeta {
	f.mu.RLock()
	defer f.mu.RUnlock()

	initial, _ := lookup(f.initial, path)
	return FieldMeta{
		Touched:      f.touched[path],
		Dirty:        f.dirtyLocked(path),
		Valid:        len(f.errors[path]) == 0,
		Pending:      f.pending[path] > 0,
		InitialValue: cloneValue(initial),
	}
}

// GroupMeta aggregates the status of several fields: touched, dirty and
// pending when any field is, valid when all fields are.
func (f *Form) GroupMeta(paths ...string) FieldMeta {
	f.mu.RLock()
	defer f.mu.RUnlock()

	meta := FieldMeta{Valid: true}
	for _, path := range paths {
		meta.Touched = meta.Touched || f.touched[path]
		meta.Dirty = meta.Dirty || f.dirtyLocked(path)
		meta.Valid = meta.Valid && len(f.errors[path]) == 0
		meta.Pending = meta.Pending || f.pending[path] > 0
	}
	return meta
}

// IsFieldDirty reports whether the value at path differs from its initial
// value.
func (f *Form) IsFieldDirty(path string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dirtyLocked(path)
}

// IsFieldTouched reports whether the field at path was touched.
func (f *Form) IsFieldTouched(path string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.touched[path]
}

// IsFieldValid reports whether the field at path has no errors.
func (f *Form) IsFieldValid(path string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.errors[path]) == 0
}

// IsFieldValidating reports whether a validation of path is running.
func (f *Form) IsFieldValidating(path string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pending[path] > 0
}

// IsDirty reports whether any value differs from the initial values.
func (f *Form) IsDirty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return !reflect.DeepEqual(f.values, f.initial)
}

// IsTouched reports whether any field was touched.
func (f *Form) IsTouched() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.touched) > 0
}

// IsValid reports whether the form holds no errors. A form that was never
// validated is valid unless errors were set by hand.
func (f *Form) IsValid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.errors) == 0
}

// IsValidating reports whether any validation is running.
func (f *Form) IsValidating() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.pending) > 0
}

// IsSubmitting reports whether Submit is in progress.
func (f *Form) IsSubmitting() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.submitting > 0
}

// SubmitCount returns how many times Submit was called since the last reset.
func (f *Form) SubmitCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.submitCount
}

// SetFieldTouched marks the field at path as touched or untouched.
func (f *Form) SetFieldTouched(path string, touched bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setTouchedLocked(path, touched)
}

// SetTouched sets the touched state of each given path.
func (f *Form) SetTouched(touched map[string]bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for path, t := range touched {
		f.setTouchedLocked(path, t)
	}
}

// TouchedFields returns the touched paths in lexical order.
func (f *Form) TouchedFields() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.touched))
}

// SetFieldError replaces the errors of path. No messages clears them.
func (f *Form) SetFieldError(path string, messages ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErrorsLocked(path, messages)
}

// SetErrors replaces the errors of each given path. Paths not in errs keep
// their errors.
func (f *Form) SetErrors(errs map[string][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for path, messages := range errs {
		f.setErrorsLocked(path, messages)
	}
}

// FieldError returns the first error of path, or "".
func (f *Form) FieldError(path string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if messages := f.errors[path]; len(messages) > 0 {
		return messages[0]
	}
	return ""
}

// FieldErrors returns all errors of path.
func (f *Form) FieldErrors(path string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.errors[path])
}

// Errors returns the first error of every failing field.
func (f *Form) Errors() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(f.errors))
	for path, messages := range f.errors {
		out[path] = messages[0]
	}
	return out
}

// ErrorBag returns all errors of every failing field.
func (f *Form) ErrorBag() map[string][]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return cloneErrors(f.errors)
}

func (f *Form) setErrorsLocked(path string, messages []string) {
	if len(messages) == 0 {
		delete(f.errors, path)
		return
	}
	f.errors[path] = slices.Clone(messages)
}

func (f *Form) setTouchedLocked(path string, touched bool) {
	if touched {
		f.touched[path] = true
		return
	}
	delete(f.touched, path)
}

func (f *Form) dirtyLocked(path string) bool {
	current, _ := lookup(f.values, path)
	initial, _ := lookup(f.initial, path)
	return !reflect.DeepEqual(current, initial)
}

func lookup(values map[string]any, path string) (any, bool) {
	p, err := validator.ParsePath(path)
	if err != nil {
		return nil, false
	}
	return p.Lookup(values)
}
