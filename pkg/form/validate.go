package form

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// SubmitFunc receives a copy of the values of a valid form.
type SubmitFunc func(ctx context.Context, values map[string]any) error

// ValidateField validates the field at path against the current values and
// stores the resulting errors. A path without rules is valid and has its
// errors cleared.
//
// When another validation of the same path starts before this one finishes,
// the older result is returned to its caller but not stored.
func (f *Form) ValidateField(ctx context.Context, path string) (validator.Result, error) {
	p, err := validator.ParsePath(path)
	if err != nil {
		return validator.Result{}, err
	}

	f.mu.Lock()
	def := f.definitionLocked(path)
	if def == nil {
		delete(f.errors, path)
		f.mu.Unlock()
		return validator.NewResult(), nil
	}
	label := f.fields[path].label
	values := cloneMap(f.values)
	seq := f.beginLocked(path)
	f.mu.Unlock()

	value, _ := p.Lookup(values)
	res, err := f.engine.Validate(ctx, value, def,
		validator.WithField(path),
		validator.WithLabel(label),
		validator.WithForm(values),
	)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.finishLocked(path, seq) {
		f.logger.DebugContext(ctx, "stale field validation discarded", logger.Field(path))
		return res, err
	}
	if err != nil {
		f.logger.WarnContext(ctx, "field validation failed", logger.Field(path), logger.Error(err))
		return res, err
	}
	f.setErrorsLocked(path, res.Errors)
	return res, nil
}

// Validate validates every path that has rules and replaces the error state
// with the results. Errors set by hand on paths without rules are cleared.
//
// A configuration error on one path leaves that path's errors untouched and
// is returned along with the results of the other paths.
func (f *Form) Validate(ctx context.Context) (validator.SchemaResult, error) {
	f.mu.Lock()
	schema := f.schemaLocked()
	labels := make(map[string]string)
	for path, fd := range f.fields {
		if fd.label != "" {
			labels[path] = fd.label
		}
	}
	values := cloneMap(f.values)
	seqs := make(map[string]uint64, len(schema))
	for path := range schema {
		seqs[path] = f.beginLocked(path)
	}
	f.mu.Unlock()

	results, err := f.engine.ValidateSchema(ctx, schema, values, validator.WithLabels(labels))

	f.mu.Lock()
	defer f.mu.Unlock()
	stale := 0
	for path, seq := range seqs {
		if !f.finishLocked(path, seq) {
			stale++
			continue
		}
		if res, ok := results[path]; ok {
			f.setErrorsLocked(path, res.Errors)
		}
	}
	if results == nil {
		f.logger.WarnContext(ctx, "form validation aborted", logger.Error(err))
		return nil, err
	}
	if err == nil {
		for path := range f.errors {
			if _, ok := schema[path]; !ok {
				delete(f.errors, path)
			}
		}
	}
	if stale > 0 {
		f.logger.DebugContext(ctx, "stale form validation results discarded", logger.Count(stale))
	}
	return results, err
}

// Submit touches every field, increments the submit count and validates the
// form. fn is called with a copy of the values only when the form is valid;
// otherwise the returned error wraps ErrInvalidForm and the failing fields as
// validator.ValidationErrors.
func (f *Form) Submit(ctx context.Context, fn SubmitFunc) error {
	f.mu.Lock()
	f.submitting++
	f.submitCount++
	for _, path := range f.pathsLocked() {
		f.touched[path] = true
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting--
		f.mu.Unlock()
	}()

	results, err := f.Validate(ctx)
	if err != nil {
		return err
	}
	if !results.Valid() {
		failing := slices.Sorted(maps.Keys(results.Errors()))
		f.logger.DebugContext(ctx, "form submission rejected", logger.Fields(failing...))
		return errors.Join(ErrInvalidForm, results.Err())
	}
	if fn == nil {
		return nil
	}
	return fn(ctx, f.Values())
}

// schemaLocked merges the form schema with registered definitions into a
// flat schema keyed by path.
func (f *Form) schemaLocked() validator.Schema {
	schema := make(validator.Schema, len(f.schema)+len(f.fields))
	for path, fd := range f.fields {
		if fd.def != nil {
			schema[path] = fd.def
		}
	}
	maps.Copy(schema, f.schema)
	return validator.Schema(schema.Flatten())
}

func (f *Form) beginLocked(path string) uint64 {
	f.seq[path]++
	f.pending[path]++
	return f.seq[path]
}

// finishLocked ends a validation and reports whether it is still the latest
// one for path.
func (f *Form) finishLocked(path string, seq uint64) bool {
	if f.pending[path]--; f.pending[path] <= 0 {
		delete(f.pending, path)
	}
	return f.seq[path] == seq
}
