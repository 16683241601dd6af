package form

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/sanitizer"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Form holds the state of one form. Create it with New.
type Form struct {
	mu sync.RWMutex

	engine           *validator.Engine
	schema           map[string]validator.Definition
	logger           *slog.Logger
	validateOnChange bool

	initial map[string]any
	values  map[string]any
	fields  map[string]field
	errors  map[string][]string
	touched map[string]bool

	// seq counts validation requests per path; pending counts the ones still
	// running.
	seq     map[string]uint64
	pending map[string]int

	submitting  int
	submitCount int
}

type field struct {
	def       validator.Definition
	label     string
	modifiers []sanitizer.Modifier
}

// New creates a form. Values start as a copy of the initial values.
func New(opts ...Option) *Form {
	f := &Form{
		engine:  validator.Default(),
		logger:  logger.Discard(),
		initial: map[string]any{},
		fields:  map[string]field{},
		errors:  map[string][]string{},
		touched: map[string]bool{},
		seq:     map[string]uint64{},
		pending: map[string]int{},
	}
	for _, opt := range opts {
		opt(f)
	}
	f.values = cloneMap(f.initial)
	return f
}

// Register attaches a rule definition and options to a field path. def may
// be nil for fields that only need a label or modifiers. Registering a path
// again replaces the previous registration.
func (f *Form) Register(path string, def validator.Definition, opts FieldOptions) error {
	p, err := validator.ParsePath(path)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields[path] = field{def: def, label: opts.Label, modifiers: slices.Clone(opts.Modifiers)}
	if opts.InitialValue != nil {
		if _, ok := p.Lookup(f.initial); !ok {
			p.Set(f.initial, cloneValue(opts.InitialValue))
			p.Set(f.values, cloneValue(opts.InitialValue))
		}
	}
	return nil
}

// Unregister removes a field registration along with its errors and touched
// state. The value is kept.
func (f *Form) Unregister(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.fields, path)
	delete(f.errors, path)
	delete(f.touched, path)
	f.seq[path]++
}

// Fields returns the registered paths in lexical order.
func (f *Form) Fields() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.fields))
}

// FieldValue returns a copy of the value at path.
func (f *Form) FieldValue(path string) (any, bool) {
	p, err := validator.ParsePath(path)
	if err != nil {
		return nil, false
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := p.Lookup(f.values)
	return cloneValue(v), ok
}

// Values returns a copy of all values.
func (f *Form) Values() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return cloneMap(f.values)
}

// InitialValues returns a copy of the initial values.
func (f *Form) InitialValues() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return cloneMap(f.initial)
}

// SetFieldValue sets the value at path after applying the field modifiers.
// With validate-on-change the field is validated and the returned error is
// the validation error.
func (f *Form) SetFieldValue(ctx context.Context, path string, value any) error {
	p, err := validator.ParsePath(path)
	if err != nil {
		return err
	}

	f.mu.Lock()
	if fd, ok := f.fields[path]; ok {
		value = sanitizer.Apply(value, fd.modifiers...)
	}
	p.Set(f.values, cloneValue(value))
	validate := f.validateOnChange && f.definitionLocked(path) != nil
	f.mu.Unlock()

	if validate {
		_, err = f.ValidateField(ctx, path)
	}
	return err
}

// SetValues sets each top-level key of values, then reapplies field
// modifiers. With validate-on-change the whole form is validated.
func (f *Form) SetValues(ctx context.Context, values map[string]any) error {
	f.mu.Lock()
	for k, v := range values {
		f.values[k] = cloneValue(v)
	}
	for path, fd := range f.fields {
		if len(fd.modifiers) == 0 {
			continue
		}
		p, err := validator.ParsePath(path)
		if err != nil {
			continue
		}
		if v, ok := p.Lookup(f.values); ok {
			p.Set(f.values, cloneValue(sanitizer.Apply(v, fd.modifiers...)))
		}
	}
	validate := f.validateOnChange
	f.mu.Unlock()

	if validate {
		_, err := f.Validate(ctx)
		return err
	}
	return nil
}

// Reset restores the initial values and clears errors, touched state and the
// submit count. Validations still running when Reset is called are
// discarded.
func (f *Form) Reset(opts ...ResetOption) {
	var cfg resetConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if cfg.values != nil {
		f.initial = cfg.values
	}
	f.values = cloneMap(f.initial)
	f.errors = cloneErrors(cfg.errors)
	f.touched = map[string]bool{}
	for path, touched := range cfg.touched {
		if touched {
			f.touched[path] = true
		}
	}
	if !cfg.keepSubmitCount {
		f.submitCount = 0
	}
	for path := range f.seq {
		f.seq[path]++
	}
}

// definitionLocked returns the rules for path: the schema entry if any,
// otherwise the registered definition.
func (f *Form) definitionLocked(path string) validator.Definition {
	if def, ok := f.schema[path]; ok {
		return def
	}
	return f.fields[path].def
}

// pathsLocked returns every path that has rules or a registration.
func (f *Form) pathsLocked() []string {
	paths := make(map[string]struct{}, len(f.schema)+len(f.fields))
	for path := range f.schema {
		paths[path] = struct{}{}
	}
	for path := range f.fields {
		paths[path] = struct{}{}
	}
	return slices.Sorted(maps.Keys(paths))
}
