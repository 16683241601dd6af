package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Engine resolves definitions against a registry and executes them.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	registry    *Registry
	messages    MessageResolver
	bails       bool
	concurrency int
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry sets the rule registry. Default is DefaultRegistry().
func WithRegistry(r *Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithMessages sets the message resolver. Default is DefaultMessages().
func WithMessages(m MessageResolver) Option {
	return func(e *Engine) {
		if m != nil {
			e.messages = m
		}
	}
}

// WithBails selects bail-on-first-failure (true, the default) or exhaustive
// collection of every failing rule (false).
func WithBails(bails bool) Option {
	return func(e *Engine) {
		e.bails = bails
	}
}

// WithConcurrency bounds how many field chains run at once in exhaustive
// schema validation. Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithLogger sets the logger that receives rule failures (errors and
// panics). Default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry:    DefaultRegistry(),
		messages:    DefaultMessages(),
		bails:       true,
		concurrency: runtime.GOMAXPROCS(0),
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the package-level engine used by Validate and ValidateSchema.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// Registry returns the engine's rule registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Bails reports whether the engine stops at the first failing rule.
func (e *Engine) Bails() bool {
	return e.bails
}

// Normalize resolves def against the engine's registry.
func (e *Engine) Normalize(def Definition) ([]NormalizedRule, error) {
	return Normalize(e.registry, def)
}

// FieldOption describes the field being validated.
type FieldOption func(*FieldContext)

// WithField sets the field path.
func WithField(path string) FieldOption {
	return func(fc *FieldContext) {
		fc.Field = path
	}
}

// WithLabel sets the display name used in messages.
func WithLabel(label string) FieldOption {
	return func(fc *FieldContext) {
		fc.Label = label
	}
}

// WithForm provides sibling values for cross-field rules.
func WithForm(values map[string]any) FieldOption {
	return func(fc *FieldContext) {
		fc.Form = values
	}
}

// Validate runs def against value. The error is non-nil only for
// configuration mistakes and context cancellation; failing rules are
// reported in the result.
//
// A Schema definition validates value as a map of field values and returns
// the messages of all failing paths in path order. The nested paths are
// prefixed with the WithField path; the WithLabel label is not used for them.
func (e *Engine) Validate(ctx context.Context, value any, def Definition, opts ...FieldOption) (Result, error) {
	fc := FieldContext{Value: value}
	for _, opt := range opts {
		opt(&fc)
	}

	if schema, ok := def.(Schema); ok {
		return e.validateNested(ctx, schema, fc)
	}

	rules, err := e.Normalize(def)
	if err != nil {
		if fc.Field != "" {
			err = withPath(err, fc.Field)
		}
		return Result{}, err
	}
	return e.Run(ctx, rules, fc)
}

// Run executes already normalized rules in declared order. Each rule finishes
// before the next starts.
func (e *Engine) Run(ctx context.Context, rules []NormalizedRule, fc FieldContext) (Result, error) {
	var messages []string
	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		rc := fc
		rc.Rule = rule.Name
		rc.Params = rule.Params.resolve(fc.Form)

		verdict, err := e.call(ctx, rule, rc)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return Result{}, ctxErr
			}
			e.logger.ErrorContext(ctx, "validation rule failed",
				logger.Component("validator"),
				logger.Field(fc.Field),
				logger.Rule(rule.Name),
				logger.Error(err),
			)
			messages = append(messages, e.message(ctx, "", rule, fc))
			if e.bails {
				break
			}
			continue
		}
		if verdict.valid {
			continue
		}

		if len(verdict.messages) > 0 {
			messages = append(messages, verdict.messages...)
		} else {
			messages = append(messages, e.message(ctx, rule.Name, rule, fc))
		}
		if e.bails {
			break
		}
	}
	return NewResult(messages...), nil
}

// call invokes a rule, converting panics into errors.
func (e *Engine) call(ctx context.Context, rule NormalizedRule, fc FieldContext) (v Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRulePanicked, r)
		}
	}()
	return rule.Fn(ctx, fc)
}

func (e *Engine) message(ctx context.Context, ruleName string, rule NormalizedRule, fc FieldContext) string {
	name := fc.Name()
	if name == "" {
		name = defaultFieldName
	}
	return e.messages.Message(ctx, MessageContext{
		Field:  name,
		Path:   fc.Field,
		Rule:   ruleName,
		Params: rule.Params.display(),
		Value:  fc.Value,
	})
}

// validateNested validates a map value against a schema and folds the
// failures into one result. Nested paths are prefixed with the field path,
// and "@path" params resolve against the form values when they are set.
func (e *Engine) validateNested(ctx context.Context, schema Schema, fc FieldContext) (Result, error) {
	values, _ := fc.Value.(map[string]any)
	results, err := e.ValidateSchema(ctx, schema, values, func(c *schemaConfig) {
		c.prefix = fc.Field
		c.form = fc.Form
	})
	if err != nil {
		return Result{}, err
	}
	var messages []string
	for _, path := range results.Paths() {
		messages = append(messages, results[path].Errors...)
	}
	return NewResult(messages...), nil
}

// Validate runs def against value using the default engine.
func Validate(ctx context.Context, value any, def Definition, opts ...FieldOption) (Result, error) {
	return Default().Validate(ctx, value, def, opts...)
}

// ValidateSchema validates values against schema using the default engine.
func ValidateSchema(ctx context.Context, schema Schema, values map[string]any, opts ...SchemaOption) (SchemaResult, error) {
	return Default().ValidateSchema(ctx, schema, values, opts...)
}
