package validator

import (
	"context"
	"slices"
)

// RuleFunc evaluates a single rule against the field described by fc.
//
// Returning an error (or panicking) marks the field invalid with the generic
// fallback message; the error itself goes to the engine logger. Cancellation
// errors are the exception: when the context is done the whole validation call
// returns ctx.Err().
type RuleFunc func(ctx context.Context, fc FieldContext) (Verdict, error)

// FieldContext is the read-only snapshot a rule evaluates.
type FieldContext struct {
	// Field is the field path, e.g. "user.emails[0]". Empty for standalone values.
	Field string
	// Label is the display name used in messages. Defaults to Field.
	Label string
	// Value is the current field value.
	Value any
	// Form holds all sibling values for cross-field rules. Rules must not mutate it.
	Form map[string]any
	// Rule is the name of the rule being evaluated.
	Rule string
	// Params holds the rule params with "@path" targets already resolved.
	Params Params
}

// Name returns the name used in messages: the label, then the field path.
func (fc FieldContext) Name() string {
	if fc.Label != "" {
		return fc.Label
	}
	return fc.Field
}

// Lookup reads another form value by path.
func (fc FieldContext) Lookup(path string) (any, bool) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, false
	}
	return p.Lookup(fc.Form)
}

// Verdict is the outcome of a single rule.
type Verdict struct {
	valid    bool
	messages []string
}

// Pass is a successful verdict.
func Pass() Verdict {
	return Verdict{valid: true}
}

// Fail is a failed verdict that uses the rule's default message.
func Fail() Verdict {
	return Verdict{}
}

// FailWith is a failed verdict with a custom message.
func FailWith(message string) Verdict {
	return Verdict{messages: []string{message}}
}

// Outcome builds a verdict from a validity flag and any number of messages.
// Messages of a valid outcome are dropped.
func Outcome(valid bool, messages ...string) Verdict {
	if valid {
		return Pass()
	}
	return Verdict{messages: slices.Clone(messages)}
}

// Check maps a boolean to Pass or Fail.
func Check(ok bool) Verdict {
	if ok {
		return Pass()
	}
	return Fail()
}

// Valid reports whether the verdict passed.
func (v Verdict) Valid() bool {
	return v.valid
}

// Messages returns the custom messages of a failed verdict.
func (v Verdict) Messages() []string {
	return slices.Clone(v.messages)
}

// BoolRule adapts a plain predicate into a RuleFunc.
func BoolRule(check func(value any, params Params) bool) RuleFunc {
	return func(_ context.Context, fc FieldContext) (Verdict, error) {
		return Check(check(fc.Value, fc.Params)), nil
	}
}

// definition makes RuleFunc usable as an inline Definition.
func (RuleFunc) definition() {}
