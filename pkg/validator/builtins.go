package validator

import (
	"context"
	"fmt"
)

// RegisterBuiltins registers every built-in rule into r, replacing rules with
// the same names.
func RegisterBuiltins(r *Registry) {
	for name, fn := range builtinRules() {
		r.Register(name, fn)
	}
}

func builtinRules() map[string]RuleFunc {
	return map[string]RuleFunc{
		// string_rules.go
		"required":     required,
		"min":          optional(minLength),
		"max":          optional(maxLength),
		"length":       optional(exactLength),
		"alpha":        optional(matchEvery(alphaRegex)),
		"alpha_num":    optional(matchEvery(alphaNumRegex)),
		"alpha_dash":   optional(matchEvery(alphaDashRegex)),
		"alpha_spaces": optional(matchEvery(alphaSpacesRegex)),

		// numeric_rules.go
		"min_value": optional(minValue),
		"max_value": optional(maxValue),
		"between":   optional(between),
		"numeric":   optional(matchEvery(numericRegex)),
		"integer":   optional(matchEvery(integerRegex)),
		"digits":    optional(digits),

		// format_rules.go
		"email": optional(everyString(isEmail)),
		"url":   optional(validURL),
		"uuid":  optional(everyString(isUUID)),
		"ip":    optional(validIP),
		"regex": optional(matchPattern),

		// choice_rules.go
		"one_of":     optional(oneOf),
		"not_one_of": optional(notOneOf),

		// comparable_rules.go
		"is":        is,
		"is_not":    isNot,
		"confirmed": confirmed,
	}
}

// checkFunc is the shape of most built-in rules: a predicate over the value
// that may reject its params.
type checkFunc func(value any, params Params) (bool, error)

// optional wraps a check so empty values pass.
func optional(check checkFunc) RuleFunc {
	return func(_ context.Context, fc FieldContext) (Verdict, error) {
		if IsEmpty(fc.Value) {
			return Pass(), nil
		}
		ok, err := check(fc.Value, fc.Params)
		if err != nil {
			return Fail(), fmt.Errorf("rule %q: %w", fc.Rule, err)
		}
		return Check(ok), nil
	}
}

// everyString applies a string predicate to the value or to each element of a
// list value. Non-string values fail.
func everyString(check func(string) bool) checkFunc {
	return func(value any, _ Params) (bool, error) {
		return every(value, func(item any) bool {
			s, ok := ToString(item)
			return ok && check(s)
		}), nil
	}
}

func paramErr(name string) error {
	return fmt.Errorf("%w: missing or malformed %q", ErrInvalidParams, name)
}
