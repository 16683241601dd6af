// Package validator resolves rule definitions and runs them against field
// values, producing a verdict made of a validity flag and an ordered list of
// human-readable messages.
//
// A rule definition can be expressed in several shapes, all of which are
// normalized once into an ordered list of resolved rule functions before any
// value is evaluated:
//
//   - Expr:      pipe-delimited string expression, e.g. "required|min:3"
//   - Rule:      named reference with params, e.g. Named("between", 1, 10)
//   - RuleFunc:  inline rule function
//   - Rules:     ordered list of any of the above
//   - RuleMap:   mapping of rule name to params, normalized in key order
//   - Schema:    mapping of field path to definition, used for whole forms
//
// # Architecture
//
// Named rules live in a Registry. The package keeps a process-wide default
// registry pre-populated with the built-in rules (required, min, max, email,
// between, confirmed ...); RegisterRule adds to it, and the last registration
// for a name wins. The Engine owns the execution policy: bail on first failure
// (the default) or exhaustive collection, the message resolver, the logger used
// as a side channel for misbehaving rules, and the concurrency limit for schema
// validation.
//
// Configuration mistakes (unknown rule names, malformed expressions, malformed
// schema paths) are returned as *ConfigError before any rule runs. A value that
// fails a well-formed rule is never an error: it is reported in Result.Errors.
//
// # Usage
//
//	res, err := validator.Validate(ctx, "ab", validator.Expr("required|min:3"))
//	if err != nil {
//	    // configuration problem, fix the rule definition
//	}
//	if !res.Valid {
//	    fmt.Println(res.Errors) // [This field must be at least 3 characters]
//	}
//
//	results, err := validator.ValidateSchema(ctx, validator.Schema{
//	    "email":    validator.Expr("required|email"),
//	    "password": validator.Expr("required|min:8"),
//	    "confirm":  validator.Expr("required|confirmed:@password"),
//	}, values)
//
// # Custom rules
//
//	validator.RegisterRule("even", func(ctx context.Context, fc validator.FieldContext) (validator.Verdict, error) {
//	    n, ok := validator.ToInt(fc.Value)
//	    return validator.Check(ok && n%2 == 0), nil
//	})
//
// A rule returns Pass, Fail (default message), FailWith (custom message) or
// Outcome (several messages). Returning an error or panicking marks the field
// invalid with the generic message and logs the error.
//
// # Messages
//
// Default messages come from an English template table with {field}, positional
// {0}, {1} and named param placeholders. CatalogMessages resolves messages from
// an i18n catalog using the locale stored in the context.
package validator
