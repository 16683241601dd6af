// Package form keeps the state of a single form: field values, touched and
// dirty status, validation errors and submission progress.
//
// A Form is safe for concurrent use. Rules come from a form-level schema,
// from definitions attached with Register, or both; when a path has a schema
// entry it takes precedence over the registered definition. Validation runs
// through a validator.Engine without holding the form lock, and a field
// validation that finishes after a newer one for the same path is discarded.
//
//	f := form.New(
//	    form.WithInitialValues(map[string]any{"email": ""}),
//	    form.WithSchema(validator.Schema{
//	        "email":    validator.Expr("required|email"),
//	        "password": validator.Expr("required|min:8"),
//	    }),
//	)
//	_ = f.Register("email", nil, form.FieldOptions{
//	    Label:     "E-mail",
//	    Modifiers: []sanitizer.Modifier{sanitizer.Email},
//	})
//
//	_ = f.SetFieldValue(ctx, "email", " Jane@Example.com ")
//	err := f.Submit(ctx, func(ctx context.Context, values map[string]any) error {
//	    return signup(ctx, values)
//	})
//	if errors.Is(err, form.ErrInvalidForm) {
//	    render(f.Errors())
//	}
//
// Values are stored as plain trees of map[string]any and []any. Typed slices
// and string-keyed maps are converted on the way in, and every read returns a
// deep copy.
package form
