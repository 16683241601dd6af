// Package formkit ties form state and validation together for HTTP handlers.
//
// The heavy lifting lives in the sub-packages:
//
//   - pkg/validator resolves rule definitions ("required|min:3", rule lists,
//     rule maps, nested schemas) and runs them against values.
//   - pkg/form keeps field values, touched and dirty status, errors and
//     submission state, and validates through a validator.Engine.
//   - pkg/i18n holds the message catalogs used for localized messages.
//   - binder decodes request bodies and query strings into form values.
//
// This package adds the glue: Bind fills a form from a request, and
// ValidationError collects field messages from a form, a schema result or an
// error returned by form.Submit.
//
// Basic Usage:
//
//	engine, err := validator.NewFromEnv(ctx, "FORMKIT_")
//	if err != nil {
//		return err
//	}
//
//	f := form.New(
//		form.WithEngine(engine),
//		form.WithSchema(validator.Schema{
//			"email":    validator.Expr("required|email"),
//			"password": validator.Expr("required|min:8"),
//		}),
//	)
//
//	if err := formkit.Bind(r, f); err != nil {
//		http.Error(w, err.Error(), http.StatusBadRequest)
//		return
//	}
//
//	err = f.Submit(r.Context(), createAccount)
//	if verr, ok := formkit.AsValidationError(err); ok {
//		render(w, verr) // field -> messages
//		return
//	}
//
// Localized messages are picked from the request locale:
//
//	ctx := i18n.SetLocale(r.Context(), "de")
package formkit
