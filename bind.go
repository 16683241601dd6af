package formkit

import (
	"net/http"

	"github.com/dmitrymomot/formkit/binder"
	"github.com/dmitrymomot/formkit/pkg/form"
)

// Bind decodes r with binder.Request and sets the decoded values on f. With
// validate-on-change the form is validated using the request context.
func Bind(r *http.Request, f *form.Form) error {
	values, err := binder.Request(r)
	if err != nil {
		return err
	}
	return f.SetValues(r.Context(), values)
}
