// Package binder decodes HTTP request input into form values: nested
// map[string]any trees ready for form.SetValues.
//
// Form and query keys use field path syntax ("user.name", "items[0].sku",
// "tags[]"). JSON bodies must be objects.
//
//	values, err := binder.Request(r)
//	if err != nil {
//	    http.Error(w, err.Error(), http.StatusBadRequest)
//	    return
//	}
//	_ = f.SetValues(r.Context(), values)
package binder
