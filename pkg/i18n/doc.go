// Package i18n provides a thread-safe message catalog used to localise
// validation messages.
//
// Messages are organised per language as nested maps and addressed with
// dot-separated keys ("validation.required"). Values may contain named
// placeholders in the form %{name}, which Format replaces from a parameter map.
//
// # Architecture
//
// A Catalog is filled from a Source. MapSource serves in-memory data, and
// FSSource reads every supported file of a directory in any fs.FS (embed.FS,
// os.DirFS, fstest.MapFS). File contents are decoded by a Parser chosen from
// the file extension: YAML (gopkg.in/yaml.v3) or JSON. Each file holds one or
// more top-level language keys:
//
//	en:
//	  validation:
//	    required: "%{field} is required"
//
// Requested languages are matched against the available ones with
// golang.org/x/text/language, so "en-GB" resolves to "en" and an unknown
// language falls back to the default language.
//
// # Usage
//
//	catalog, err := i18n.NewCatalog(ctx, i18n.NewFSSource(localesFS, "locales"),
//		i18n.WithDefaultLanguage("en"),
//	)
//	if err != nil {
//		return err
//	}
//
//	msg, ok := catalog.Format("de-AT", "validation.min", map[string]string{
//		"field": "Name",
//		"0":     "3",
//	})
//
// The locale of a request travels in the context via SetLocale and
// LocaleFrom.
//
// # Error Handling
//
// Loading errors wrap the sentinel values in errors.go so callers can use
// errors.Is, e.g. errors.Is(err, i18n.ErrNoMessages).
package i18n
