package validator

import (
	"context"
	"embed"

	"github.com/dmitrymomot/formkit/pkg/i18n"
)

//go:embed locales/*.yaml
var localeFiles embed.FS

// LocaleSource returns the bundled message catalogs (en, de, es).
func LocaleSource() i18n.Source {
	return i18n.NewFSSource(localeFiles, "locales")
}

// NewLocalizedMessages loads the bundled catalogs, plus any extra sources,
// into a catalog and returns a resolver over it. Extra sources are merged on
// top, so they can override or add languages.
func NewLocalizedMessages(ctx context.Context, defaultLang string, extra ...i18n.Source) (*CatalogMessages, error) {
	catalog, err := i18n.NewCatalog(ctx, LocaleSource(), i18n.WithDefaultLanguage(defaultLang))
	if err != nil {
		return nil, err
	}
	for _, src := range extra {
		if src == nil {
			continue
		}
		loaded, err := src.Load(ctx)
		if err != nil {
			return nil, err
		}
		for lang, messages := range loaded {
			if err := catalog.Add(lang, messages); err != nil {
				return nil, err
			}
		}
	}
	return NewCatalogMessages(catalog), nil
}
