package i18n

import "context"

// localeContextKey is the key for storing locale in context
type localeContextKey struct{}

// SetLocale stores the locale in the context.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// LocaleFrom returns the locale stored in the context, if any.
func LocaleFrom(ctx context.Context) (string, bool) {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	return locale, locale != ""
}

// GetLocale returns the locale from the context, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if locale, ok := LocaleFrom(ctx); ok {
		return locale
	}
	return DefaultLanguage
}
