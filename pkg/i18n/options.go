package i18n

import (
	"io"
	"log/slog"
)

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaultLanguage sets the language used when the requested one is not
// available. Defaults to DefaultLanguage.
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) {
		if lang != "" {
			c.defaultLang = lang
		}
	}
}

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMissingLogging controls whether lookups of missing keys are logged at
// debug level. Disabled by default.
func WithMissingLogging(enabled bool) Option {
	return func(c *Catalog) {
		c.logMissing = enabled
	}
}

// WithNoLogging disables all logging.
func WithNoLogging() Option {
	return func(c *Catalog) {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		c.logMissing = false
	}
}
