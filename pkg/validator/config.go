package validator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Config holds engine settings read from the environment.
type Config struct {
	// Bails stops each field at its first failing rule.
	Bails bool `env:"BAILS" envDefault:"true"`
	// Locale is the default language of the bundled message catalogs. Empty
	// keeps the built-in English templates.
	Locale string `env:"LOCALE"`
	// Concurrency bounds concurrent field chains in exhaustive mode. Zero
	// keeps GOMAXPROCS.
	Concurrency int `env:"CONCURRENCY"`
	// FallbackMessage replaces the generic "{field} is not valid" message.
	FallbackMessage string `env:"FALLBACK_MESSAGE"`
	// Logging enables a stdout logger configured by Log. Rule errors are
	// discarded otherwise.
	Logging bool `env:"LOGGING"`

	Log logger.Config
}

// LoadConfig reads Config from the environment, e.g. FORMKIT_BAILS with the
// prefix "FORMKIT_".
func LoadConfig(prefix string, opts ...config.Option) (Config, error) {
	opts = append([]config.Option{config.WithPrefix(prefix)}, opts...)
	return config.Load[Config](opts...)
}

// NewFromConfig builds an engine from cfg. Options are applied after the
// settings derived from cfg and take precedence.
func NewFromConfig(ctx context.Context, cfg Config, opts ...Option) (*Engine, error) {
	base := []Option{
		WithBails(cfg.Bails),
		WithConcurrency(cfg.Concurrency),
	}

	templates := DefaultMessages()
	if cfg.FallbackMessage != "" {
		templates = NewTemplateMessages(defaultTemplates, cfg.FallbackMessage)
	}
	base = append(base, WithMessages(templates))

	if cfg.Locale != "" {
		localized, err := NewLocalizedMessages(ctx, cfg.Locale)
		if err != nil {
			return nil, fmt.Errorf("validator: loading messages for %q: %w", cfg.Locale, err)
		}
		localized.fallback = templates

		var resolver MessageResolver = localized
		if cfg.FallbackMessage != "" {
			resolver = MessageFunc(func(ctx context.Context, mc MessageContext) string {
				if mc.Rule == "" {
					return templates.Message(ctx, mc)
				}
				return localized.Message(ctx, mc)
			})
		}
		base = append(base, WithMessages(resolver))
	}

	if cfg.Logging {
		log, err := newLogger(cfg.Log)
		if err != nil {
			return nil, err
		}
		base = append(base, WithLogger(log))
	}

	return New(append(base, opts...)...), nil
}

// NewFromEnv loads Config with the given prefix and builds an engine.
func NewFromEnv(ctx context.Context, prefix string, opts ...Option) (*Engine, error) {
	cfg, err := LoadConfig(prefix)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(ctx, cfg, opts...)
}

// newLogger turns logger option panics on bad settings into errors.
func newLogger(cfg logger.Config) (log *slog.Logger, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validator: invalid log settings: %v", r)
		}
	}()
	return logger.New(
		logger.FromConfig(cfg),
		logger.WithAttr(logger.Component("validator")),
		logger.WithContextExtractors(localeFromContext),
	), nil
}

// localeFromContext adds the request locale to log records.
func localeFromContext(ctx context.Context) (slog.Attr, bool) {
	locale, ok := i18n.LocaleFrom(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.Locale(locale), true
}
