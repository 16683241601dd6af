// Package logger builds *slog.Logger instances for formkit components and
// provides attribute helpers with consistent key names.
//
// New takes functional options for output format (text or json), level,
// static attributes and ContextExtractor callbacks. Extractors run on every
// record through ContextHandler, so values carried by the context, such as
// the active locale, are added without threading them through call sites.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(logger.EnvDevelopment, "signup-form"),
//	    logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//	        locale, ok := i18n.LocaleFrom(ctx)
//	        return logger.Locale(locale), ok
//	    }),
//	)
//
//	engine := validator.New(validator.WithLogger(log))
//
// Settings can also come from the environment through Config (LOG_LEVEL,
// LOG_FORMAT, APP_ENV, SERVICE_NAME) and FromConfig.
//
// # Attributes
//
// Field, Rule, Locale, Component, Error and friends return slog.Attr values.
// Helpers that take optional input return an empty Attr for zero values,
// which slog drops:
//
//	log.Info("field validated", logger.Field(path), logger.Error(err))
package logger
