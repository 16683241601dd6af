package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := validator.LoadConfig("FORMKIT_", config.WithEnvironment(map[string]string{
		"FORMKIT_BAILS":            "false",
		"FORMKIT_LOCALE":           "de",
		"FORMKIT_CONCURRENCY":      "2",
		"FORMKIT_FALLBACK_MESSAGE": "{field} looks wrong",
		"FORMKIT_LOG_LEVEL":        "debug",
	}))
	require.NoError(t, err)
	assert.False(t, cfg.Bails)
	assert.Equal(t, "de", cfg.Locale)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "{field} looks wrong", cfg.FallbackMessage)
	assert.False(t, cfg.Logging)
	assert.Equal(t, "debug", cfg.Log.Level)

	defaults, err := validator.LoadConfig("FORMKIT_", config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	assert.True(t, defaults.Bails)
	assert.Empty(t, defaults.Locale)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		engine, err := validator.NewFromConfig(ctx, validator.Config{Bails: true})
		require.NoError(t, err)
		assert.True(t, engine.Bails())

		res, err := engine.Validate(ctx, "", validator.Expr("required"))
		require.NoError(t, err)
		assert.Equal(t, []string{"This field is required"}, res.Errors)
	})

	t.Run("locale and fallback", func(t *testing.T) {
		t.Parallel()
		reg := validator.DefaultRegistry().Clone()
		reg.Register("explode", func(context.Context, validator.FieldContext) (validator.Verdict, error) {
			panic("no")
		})

		engine, err := validator.NewFromConfig(ctx, validator.Config{
			Bails:           false,
			Locale:          "de",
			FallbackMessage: "{field} looks wrong",
		}, validator.WithRegistry(reg))
		require.NoError(t, err)
		assert.False(t, engine.Bails())

		res, err := engine.Validate(ctx, "", validator.Expr("required|explode"), validator.WithLabel("Name"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Name ist ein Pflichtfeld", "Name looks wrong"}, res.Errors)

		res, err = engine.Validate(i18n.SetLocale(ctx, "es"), "", validator.Expr("required"), validator.WithLabel("Nombre"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Nombre es obligatorio"}, res.Errors)
	})

	t.Run("invalid locale", func(t *testing.T) {
		t.Parallel()
		_, err := validator.NewFromConfig(ctx, validator.Config{Locale: "not a locale"})
		require.ErrorIs(t, err, i18n.ErrInvalidLanguage)
	})

	t.Run("logging enabled", func(t *testing.T) {
		t.Parallel()
		engine, err := validator.NewFromConfig(ctx, validator.Config{
			Bails:   true,
			Logging: true,
			Log:     logger.Config{Level: "error", Format: "text", Environment: "production"},
		})
		require.NoError(t, err)

		res, err := engine.Validate(i18n.SetLocale(ctx, "de"), "ab", validator.Expr("min:3"))
		require.NoError(t, err)
		assert.False(t, res.Valid)
	})

	t.Run("invalid log settings", func(t *testing.T) {
		t.Parallel()
		_, err := validator.NewFromConfig(ctx, validator.Config{Logging: true, Log: logger.Config{Level: "loud", Format: "json"}})
		require.Error(t, err)
	})
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("FORMKIT_TEST_BAILS", "false")
	t.Setenv("FORMKIT_TEST_CONCURRENCY", "1")

	engine, err := validator.NewFromEnv(context.Background(), "FORMKIT_TEST_")
	require.NoError(t, err)
	assert.False(t, engine.Bails())
}
