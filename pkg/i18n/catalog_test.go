package i18n_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/i18n"
)

func testMessages() i18n.MapSource {
	return i18n.MapSource{
		"en": {
			"validation": map[string]any{
				"required": "%{field} is required",
				"min":      "%{field} must be at least %{0} characters",
				"default":  "%{field} is not valid",
			},
			"greeting": "Hello",
		},
		"de": {
			"validation": map[string]any{
				"required": "%{field} ist erforderlich",
			},
		},
	}
}

func newCatalog(t *testing.T, opts ...i18n.Option) *i18n.Catalog {
	t.Helper()
	c, err := i18n.NewCatalog(context.Background(), testMessages(), opts...)
	require.NoError(t, err)
	return c
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewCatalog(context.Background(), nil)
		require.ErrorIs(t, err, i18n.ErrNilSource)
	})

	t.Run("invalid language", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewCatalog(context.Background(), i18n.MapSource{
			"not a language!": {"a": "b"},
		})
		require.ErrorIs(t, err, i18n.ErrInvalidLanguage)
	})

	t.Run("invalid default language", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewCatalog(context.Background(), testMessages(), i18n.WithDefaultLanguage("???"))
		require.ErrorIs(t, err, i18n.ErrInvalidLanguage)
	})

	t.Run("languages and default", func(t *testing.T) {
		t.Parallel()
		c := newCatalog(t, i18n.WithDefaultLanguage("de"))
		assert.Equal(t, []string{"de", "en"}, c.Languages())
		assert.Equal(t, "de", c.DefaultLanguage())
	})

	t.Run("logs loaded languages", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		newCatalog(t, i18n.WithLogger(logger))
		assert.Contains(t, buf.String(), "message catalog loaded")
	})
}

func TestCatalogLookup(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)

	tests := []struct {
		name   string
		lang   string
		key    string
		want   string
		wantOK bool
	}{
		{"exact language", "de", "validation.required", "%{field} ist erforderlich", true},
		{"regional variant", "de-AT", "validation.required", "%{field} ist erforderlich", true},
		{"falls back to default language", "de", "validation.min", "%{field} must be at least %{0} characters", true},
		{"unknown language", "fr", "greeting", "Hello", true},
		{"empty language", "", "greeting", "Hello", true},
		{"missing key", "en", "validation.nope", "", false},
		{"non string leaf", "en", "validation", "", false},
		{"empty key", "en", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := c.Lookup(tt.lang, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalogMatch(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)

	assert.Equal(t, "en", c.Match("en-GB"))
	assert.Equal(t, "de", c.Match("de-CH"))
	assert.Equal(t, "en", c.Match("ja"))
	assert.Equal(t, "en", c.Match("%%%"))
	assert.Equal(t, "de", c.MatchAcceptLanguage("de-DE,de;q=0.9,en;q=0.5"))
	assert.Equal(t, "en", c.MatchAcceptLanguage(""))
}

func TestCatalogFormat(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)

	msg, ok := c.Format("en", "validation.min", map[string]string{"field": "Name", "0": "3"})
	require.True(t, ok)
	assert.Equal(t, "Name must be at least 3 characters", msg)

	msg, ok = c.Format("en", "validation.min", map[string]string{"field": "Name"})
	require.True(t, ok)
	assert.Equal(t, "Name must be at least %{0} characters", msg)

	_, ok = c.Format("en", "missing", nil)
	assert.False(t, ok)
	assert.True(t, c.Has("de", "greeting"))
}

func TestCatalogAdd(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)

	require.NoError(t, c.Add("es", map[string]any{
		"validation": map[string]any{"required": "%{field} es obligatorio"},
	}))
	require.NoError(t, c.Add("de", map[string]any{
		"validation": map[string]any{"min": "%{field} muss mindestens %{0} Zeichen lang sein"},
	}))

	assert.Equal(t, []string{"de", "en", "es"}, c.Languages())
	assert.Equal(t, "es", c.Match("es-MX"))

	msg, ok := c.Lookup("de", "validation.required")
	require.True(t, ok, "merge keeps existing keys")
	assert.Equal(t, "%{field} ist erforderlich", msg)

	msg, ok = c.Lookup("de", "validation.min")
	require.True(t, ok)
	assert.Equal(t, "%{field} muss mindestens %{0} Zeichen lang sein", msg)

	require.ErrorIs(t, c.Add("bad language!", nil), i18n.ErrInvalidLanguage)
}

func TestCatalogConcurrentAccess(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = c.Format("de-AT", "validation.required", map[string]string{"field": "X"})
		}()
		go func() {
			defer wg.Done()
			_ = c.Add("fr", map[string]any{"greeting": "Bonjour"})
		}()
	}
	wg.Wait()

	msg, ok := c.Lookup("fr", "greeting")
	require.True(t, ok)
	assert.Equal(t, "Bonjour", msg)
}

func TestInterpolate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a b", i18n.Interpolate("%{x} %{y}", map[string]string{"x": "a", "y": "b"}))
	assert.Equal(t, "plain", i18n.Interpolate("plain", map[string]string{"x": "a"}))
	assert.Equal(t, "%{x}", i18n.Interpolate("%{x}", nil))
}

func TestLocaleContext(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, ok := i18n.LocaleFrom(ctx)
	assert.False(t, ok)
	assert.Equal(t, i18n.DefaultLanguage, i18n.GetLocale(ctx))

	ctx = i18n.SetLocale(ctx, "de")
	locale, ok := i18n.LocaleFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "de", locale)
	assert.Equal(t, "de", i18n.GetLocale(ctx))
}
