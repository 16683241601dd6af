package binder_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/binder"
)

func TestValues(t *testing.T) {
	t.Parallel()

	got, err := binder.Values(url.Values{
		"email":        {"jane@example.com"},
		"user.name":    {"Jane"},
		"items[0].sku": {"A1"},
		"items[1].sku": {"B2"},
		"tags[]":       {"go"},
		"roles":        {"admin", "editor"},
		"empty":        {},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"email": "jane@example.com",
		"user":  map[string]any{"name": "Jane"},
		"items": []any{
			map[string]any{"sku": "A1"},
			map[string]any{"sku": "B2"},
		},
		"tags":  []any{"go"},
		"roles": []any{"admin", "editor"},
	}, got)

	_, err = binder.Values(url.Values{"user..name": {"x"}})
	require.ErrorIs(t, err, binder.ErrInvalidForm)
}

func TestValues_IndexLimit(t *testing.T) {
	t.Parallel()

	got, err := binder.Values(url.Values{
		fmt.Sprintf("items[%d]", binder.MaxIndex): {"last"},
	})
	require.NoError(t, err)
	items, ok := got["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, binder.MaxIndex+1)

	for _, key := range []string{
		"a[20000000]",
		fmt.Sprintf("a[%d].name", binder.MaxIndex+1),
		"roles.20000000",
	} {
		t.Run(key, func(t *testing.T) {
			t.Parallel()
			_, err := binder.Values(url.Values{key: {"x"}, "roles": {"admin", "editor"}})
			require.ErrorIs(t, err, binder.ErrInvalidForm)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/?"+url.Values{"a[20000000]": {"x"}}.Encode(), nil)
	_, err = binder.Query(req)
	require.ErrorIs(t, err, binder.ErrInvalidQuery)
	require.ErrorIs(t, err, binder.ErrInvalidForm)
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		body := url.Values{"user.name": {"Jane"}, "tags[]": {"a", "b"}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/signup?ignored=1", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")

		got, err := binder.Form(req)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"user": map[string]any{"name": "Jane"},
			"tags": []any{"a", "b"},
		}, got)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("email", "jane@example.com"))
		require.NoError(t, mw.WriteField("address.zip", "10115"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		got, err := binder.Form(req)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"email":   "jane@example.com",
			"address": map[string]any{"zip": "10115"},
		}, got)
	})

	t.Run("content type errors", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=b"))
		_, err := binder.Form(req)
		require.ErrorIs(t, err, binder.ErrMissingContentType)

		req.Header.Set("Content-Type", "text/plain")
		_, err = binder.Form(req)
		require.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    map[string]any
		wantErr error
	}{
		{"object", `{"email":"jane@example.com","age":30,"tags":["a"]}`, map[string]any{
			"email": "jane@example.com",
			"age":   float64(30),
			"tags":  []any{"a"},
		}, nil},
		{"empty body", ``, nil, binder.ErrInvalidJSON},
		{"null", `null`, nil, binder.ErrInvalidJSON},
		{"array", `[1,2]`, nil, binder.ErrInvalidJSON},
		{"malformed", `{"email":`, nil, binder.ErrInvalidJSON},
		{"trailing data", `{"a":1} {"b":2}`, nil, binder.ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			got, err := binder.JSON(req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequest(t *testing.T) {
	t.Parallel()

	get := httptest.NewRequest(http.MethodGet, "/search?q=go&filters.lang=de", nil)
	got, err := binder.Request(get)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"q": "go", "filters": map[string]any{"lang": "de"}}, got)

	bad := httptest.NewRequest(http.MethodGet, "/search?a..b=1", nil)
	_, err = binder.Request(bad)
	require.ErrorIs(t, err, binder.ErrInvalidQuery)

	post := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"q":"go"}`))
	post.Header.Set("Content-Type", "application/json")
	got, err = binder.Request(post)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"q": "go"}, got)

	noType := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
	_, err = binder.Request(noType)
	require.ErrorIs(t, err, binder.ErrMissingContentType)

	xml := httptest.NewRequest(http.MethodPut, "/", strings.NewReader("<a/>"))
	xml.Header.Set("Content-Type", "application/xml")
	_, err = binder.Request(xml)
	require.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
}
