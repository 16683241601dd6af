package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultMaxMemory is the in-memory limit for multipart forms.
const DefaultMaxMemory = 32 << 20

const (
	mediaJSON      = "application/json"
	mediaForm      = "application/x-www-form-urlencoded"
	mediaMultipart = "multipart/form-data"
)

// Request decodes form values from r based on its content type. Requests
// without a body (GET, HEAD, DELETE) are read from the query string.
func Request(r *http.Request) (map[string]any, error) {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return Query(r)
	}

	switch mediaType(r) {
	case "":
		return nil, fmt.Errorf("%w: expected %s, %s or %s", ErrMissingContentType, mediaJSON, mediaForm, mediaMultipart)
	case mediaJSON:
		return JSON(r)
	case mediaForm, mediaMultipart:
		return Form(r)
	default:
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType(r))
	}
}

// Form decodes an application/x-www-form-urlencoded or multipart/form-data
// body. Query parameters are not included. File parts are ignored.
func Form(r *http.Request) (map[string]any, error) {
	switch mt := mediaType(r); mt {
	case "":
		return nil, fmt.Errorf("%w: expected %s", ErrMissingContentType, mediaForm)
	case mediaForm:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
	case mediaMultipart:
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
	default:
		return nil, fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, mt, mediaForm)
	}
	return Values(r.PostForm)
}

// Query decodes the URL query string.
func Query(r *http.Request) (map[string]any, error) {
	values, err := Values(r.URL.Query())
	if err != nil {
		return nil, errors.Join(ErrInvalidQuery, err)
	}
	return values, nil
}

// JSON decodes a JSON object body.
func JSON(r *http.Request) (map[string]any, error) {
	if mt := mediaType(r); mt == "" {
		return nil, fmt.Errorf("%w: expected %s", ErrMissingContentType, mediaJSON)
	} else if mt != mediaJSON {
		return nil, fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, mt, mediaJSON)
	}

	decoder := json.NewDecoder(r.Body)
	var values map[string]any
	if err := decoder.Decode(&values); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if values == nil {
		return nil, fmt.Errorf("%w: body must be an object", ErrInvalidJSON)
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
	}
	return values, nil
}

// mediaType returns the content type without parameters.
func mediaType(r *http.Request) string {
	contentType := r.Header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
