package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes message file contents into messages keyed by language.
type Parser interface {
	// Parse decodes content. The outer map is keyed by language code.
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)

	// Supports reports whether the parser handles the file extension, with or
	// without the leading dot.
	Supports(ext string) bool
}

// ParserFor returns a parser for the file name's extension, or nil.
func ParserFor(filename string) Parser {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	for _, p := range []Parser{NewYAMLParser(), NewJSONParser()} {
		if p.Supports(ext) {
			return p
		}
	}
	return nil
}

// YAMLParser parses YAML message files.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return byLanguage(data)
}

func (p *YAMLParser) Supports(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

// JSONParser parses JSON message files.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return byLanguage(data)
}

func (p *JSONParser) Supports(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

// byLanguage checks that every top-level value is a message map.
func byLanguage(data map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		messages, ok := normalizeMap(val)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrInvalidStructure, lang, val)
		}
		result[lang] = messages
	}
	return result, nil
}

// normalizeMap converts map[any]any values, as produced by some decoders for
// non-string keys, into map[string]any.
func normalizeMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out, true
	}
	return nil, false
}
