package validator

import (
	"context"
	"maps"
	"regexp"
	"strconv"

	"github.com/dmitrymomot/formkit/pkg/i18n"
)

// defaultFieldName stands in for {field} when a value has no name.
const defaultFieldName = "This field"

// DefaultFallbackMessage is used for rules without a template and for rules
// that returned an error.
const DefaultFallbackMessage = "{field} is not valid"

// MessageContext carries what a resolver needs to build a failure message.
type MessageContext struct {
	// Field is the display name: label, path, or "This field".
	Field string
	// Path is the field path, possibly empty.
	Path string
	// Rule is the failing rule. Empty requests the generic fallback message.
	Rule string
	// Params are the rule params as written, with "@path" shown as "path".
	Params Params
	// Value is the value that failed.
	Value any
}

// MessageResolver produces the message for a rule that failed without a
// custom message.
type MessageResolver interface {
	Message(ctx context.Context, mc MessageContext) string
}

// MessageFunc adapts a function into a MessageResolver.
type MessageFunc func(ctx context.Context, mc MessageContext) string

func (f MessageFunc) Message(ctx context.Context, mc MessageContext) string {
	return f(ctx, mc)
}

// Built-in English templates keyed by rule name.
var defaultTemplates = map[string]string{
	"required":     "{field} is required",
	"min":          "{field} must be at least {0} characters",
	"max":          "{field} may not be greater than {0} characters",
	"length":       "{field} must be exactly {0} characters long",
	"min_value":    "{field} must be {0} or more",
	"max_value":    "{field} must be {0} or less",
	"between":      "{field} must be between {0} and {1}",
	"numeric":      "{field} may only contain numeric characters",
	"integer":      "{field} must be an integer",
	"digits":       "{field} must be numeric and exactly contain {0} digits",
	"alpha":        "{field} may only contain alphabetic characters",
	"alpha_num":    "{field} may only contain alpha-numeric characters",
	"alpha_dash":   "{field} may contain alpha-numeric characters as well as dashes and underscores",
	"alpha_spaces": "{field} may only contain alphabetic characters as well as spaces",
	"email":        "{field} must be a valid email",
	"url":          "{field} must be a valid URL",
	"uuid":         "{field} must be a valid UUID",
	"ip":           "{field} must be a valid IP address",
	"regex":        "{field} format is invalid",
	"one_of":       "{field} is not a valid value",
	"not_one_of":   "{field} is not a valid value",
	"is":           "{field} is not valid",
	"is_not":       "{field} is not valid",
	"confirmed":    "{field} does not match {0}",
}

// TemplateMessages resolves messages from a rule-name keyed template table.
type TemplateMessages struct {
	templates map[string]string
	fallback  string
}

// NewTemplateMessages creates a resolver over the given templates. An empty
// fallback uses DefaultFallbackMessage.
func NewTemplateMessages(templates map[string]string, fallback string) *TemplateMessages {
	if fallback == "" {
		fallback = DefaultFallbackMessage
	}
	own := make(map[string]string, len(templates))
	maps.Copy(own, templates)
	return &TemplateMessages{templates: own, fallback: fallback}
}

// DefaultMessages returns the built-in English resolver.
func DefaultMessages() *TemplateMessages {
	return NewTemplateMessages(defaultTemplates, DefaultFallbackMessage)
}

// With returns a copy with additional or replaced templates.
func (m *TemplateMessages) With(templates map[string]string) *TemplateMessages {
	merged := maps.Clone(m.templates)
	maps.Copy(merged, templates)
	return &TemplateMessages{templates: merged, fallback: m.fallback}
}

func (m *TemplateMessages) Message(_ context.Context, mc MessageContext) string {
	tmpl, ok := m.templates[mc.Rule]
	if !ok || mc.Rule == "" {
		tmpl = m.fallback
	}
	return Interpolate(tmpl, mc)
}

var placeholderRegex = regexp.MustCompile(`\{([^{}]+)\}`)

// Interpolate replaces {field}, positional {0}, {1} and named {name}
// placeholders. Unknown placeholders are kept as written.
func Interpolate(tmpl string, mc MessageContext) string {
	values := messageValues(mc)
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if v, ok := values[match[1:len(match)-1]]; ok {
			return v
		}
		return match
	})
}

// messageValues flattens the message context into placeholder values.
func messageValues(mc MessageContext) map[string]string {
	values := map[string]string{"field": mc.Field}
	for i, arg := range mc.Params.args {
		if s, ok := ToString(arg); ok {
			values[strconv.Itoa(i)] = s
		}
	}
	for name, arg := range mc.Params.named {
		if s, ok := ToString(arg); ok {
			values[name] = s
		}
	}
	return values
}

// CatalogMessages resolves messages from an i18n catalog using the locale in
// the context, falling back to another resolver when the catalog has no
// entry. Catalog entries use the catalog placeholder syntax: %{field}, %{0}.
// An unnamed field is called by the catalog's "field" entry.
type CatalogMessages struct {
	catalog  *i18n.Catalog
	prefix   string
	fallback MessageResolver
}

// CatalogOption configures CatalogMessages.
type CatalogOption func(*CatalogMessages)

// WithKeyPrefix sets the catalog key prefix. Default is "validation".
func WithKeyPrefix(prefix string) CatalogOption {
	return func(m *CatalogMessages) {
		m.prefix = prefix
	}
}

// WithFallbackMessages sets the resolver used for missing catalog entries.
func WithFallbackMessages(r MessageResolver) CatalogOption {
	return func(m *CatalogMessages) {
		if r != nil {
			m.fallback = r
		}
	}
}

// NewCatalogMessages creates a catalog-backed resolver.
func NewCatalogMessages(catalog *i18n.Catalog, opts ...CatalogOption) *CatalogMessages {
	m := &CatalogMessages{
		catalog:  catalog,
		prefix:   "validation",
		fallback: DefaultMessages(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *CatalogMessages) Message(ctx context.Context, mc MessageContext) string {
	if m.catalog == nil {
		return m.fallback.Message(ctx, mc)
	}
	lang, ok := i18n.LocaleFrom(ctx)
	if !ok {
		lang = m.catalog.DefaultLanguage()
	}

	rule := mc.Rule
	if rule == "" {
		rule = "default"
	}
	localized := mc
	if mc.Path == "" && mc.Field == defaultFieldName {
		if name, ok := m.catalog.Lookup(lang, m.key("field")); ok {
			localized.Field = name
		}
	}
	if msg, ok := m.catalog.Format(lang, m.key(rule), messageValues(localized)); ok {
		return msg
	}
	return m.fallback.Message(ctx, mc)
}

func (m *CatalogMessages) key(name string) string {
	if m.prefix == "" {
		return name
	}
	return m.prefix + "." + name
}
