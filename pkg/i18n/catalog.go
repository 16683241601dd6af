package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLanguage is the language used when none is configured.
const DefaultLanguage = "en"

// placeholderRegex matches %{name} placeholders.
var placeholderRegex = regexp.MustCompile(`%\{([^{}]+)\}`)

// Catalog holds messages for several languages. It is safe for concurrent use.
type Catalog struct {
	mu          sync.RWMutex
	messages    map[string]map[string]any
	defaultLang string
	logMissing  bool
	logger      *slog.Logger

	// rebuilt whenever the language set changes
	candidates []string
	matcher    language.Matcher
}

// NewCatalog loads messages from src and returns a ready catalog.
func NewCatalog(ctx context.Context, src Source, opts ...Option) (*Catalog, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	c := &Catalog{
		messages:    make(map[string]map[string]any),
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, err := language.Parse(c.defaultLang); err != nil {
		return nil, fmt.Errorf("%w: default language %q: %w", ErrInvalidLanguage, c.defaultLang, err)
	}

	loaded, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, messages := range loaded {
		if err := c.add(lang, messages); err != nil {
			return nil, err
		}
	}
	c.rebuildMatcher()

	c.logger.InfoContext(ctx, "message catalog loaded",
		slog.Any("languages", c.languages()),
		slog.String("default_language", c.defaultLang),
	)
	return c, nil
}

// DefaultLanguage returns the fallback language.
func (c *Catalog) DefaultLanguage() string {
	return c.defaultLang
}

// Languages returns the loaded languages in sorted order.
func (c *Catalog) Languages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.languages()
}

func (c *Catalog) languages() []string {
	out := make([]string, 0, len(c.messages))
	for lang := range c.messages {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Add merges messages for lang into the catalog.
func (c *Catalog) Add(lang string, messages map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.add(lang, messages); err != nil {
		return err
	}
	c.rebuildMatcher()
	return nil
}

func (c *Catalog) add(lang string, messages map[string]any) error {
	if _, err := language.Parse(lang); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidLanguage, lang, err)
	}
	if c.messages[lang] == nil {
		c.messages[lang] = make(map[string]any)
	}
	mergeMessages(c.messages[lang], messages)
	return nil
}

// rebuildMatcher must be called with the write lock held or before the
// catalog is shared. The default language is always candidate zero so the
// matcher falls back to it.
func (c *Catalog) rebuildMatcher() {
	candidates := make([]string, 0, len(c.messages)+1)
	candidates = append(candidates, c.defaultLang)
	for lang := range c.messages {
		if lang != c.defaultLang {
			candidates = append(candidates, lang)
		}
	}
	sort.Strings(candidates[1:])

	tags := make([]language.Tag, len(candidates))
	for i, name := range candidates {
		tags[i] = language.Make(name)
	}
	c.candidates = candidates
	c.matcher = language.NewMatcher(tags)
}

// Match returns the catalog language that best serves lang. Unknown or
// malformed languages resolve to the default language.
func (c *Catalog) Match(lang string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.match(lang)
}

func (c *Catalog) match(lang string) string {
	if lang == "" {
		return c.defaultLang
	}
	if _, ok := c.messages[lang]; ok {
		return lang
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return c.defaultLang
	}
	return c.best(tag)
}

func (c *Catalog) best(tags ...language.Tag) string {
	_, idx, confidence := c.matcher.Match(tags...)
	if confidence == language.No || idx >= len(c.candidates) {
		return c.defaultLang
	}
	return c.candidates[idx]
}

// MatchAcceptLanguage picks the best catalog language for an
// Accept-Language header value.
func (c *Catalog) MatchAcceptLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return c.defaultLang
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.best(tags...)
}

// Lookup returns the raw message for a dot-separated key. The matched
// language is tried first, then the default language.
func (c *Catalog) Lookup(lang, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	matched := c.match(lang)
	candidates := []string{matched}
	if lang != "" && lang != matched {
		candidates = []string{lang, matched}
	}
	if matched != c.defaultLang {
		candidates = append(candidates, c.defaultLang)
	}

	for _, candidate := range candidates {
		messages, ok := c.messages[candidate]
		if !ok {
			continue
		}
		if msg, ok := lookupKey(messages, key); ok {
			return msg, true
		}
	}

	if c.logMissing {
		c.logger.Debug("message not found",
			slog.String("language", lang),
			slog.String("key", key),
		)
	}
	return "", false
}

// Has reports whether a message exists for key in lang or its fallbacks.
func (c *Catalog) Has(lang, key string) bool {
	_, ok := c.Lookup(lang, key)
	return ok
}

// Format looks up key and replaces %{name} placeholders from params.
// Unknown placeholders are kept verbatim.
func (c *Catalog) Format(lang, key string, params map[string]string) (string, bool) {
	msg, ok := c.Lookup(lang, key)
	if !ok {
		return "", false
	}
	return Interpolate(msg, params), true
}

// Interpolate replaces %{name} placeholders in msg.
func Interpolate(msg string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(msg, "%{") {
		return msg
	}
	return placeholderRegex.ReplaceAllStringFunc(msg, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := params[name]; ok {
			return val
		}
		return match
	})
}

// lookupKey walks nested maps along a dot-separated key. Only string leaves
// are returned.
func lookupKey(messages map[string]any, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	if val, ok := messages[key]; ok {
		s, isString := val.(string)
		return s, isString
	}

	current := messages
	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, isString := val.(string)
			return s, isString
		}
		next, ok := normalizeMap(val)
		if !ok {
			return "", false
		}
		current = next
	}
	return "", false
}
