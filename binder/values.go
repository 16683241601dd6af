package binder

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// MaxIndex is the largest list index a form key may use. Keys past it are
// rejected so a short key cannot force a huge list allocation.
const MaxIndex = 1000

// Values turns flat form keys into nested form values. Keys use field path
// syntax:
//
//	user.name=Jane            -> {"user": {"name": "Jane"}}
//	items[0].sku=A1           -> {"items": [{"sku": "A1"}]}
//	tags[]=go&tags[]=web      -> {"tags": ["go", "web"]}
//	roles=admin&roles=editor  -> {"roles": ["admin", "editor"]}
//
// A key with one value becomes a string, a key with several values or a "[]"
// suffix becomes a list. Keys are applied in lexical order. An index above
// MaxIndex, in brackets or as a numeric dot segment, fails with
// ErrInvalidForm.
func Values(vals url.Values) (map[string]any, error) {
	out := make(map[string]any, len(vals))
	for _, key := range slices.Sorted(maps.Keys(vals)) {
		name, list := strings.CutSuffix(key, "[]")
		p, err := validator.ParsePath(name)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidForm, key, err)
		}
		if err := checkIndexes(p); err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidForm, key, err)
		}

		items := vals[key]
		if list || len(items) > 1 {
			value := make([]any, len(items))
			for i, item := range items {
				value[i] = item
			}
			p.Set(out, value)
			continue
		}
		if len(items) == 1 {
			p.Set(out, items[0])
		}
	}
	return out, nil
}

// checkIndexes bounds every segment that may address a list element.
func checkIndexes(p validator.Path) error {
	for _, seg := range p {
		if idx, err := strconv.Atoi(seg.Key); err == nil && idx > MaxIndex {
			return fmt.Errorf("index %d exceeds %d", idx, MaxIndex)
		}
	}
	return nil
}
