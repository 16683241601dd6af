package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Segment is one step of a field path: a map key or a list index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path is a parsed field path such as "user.emails[0]".
type Path []Segment

// IsNotNestedPath reports whether the path is wrapped in brackets, which marks
// the whole string as a single literal key: "[user.name]" addresses the key
// "user.name", not the "name" key of "user".
func IsNotNestedPath(path string) bool {
	if len(path) < 3 || path[0] != '[' || path[len(path)-1] != ']' {
		return false
	}
	inner := path[1 : len(path)-1]
	if strings.ContainsAny(inner, "[]") {
		return false
	}
	_, err := strconv.Atoi(inner)
	return err != nil
}

// CleanupNonNestedPath strips the brackets of a literal path.
func CleanupNonNestedPath(path string) string {
	if IsNotNestedPath(path) {
		return path[1 : len(path)-1]
	}
	return path
}

// ParsePath parses dot and bracket notation. Numeric dot segments ("items.0")
// stay keys but also address list elements during lookup. A non-numeric
// bracket group after a dot is a literal key: "user.[a.b]" addresses the
// "a.b" key of "user".
func ParsePath(path string) (Path, error) {
	if path == "" {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("%w: empty path", ErrMalformedPath)}
	}
	if IsNotNestedPath(path) {
		return Path{{Key: CleanupNonNestedPath(path)}}, nil
	}

	malformed := func(reason string) error {
		return &ConfigError{Path: path, Err: fmt.Errorf("%w: %s", ErrMalformedPath, reason)}
	}

	if strings.HasSuffix(path, ".") {
		return nil, malformed("empty segment")
	}

	var (
		segments Path
		key      strings.Builder
		// expectKey is true at the start and after a dot.
		expectKey = true
	)
	flushKey := func() error {
		if key.Len() == 0 {
			return malformed("empty segment")
		}
		segments = append(segments, Segment{Key: key.String()})
		key.Reset()
		return nil
	}

	for i := 0; i < len(path); i++ {
		switch c := path[i]; c {
		case '.':
			if key.Len() > 0 {
				if err := flushKey(); err != nil {
					return nil, err
				}
			} else if expectKey {
				return nil, malformed("empty segment")
			}
			expectKey = true
		case '[':
			// A bracket at the start or right after a dot may hold a
			// literal key; anywhere else it must hold an index.
			atKey := expectKey && key.Len() == 0
			if key.Len() > 0 {
				if err := flushKey(); err != nil {
					return nil, err
				}
			}
			end := strings.IndexByte(path[i+1:], ']')
			if end < 0 {
				return nil, malformed("unbalanced brackets")
			}
			inner := path[i+1 : i+1+end]
			if strings.ContainsRune(inner, '[') {
				return nil, malformed("unbalanced brackets")
			}
			idx, err := strconv.Atoi(inner)
			switch {
			case err != nil && atKey && inner != "":
				segments = append(segments, Segment{Key: inner})
			case err != nil || idx < 0:
				return nil, malformed(fmt.Sprintf("invalid index %q", inner))
			case atKey && len(segments) > 0:
				return nil, malformed("empty segment")
			default:
				segments = append(segments, Segment{Index: idx, IsIndex: true, Key: inner})
			}
			i += end + 1
			expectKey = false
			if i+1 < len(path) && path[i+1] != '.' && path[i+1] != '[' {
				return nil, malformed("unexpected character after index")
			}
		case ']':
			return nil, malformed("unbalanced brackets")
		default:
			key.WriteByte(c)
			expectKey = false
		}
	}
	if key.Len() > 0 {
		if err := flushKey(); err != nil {
			return nil, err
		}
	}
	if len(segments) == 0 {
		return nil, malformed("empty segment")
	}
	return segments, nil
}

// MustParsePath is like ParsePath but panics on malformed input.
func MustParsePath(path string) Path {
	p, err := ParsePath(path)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders the path in canonical form: dots between keys, brackets
// around indexes and around literal keys that contain dots or brackets.
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if seg.IsIndex {
			fmt.Fprintf(&b, "[%d]", seg.Index)
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		if strings.ContainsAny(seg.Key, ".[]") {
			b.WriteString("[" + seg.Key + "]")
			continue
		}
		b.WriteString(seg.Key)
	}
	return b.String()
}

// Lookup walks values along the path. Maps with string keys and slices are
// traversed; any missing step reports false.
func (p Path) Lookup(values map[string]any) (any, bool) {
	var current any = values
	for _, seg := range p {
		next, ok := step(current, seg)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// GetValue parses path and looks it up in values.
func GetValue(values map[string]any, path string) (any, bool, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, false, err
	}
	v, ok := p.Lookup(values)
	return v, ok, nil
}

func step(current any, seg Segment) (any, bool) {
	switch c := current.(type) {
	case nil:
		return nil, false
	case map[string]any:
		v, ok := c[seg.Key]
		return v, ok
	case []any:
		idx, ok := segIndex(seg)
		if !ok || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	}

	rv := reflect.ValueOf(current)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(seg.Key).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Slice, reflect.Array:
		idx, ok := segIndex(seg)
		if !ok || idx >= rv.Len() {
			return nil, false
		}
		return rv.Index(idx).Interface(), true
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, false
		}
		return step(rv.Elem().Interface(), seg)
	}
	return nil, false
}

func segIndex(seg Segment) (int, bool) {
	if seg.IsIndex {
		return seg.Index, true
	}
	idx, err := strconv.Atoi(seg.Key)
	return idx, err == nil && idx >= 0
}

// Set writes v at the path, creating intermediate maps and growing lists as
// needed. Existing non-container values on the way are replaced.
func (p Path) Set(values map[string]any, v any) {
	if len(p) == 0 || values == nil {
		return
	}
	setIn(values, p, v)
}

func setIn(container map[string]any, p Path, v any) {
	seg := p[0]
	if len(p) == 1 {
		container[seg.Key] = v
		return
	}
	container[seg.Key] = setChild(container[seg.Key], p[1:], v)
}

// setChild returns the updated child value for the remaining path.
func setChild(child any, p Path, v any) any {
	seg := p[0]
	if idx, ok := segIndex(seg); ok && (seg.IsIndex || isList(child)) {
		list, _ := child.([]any)
		if list == nil {
			if items, ok := elements(child); ok {
				list = items
			}
		}
		for len(list) <= idx {
			list = append(list, nil)
		}
		if len(p) == 1 {
			list[idx] = v
		} else {
			list[idx] = setChild(list[idx], p[1:], v)
		}
		return list
	}

	m, ok := child.(map[string]any)
	if !ok {
		m = make(map[string]any)
	}
	setIn(m, p, v)
	return m
}

func isList(v any) bool {
	_, ok := elements(v)
	return ok
}

// Delete removes the value at the path. List elements are set to nil rather
// than removed so sibling indexes stay stable.
func (p Path) Delete(values map[string]any) {
	if len(p) == 0 {
		return
	}
	parent, ok := Path(p[:len(p)-1]).Lookup(values)
	if !ok {
		return
	}
	last := p[len(p)-1]
	switch c := parent.(type) {
	case map[string]any:
		delete(c, last.Key)
	case []any:
		if idx, ok := segIndex(last); ok && idx < len(c) {
			c[idx] = nil
		}
	}
}

// HasPrefix reports whether p starts with prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i, seg := range prefix {
		if !sameSegment(seg, p[i]) {
			return false
		}
	}
	return true
}

func sameSegment(a, b Segment) bool {
	ai, aok := segIndex(a)
	bi, bok := segIndex(b)
	if aok && bok {
		return ai == bi
	}
	return a.Key == b.Key
}

// Join appends a child path expression to a parent path expression.
func Join(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	case strings.HasPrefix(child, "[") && !IsNotNestedPath(child):
		return parent + child
	}
	return parent + "." + child
}
