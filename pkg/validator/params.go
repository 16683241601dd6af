package validator

import (
	"maps"
	"slices"
	"strings"
)

// targetPrefix marks a positional param as a reference to another form field.
const targetPrefix = "@"

// Params holds the arguments supplied alongside a named rule: an ordered
// positional list, a set of named values, or both.
type Params struct {
	args  []any
	named map[string]any
}

// Args creates positional params.
func Args(args ...any) Params {
	if len(args) == 0 {
		return Params{}
	}
	return Params{args: slices.Clone(args)}
}

// NamedArgs creates named params.
func NamedArgs(named map[string]any) Params {
	if len(named) == 0 {
		return Params{}
	}
	return Params{named: maps.Clone(named)}
}

// Len returns the number of positional params.
func (p Params) Len() int {
	return len(p.args)
}

// IsZero reports whether no params were supplied.
func (p Params) IsZero() bool {
	return len(p.args) == 0 && len(p.named) == 0
}

// List returns a copy of the positional params.
func (p Params) List() []any {
	return slices.Clone(p.args)
}

// Names returns the named param keys in lexical order.
func (p Params) Names() []string {
	return slices.Sorted(maps.Keys(p.named))
}

// At returns the positional param at index i.
func (p Params) At(i int) (any, bool) {
	if i < 0 || i >= len(p.args) {
		return nil, false
	}
	return p.args[i], true
}

// Named returns the named param.
func (p Params) Named(name string) (any, bool) {
	v, ok := p.named[name]
	return v, ok
}

// Lookup returns the named param if present, otherwise the positional param
// at index i. Built-in rules accept both forms, e.g. "min:3" and
// RuleMap{"min": map[string]any{"length": 3}}.
func (p Params) Lookup(i int, name string) (any, bool) {
	if name != "" {
		if v, ok := p.named[name]; ok {
			return v, true
		}
	}
	return p.At(i)
}

// Text returns the param as a string.
func (p Params) Text(i int, name string) (string, bool) {
	v, ok := p.Lookup(i, name)
	if !ok {
		return "", false
	}
	return ToString(v)
}

// Int returns the param as an int.
func (p Params) Int(i int, name string) (int, bool) {
	v, ok := p.Lookup(i, name)
	if !ok {
		return 0, false
	}
	return ToInt(v)
}

// Float returns the param as a float64.
func (p Params) Float(i int, name string) (float64, bool) {
	v, ok := p.Lookup(i, name)
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// Strings returns every positional param rendered as a string. A single
// list-valued param is flattened, so one_of accepts both "one_of:a,b" and
// Named("one_of", []string{"a", "b"}).
func (p Params) Strings() []string {
	args := p.args
	if len(args) == 1 {
		if items, ok := elements(args[0]); ok {
			args = items
		}
	}
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if s, ok := ToString(arg); ok {
			out = append(out, s)
		}
	}
	return out
}

// resolve replaces "@path" params with the referenced form values.
func (p Params) resolve(form map[string]any) Params {
	return p.mapTargets(func(path string) any {
		parsed, err := ParsePath(path)
		if err != nil {
			return nil
		}
		v, _ := parsed.Lookup(form)
		return v
	})
}

// display replaces "@path" params with the bare path, for message templates.
func (p Params) display() Params {
	return p.mapTargets(func(path string) any {
		return path
	})
}

// mapTargets rewrites every "@path" param, positional or named.
func (p Params) mapTargets(fn func(path string) any) Params {
	if !p.hasTargets() {
		return p
	}
	rewrite := func(v any) any {
		if s, ok := v.(string); ok && strings.HasPrefix(s, targetPrefix) {
			return fn(strings.TrimPrefix(s, targetPrefix))
		}
		return v
	}

	out := Params{}
	if len(p.args) > 0 {
		out.args = make([]any, len(p.args))
		for i, arg := range p.args {
			out.args[i] = rewrite(arg)
		}
	}
	if len(p.named) > 0 {
		out.named = make(map[string]any, len(p.named))
		for name, v := range p.named {
			out.named[name] = rewrite(v)
		}
	}
	return out
}

func (p Params) hasTargets() bool {
	isTarget := func(v any) bool {
		s, ok := v.(string)
		return ok && strings.HasPrefix(s, targetPrefix)
	}
	for _, arg := range p.args {
		if isTarget(arg) {
			return true
		}
	}
	for _, v := range p.named {
		if isTarget(v) {
			return true
		}
	}
	return false
}

// paramsFrom converts a loosely typed params value (from RuleMap or YAML) into
// Params: true or nil means no params, a list becomes positional params, a
// map becomes named params and any other scalar a single positional param.
func paramsFrom(v any) Params {
	switch pv := v.(type) {
	case nil, bool:
		return Params{}
	case Params:
		return pv
	case map[string]any:
		return NamedArgs(pv)
	}
	if items, ok := elements(v); ok {
		return Args(items...)
	}
	return Args(v)
}
