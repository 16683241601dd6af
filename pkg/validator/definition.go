package validator

import (
	"fmt"
	"maps"
	"slices"
)

// Definition is a rule definition in any supported shape: Expr, Rule,
// RuleFunc, Rules, RuleMap or Schema.
type Definition interface {
	definition()
}

// Expr is a pipe-delimited rule expression, e.g. "required|min:3".
type Expr string

// Rule references a registered rule by name.
type Rule struct {
	Name   string
	Params Params
}

// Named references a registered rule with positional params.
func Named(name string, args ...any) Rule {
	return Rule{Name: name, Params: Args(args...)}
}

// NamedWith references a registered rule with named params.
func NamedWith(name string, params map[string]any) Rule {
	return Rule{Name: name, Params: NamedArgs(params)}
}

// Rules is an ordered list of definitions. Entries are flattened in order.
type Rules []Definition

// RuleMap maps rule names to params. A value of true or nil means no params,
// false disables the rule, a list is positional and a map is named. Keys are
// applied in lexical order; use Rules when order matters.
type RuleMap map[string]any

// Schema maps field paths to definitions. Values may be nested schemas, which
// are flattened into dotted paths.
type Schema map[string]Definition

func (Expr) definition()    {}
func (Rule) definition()    {}
func (Rules) definition()   {}
func (RuleMap) definition() {}
func (Schema) definition()  {}

// NormalizedRule is a resolved rule ready for execution.
type NormalizedRule struct {
	Name   string
	Params Params
	Fn     RuleFunc
}

// inlineRuleName is the name reported for inline rule functions.
const inlineRuleName = "inline"

// Normalize resolves a definition against the registry into an ordered list
// of rules. It is pure: the same definition and registry contents always
// yield the same list. Unknown rule names and malformed expressions are
// reported as *ConfigError.
func Normalize(reg *Registry, def Definition) ([]NormalizedRule, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	var out []NormalizedRule
	if err := normalizeInto(reg, def, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeInto(reg *Registry, def Definition, out *[]NormalizedRule) error {
	switch d := def.(type) {
	case nil:
		return nil
	case Expr:
		refs, err := ParseExpression(string(d))
		if err != nil {
			return err
		}
		for _, ref := range refs {
			if err := appendNamed(reg, ref.Name, ref.params(), out); err != nil {
				return err
			}
		}
	case Rule:
		return appendNamed(reg, d.Name, d.Params, out)
	case RuleFunc:
		if d == nil {
			return nil
		}
		*out = append(*out, NormalizedRule{Name: inlineRuleName, Fn: d})
	case Rules:
		for _, entry := range d {
			if err := normalizeInto(reg, entry, out); err != nil {
				return err
			}
		}
	case RuleMap:
		for _, name := range slices.Sorted(maps.Keys(d)) {
			if enabled, ok := d[name].(bool); ok && !enabled {
				continue
			}
			if err := appendNamed(reg, name, paramsFrom(d[name]), out); err != nil {
				return err
			}
		}
	case Schema:
		return configErr(ErrInvalidDefinition, "", "a schema cannot be combined with field rules")
	default:
		return configErr(ErrInvalidDefinition, "", fmt.Sprintf("unsupported definition type %T", def))
	}
	return nil
}

func appendNamed(reg *Registry, name string, params Params, out *[]NormalizedRule) error {
	fn, ok := reg.Lookup(name)
	if !ok {
		return configErr(ErrUnknownRule, name, "")
	}
	*out = append(*out, NormalizedRule{Name: name, Params: params, Fn: fn})
	return nil
}
