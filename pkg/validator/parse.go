package validator

import (
	"fmt"
	"strings"
)

const (
	ruleSeparator   = "|"
	paramsSeparator = ":"
	paramSeparator  = ","
)

// RuleRef is one rule token of a string expression.
type RuleRef struct {
	Name   string
	Params []string
}

// ParseExpression splits an expression such as "required|min:3|between:1,10"
// into rule references. The first colon separates the name from its params, so
// params themselves may contain colons ("regex:^\d{2}:\d{2}$"). An empty or
// blank expression yields no rules.
func ParseExpression(expr string) ([]RuleRef, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}

	tokens := strings.Split(expr, ruleSeparator)
	refs := make([]RuleRef, 0, len(tokens))
	for i, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, configErr(ErrMalformedExpression, "", fmt.Sprintf("empty rule at position %d in %q", i, expr))
		}

		name, rawParams, hasParams := strings.Cut(token, paramsSeparator)
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, configErr(ErrMalformedExpression, "", fmt.Sprintf("missing rule name in %q", token))
		}

		ref := RuleRef{Name: name}
		if hasParams {
			for _, param := range strings.Split(rawParams, paramSeparator) {
				param = strings.TrimSpace(param)
				if param == "" {
					return nil, configErr(ErrMalformedExpression, name, fmt.Sprintf("empty param in %q", token))
				}
				ref.Params = append(ref.Params, param)
			}
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// String renders the reference back into expression syntax.
func (r RuleRef) String() string {
	if len(r.Params) == 0 {
		return r.Name
	}
	return r.Name + paramsSeparator + strings.Join(r.Params, paramSeparator)
}

func (r RuleRef) params() Params {
	args := make([]any, len(r.Params))
	for i, p := range r.Params {
		args[i] = p
	}
	return Args(args...)
}
