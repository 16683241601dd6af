package validator

import (
	"context"
	"regexp"
)

var (
	alphaRegex       = regexp.MustCompile(`^\p{L}+$`)
	alphaNumRegex    = regexp.MustCompile(`^[\p{L}\p{Nd}]+$`)
	alphaDashRegex   = regexp.MustCompile(`^[\p{L}\p{Nd}_-]+$`)
	alphaSpacesRegex = regexp.MustCompile(`^[\p{L}\s]+$`)
)

// required rejects empty values and false.
func required(_ context.Context, fc FieldContext) (Verdict, error) {
	if b, ok := fc.Value.(bool); ok {
		return Check(b), nil
	}
	return Check(!IsEmpty(fc.Value)), nil
}

// minLength checks that the value (or each list element) has at least n characters.
func minLength(value any, params Params) (bool, error) {
	n, ok := params.Int(0, "length")
	if !ok {
		return false, paramErr("length")
	}
	return every(value, func(item any) bool {
		s, ok := ToString(item)
		return ok && len([]rune(s)) >= n
	}), nil
}

// maxLength checks that the value (or each list element) has at most n characters.
func maxLength(value any, params Params) (bool, error) {
	n, ok := params.Int(0, "length")
	if !ok {
		return false, paramErr("length")
	}
	return every(value, func(item any) bool {
		s, ok := ToString(item)
		return ok && len([]rune(s)) <= n
	}), nil
}

// exactLength compares string length, or collection size for lists and maps.
func exactLength(value any, params Params) (bool, error) {
	n, ok := params.Int(0, "length")
	if !ok {
		return false, paramErr("length")
	}
	if l, ok := size(value); ok {
		return l == n, nil
	}
	s, ok := ToString(value)
	return ok && len([]rune(s)) == n, nil
}

// matchEvery checks the value (or each list element) against re.
func matchEvery(re *regexp.Regexp) checkFunc {
	return everyString(re.MatchString)
}
