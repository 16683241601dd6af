package validator

import (
	"regexp"
	"unicode/utf8"
)

var (
	numericRegex = regexp.MustCompile(`^[0-9]+$`)
	integerRegex = regexp.MustCompile(`^-?[0-9]+$`)
)

func minValue(value any, params Params) (bool, error) {
	min, ok := params.Float(0, "min")
	if !ok {
		return false, paramErr("min")
	}
	return every(value, func(item any) bool {
		f, ok := ToFloat(item)
		return ok && f >= min
	}), nil
}

func maxValue(value any, params Params) (bool, error) {
	max, ok := params.Float(0, "max")
	if !ok {
		return false, paramErr("max")
	}
	return every(value, func(item any) bool {
		f, ok := ToFloat(item)
		return ok && f <= max
	}), nil
}

// between is inclusive on both ends.
func between(value any, params Params) (bool, error) {
	min, ok := params.Float(0, "min")
	if !ok {
		return false, paramErr("min")
	}
	max, ok := params.Float(1, "max")
	if !ok {
		return false, paramErr("max")
	}
	return every(value, func(item any) bool {
		f, ok := ToFloat(item)
		return ok && f >= min && f <= max
	}), nil
}

// digits requires exactly n decimal digits.
func digits(value any, params Params) (bool, error) {
	n, ok := params.Int(0, "length")
	if !ok {
		return false, paramErr("length")
	}
	return every(value, func(item any) bool {
		s, ok := ToString(item)
		return ok && numericRegex.MatchString(s) && utf8.RuneCountInString(s) == n
	}), nil
}
