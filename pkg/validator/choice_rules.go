package validator

import "slices"

// oneOf accepts values listed in the params; every element of a list value
// must be listed.
func oneOf(value any, params Params) (bool, error) {
	allowed := params.Strings()
	return every(value, func(item any) bool {
		s, ok := ToString(item)
		return ok && slices.Contains(allowed, s)
	}), nil
}

func notOneOf(value any, params Params) (bool, error) {
	forbidden := params.Strings()
	return every(value, func(item any) bool {
		s, ok := ToString(item)
		return !ok || !slices.Contains(forbidden, s)
	}), nil
}
