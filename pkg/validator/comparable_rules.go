package validator

import (
	"context"
	"reflect"
)

// equal compares deeply first and falls back to the string forms, so "3"
// written in an expression matches an int 3 in the form values.
func equal(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	as, aok := ToString(a)
	bs, bok := ToString(b)
	return aok && bok && as == bs
}

// is requires the value to equal the "other" param. Unlike most rules it also
// evaluates empty values.
func is(_ context.Context, fc FieldContext) (Verdict, error) {
	other, ok := fc.Params.Lookup(0, "other")
	if !ok {
		return Fail(), paramErr("other")
	}
	return Check(equal(fc.Value, other)), nil
}

func isNot(_ context.Context, fc FieldContext) (Verdict, error) {
	other, ok := fc.Params.Lookup(0, "other")
	if !ok {
		return Fail(), paramErr("other")
	}
	return Check(!equal(fc.Value, other)), nil
}

// confirmed requires the value to equal another field, referenced as
// "confirmed:@password". An empty confirmation only passes when the target is
// empty too.
func confirmed(_ context.Context, fc FieldContext) (Verdict, error) {
	target, ok := fc.Params.Lookup(0, "target")
	if !ok {
		return Fail(), paramErr("target")
	}
	if IsEmpty(fc.Value) && IsEmpty(target) {
		return Pass(), nil
	}
	return Check(equal(fc.Value, target)), nil
}
