package form

import "errors"

var (
	// ErrInvalidForm is returned by Submit when validation fails.
	ErrInvalidForm = errors.New("form is invalid")

	// ErrNotArray is returned by field array operations when the value at the
	// path is not a list.
	ErrNotArray = errors.New("field value is not an array")

	// ErrIndexOutOfRange is returned by field array operations for indexes
	// outside the list.
	ErrIndexOutOfRange = errors.New("field array index out of range")
)
