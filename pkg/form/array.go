package form

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Field array operations treat the value at path as a list. A missing or nil
// value is an empty list. Operations that shift items (Prepend, Insert,
// Remove, Swap, Move, Replace) clear the errors and touched state of the
// item paths below the array, since they no longer describe the same items.

// FieldArray returns a copy of the list at path.
func (f *Form) FieldArray(path string) ([]any, error) {
	p, err := validator.ParsePath(path)
	if err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	v, _ := p.Lookup(f.values)
	return toList(path, v)
}

// Push appends item to the list at path.
func (f *Form) Push(path string, item any) error {
	return f.mutateArray(path, false, func(list []any) ([]any, error) {
		return append(list, cloneValue(item)), nil
	})
}

// Prepend inserts item at the start of the list at path.
func (f *Form) Prepend(path string, item any) error {
	return f.mutateArray(path, true, func(list []any) ([]any, error) {
		return slices.Insert(list, 0, cloneValue(item)), nil
	})
}

// Insert inserts item at idx. idx may equal the list length.
func (f *Form) Insert(path string, idx int, item any) error {
	return f.mutateArray(path, true, func(list []any) ([]any, error) {
		if idx < 0 || idx > len(list) {
			return nil, indexErr(path, idx, len(list))
		}
		return slices.Insert(list, idx, cloneValue(item)), nil
	})
}

// Remove deletes the item at idx.
func (f *Form) Remove(path string, idx int) error {
	return f.mutateArray(path, true, func(list []any) ([]any, error) {
		if idx < 0 || idx >= len(list) {
			return nil, indexErr(path, idx, len(list))
		}
		return slices.Delete(list, idx, idx+1), nil
	})
}

// Swap exchanges the items at i and j.
func (f *Form) Swap(path string, i, j int) error {
	return f.mutateArray(path, true, func(list []any) ([]any, error) {
		for _, idx := range []int{i, j} {
			if idx < 0 || idx >= len(list) {
				return nil, indexErr(path, idx, len(list))
			}
		}
		list[i], list[j] = list[j], list[i]
		return list, nil
	})
}

// Move moves the item at from so that it ends up at index to.
func (f *Form) Move(path string, from, to int) error {
	return f.mutateArray(path, true, func(list []any) ([]any, error) {
		for _, idx := range []int{from, to} {
			if idx < 0 || idx >= len(list) {
				return nil, indexErr(path, idx, len(list))
			}
		}
		item := list[from]
		list = slices.Delete(list, from, from+1)
		return slices.Insert(list, to, item), nil
	})
}

// Update replaces the item at idx.
func (f *Form) Update(path string, idx int, item any) error {
	return f.mutateArray(path, false, func(list []any) ([]any, error) {
		if idx < 0 || idx >= len(list) {
			return nil, indexErr(path, idx, len(list))
		}
		list[idx] = cloneValue(item)
		return list, nil
	})
}

// Replace replaces the whole list.
func (f *Form) Replace(path string, items []any) error {
	return f.mutateArray(path, true, func([]any) ([]any, error) {
		out, _ := cloneValue(items).([]any)
		if out == nil {
			out = []any{}
		}
		return out, nil
	})
}

func (f *Form) mutateArray(path string, shifts bool, fn func([]any) ([]any, error)) error {
	p, err := validator.ParsePath(path)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	v, _ := p.Lookup(f.values)
	list, err := toList(path, v)
	if err != nil {
		return err
	}
	list, err = fn(list)
	if err != nil {
		return err
	}
	p.Set(f.values, list)
	if shifts {
		f.forgetItemsLocked(p)
	}
	return nil
}

// forgetItemsLocked clears errors and touched state of paths below parent.
func (f *Form) forgetItemsLocked(parent validator.Path) {
	below := func(path string) bool {
		p, err := validator.ParsePath(path)
		return err == nil && len(p) > len(parent) && p.HasPrefix(parent)
	}
	for path := range f.errors {
		if below(path) {
			delete(f.errors, path)
		}
	}
	for path := range f.touched {
		if below(path) {
			delete(f.touched, path)
		}
	}
}

// toList returns a copy of v as a list.
func toList(path string, v any) ([]any, error) {
	if v == nil {
		return []any{}, nil
	}
	list, ok := cloneValue(v).([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q holds %T", ErrNotArray, path, v)
	}
	if list == nil {
		list = []any{}
	}
	return list, nil
}

func indexErr(path string, idx, n int) error {
	return fmt.Errorf("%w: %q index %d, length %d", ErrIndexOutOfRange, path, idx, n)
}
