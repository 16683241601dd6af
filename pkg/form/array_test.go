package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
)

func TestFieldArray(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		op   func(f *form.Form) error
		want []any
	}{
		{"push", func(f *form.Form) error { return f.Push("items", "d") }, []any{"a", "b", "c", "d"}},
		{"prepend", func(f *form.Form) error { return f.Prepend("items", "z") }, []any{"z", "a", "b", "c"}},
		{"insert middle", func(f *form.Form) error { return f.Insert("items", 1, "x") }, []any{"a", "x", "b", "c"}},
		{"insert at end", func(f *form.Form) error { return f.Insert("items", 3, "x") }, []any{"a", "b", "c", "x"}},
		{"remove", func(f *form.Form) error { return f.Remove("items", 1) }, []any{"a", "c"}},
		{"swap", func(f *form.Form) error { return f.Swap("items", 0, 2) }, []any{"c", "b", "a"}},
		{"move forward", func(f *form.Form) error { return f.Move("items", 0, 2) }, []any{"b", "c", "a"}},
		{"move back", func(f *form.Form) error { return f.Move("items", 2, 0) }, []any{"c", "a", "b"}},
		{"update", func(f *form.Form) error { return f.Update("items", 1, "B") }, []any{"a", "B", "c"}},
		{"replace", func(f *form.Form) error { return f.Replace("items", []any{"q"}) }, []any{"q"}},
		{"replace with nil", func(f *form.Form) error { return f.Replace("items", nil) }, []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := form.New(form.WithInitialValues(map[string]any{"items": []string{"a", "b", "c"}}))
			require.NoError(t, tt.op(f))

			got, err := f.FieldArray("items")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, f.IsFieldDirty("items"))
		})
	}
}

func TestFieldArray_Errors(t *testing.T) {
	t.Parallel()

	f := form.New(form.WithInitialValues(map[string]any{
		"items": []any{"a"},
		"name":  "Jane",
	}))

	require.ErrorIs(t, f.Remove("items", 1), form.ErrIndexOutOfRange)
	require.ErrorIs(t, f.Insert("items", -1, "x"), form.ErrIndexOutOfRange)
	require.ErrorIs(t, f.Swap("items", 0, 5), form.ErrIndexOutOfRange)
	require.ErrorIs(t, f.Move("items", 3, 0), form.ErrIndexOutOfRange)
	require.ErrorIs(t, f.Update("items", 1, "x"), form.ErrIndexOutOfRange)
	require.ErrorIs(t, f.Push("name", "x"), form.ErrNotArray)
	_, err := f.FieldArray("name")
	require.ErrorIs(t, err, form.ErrNotArray)

	got, err := f.FieldArray("items")
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, got, "failed operations leave the list unchanged")
}

func TestFieldArray_MissingPath(t *testing.T) {
	t.Parallel()

	f := form.New()
	got, err := f.FieldArray("user.phones")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, f.Push("user.phones", map[string]any{"number": "123"}))
	require.NoError(t, f.Push("user.phones", map[string]any{"number": "456"}))

	v, ok := f.FieldValue("user.phones[1].number")
	require.True(t, ok)
	assert.Equal(t, "456", v)
}

func TestFieldArray_ShiftClearsItemState(t *testing.T) {
	t.Parallel()

	f := form.New(form.WithInitialValues(map[string]any{"items": []any{"a", "b"}}))
	f.SetFieldError("items[0]", "bad")
	f.SetFieldError("items", "too few")
	f.SetFieldTouched("items[1]", true)
	f.SetFieldTouched("items", true)

	require.NoError(t, f.Update("items", 0, "A"))
	assert.Equal(t, "bad", f.FieldError("items[0]"), "update keeps item state")

	require.NoError(t, f.Remove("items", 0))
	assert.Empty(t, f.FieldError("items[0]"))
	assert.False(t, f.IsFieldTouched("items[1]"))
	assert.Equal(t, "too few", f.FieldError("items"), "the array's own state is kept")
	assert.True(t, f.IsFieldTouched("items"))
}
