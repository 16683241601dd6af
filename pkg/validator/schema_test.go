package validator_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func signupSchema() validator.Schema {
	return validator.Schema{
		"email":    validator.Expr("required|email"),
		"password": validator.Expr("required|min:8"),
		"confirm":  validator.Expr("required|confirmed:@password"),
		"user": validator.Schema{
			"name":      validator.Expr("required|alpha_spaces"),
			"emails[0]": validator.Expr("email"),
		},
	}
}

func TestValidateSchema(t *testing.T) {
	t.Parallel()

	results, err := validator.ValidateSchema(context.Background(), signupSchema(), map[string]any{
		"email":    "john@example.com",
		"password": "secret123",
		"confirm":  "secret12",
		"user": map[string]any{
			"name":   "",
			"emails": []any{"not-an-email"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"confirm", "email", "password", "user.emails[0]", "user.name"}, results.Paths())
	assert.False(t, results.Valid())
	assert.True(t, results["email"].Valid)
	assert.True(t, results["password"].Valid)
	assert.Equal(t, []string{"confirm does not match password"}, results["confirm"].Errors)
	assert.Equal(t, []string{"user.emails[0] must be a valid email"}, results["user.emails[0]"].Errors)
	assert.Equal(t, []string{"user.name is required"}, results["user.name"].Errors)

	assert.Equal(t, map[string]string{
		"confirm":        "confirm does not match password",
		"user.emails[0]": "user.emails[0] must be a valid email",
		"user.name":      "user.name is required",
	}, results.FirstErrors())
	assert.Len(t, results.Errors(), 3)
}

func TestValidateSchema_MissingPathsAreNil(t *testing.T) {
	t.Parallel()

	results, err := validator.ValidateSchema(context.Background(), validator.Schema{
		"name":     validator.Expr("required"),
		"nickname": validator.Expr("min:3"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"name is required"}, results["name"].Errors)
	assert.True(t, results["nickname"].Valid)
}

func TestValidateSchema_FieldsAreIndependent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	values := map[string]any{"a": "", "b": "bee"}

	together, err := validator.ValidateSchema(ctx, validator.Schema{
		"a": validator.Expr("required"),
		"b": validator.Expr("required|min:2"),
	}, values)
	require.NoError(t, err)

	alone, err := validator.ValidateSchema(ctx, validator.Schema{
		"b": validator.Expr("required|min:2"),
	}, values)
	require.NoError(t, err)

	assert.Equal(t, alone["b"], together["b"])
}

func TestValidateSchema_LiteralPaths(t *testing.T) {
	t.Parallel()

	results, err := validator.ValidateSchema(context.Background(), validator.Schema{
		"[user.name]": validator.Expr("required"),
		"user.name":   validator.Expr("required"),
	}, map[string]any{"user.name": "Jane"})
	require.NoError(t, err)
	assert.True(t, results["[user.name]"].Valid)
	assert.False(t, results["user.name"].Valid)
}

func TestValidateSchema_NestedLiteralPaths(t *testing.T) {
	t.Parallel()

	results, err := validator.ValidateSchema(context.Background(), validator.Schema{
		"user": validator.Schema{
			"[a.b]": validator.Expr("required"),
			"name":  validator.Expr("required"),
		},
	}, map[string]any{
		"user": map[string]any{"a.b": "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"user.[a.b]", "user.name"}, results.Paths())
	assert.True(t, results["user.[a.b]"].Valid)
	assert.False(t, results["user.name"].Valid)
}

func TestValidateSchema_Labels(t *testing.T) {
	t.Parallel()

	results, err := validator.ValidateSchema(context.Background(),
		validator.Schema{"user.name": validator.Expr("required")},
		map[string]any{},
		validator.WithLabels(map[string]string{"user.name": "Full name"}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Full name is required"}, results["user.name"].Errors)
}

func TestValidateSchema_ConfigErrorsAreIsolated(t *testing.T) {
	t.Parallel()

	results, err := validator.ValidateSchema(context.Background(), validator.Schema{
		"user..name": validator.Expr("required"),
		"items[x]":   validator.Expr("required"),
		"email":      validator.Expr("required|nope"),
		"ok":         validator.Expr("required"),
	}, map[string]any{"ok": "yes"})
	require.Error(t, err)
	assert.ErrorIs(t, err, validator.ErrMalformedPath)
	assert.ErrorIs(t, err, validator.ErrUnknownRule)

	var cfgErr *validator.ConfigError
	require.True(t, errors.As(err, &cfgErr))

	require.Len(t, results, 1)
	assert.True(t, results["ok"].Valid)
}

func TestValidateSchema_ConfigErrorsAreLogged(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	engine := validator.New(validator.WithLogger(logger.New(logger.WithOutput(buf))))

	_, err := engine.ValidateSchema(context.Background(), validator.Schema{"a]": validator.Expr("required")}, nil)
	require.ErrorIs(t, err, validator.ErrMalformedPath)
	assert.Contains(t, buf.String(), "schema has invalid definitions")
}

func TestValidateSchema_ExhaustiveConcurrency(t *testing.T) {
	t.Parallel()

	var running, peak atomic.Int32
	reg := validator.DefaultRegistry().Clone()
	reg.Register("slow", func(_ context.Context, fc validator.FieldContext) (validator.Verdict, error) {
		n := running.Add(1)
		defer running.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		return validator.Check(fc.Value != nil), nil
	})

	engine := validator.New(
		validator.WithRegistry(reg),
		validator.WithBails(false),
		validator.WithConcurrency(3),
	)

	schema := validator.Schema{}
	values := map[string]any{}
	for i := range 20 {
		key := fmt.Sprintf("field%02d", i)
		schema[key] = validator.Expr("slow|required")
		if i%2 == 0 {
			values[key] = "set"
		}
	}

	results, err := engine.ValidateSchema(context.Background(), schema, values)
	require.NoError(t, err)
	require.Len(t, results, 20)
	assert.LessOrEqual(t, peak.Load(), int32(3))

	for i := range 20 {
		key := fmt.Sprintf("field%02d", i)
		if i%2 == 0 {
			assert.True(t, results[key].Valid, key)
			continue
		}
		assert.Equal(t, []string{key + " is not valid", key + " is required"}, results[key].Errors)
	}
}

func TestValidateSchema_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, bails := range []bool{true, false} {
		engine := validator.New(validator.WithBails(bails))
		_, err := engine.ValidateSchema(ctx, validator.Schema{"a": validator.Expr("required")}, nil)
		require.ErrorIs(t, err, context.Canceled)
	}
}

func TestSchemaResultErr(t *testing.T) {
	t.Parallel()

	valid := validator.SchemaResult{"a": validator.NewResult()}
	assert.NoError(t, valid.Err())

	invalid := validator.SchemaResult{
		"b": validator.NewResult("b is required"),
		"a": validator.NewResult("a is too short", "a is not an email"),
		"c": validator.NewResult(),
	}
	err := invalid.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, validator.ErrValidationFailed)
	assert.True(t, validator.IsValidationError(err))
	assert.Equal(t, "validation failed: a: a is too short; a: a is not an email; b: b is required", err.Error())

	verrs := validator.ExtractValidationErrors(fmt.Errorf("signup: %w", err))
	require.NotNil(t, verrs)
	assert.Equal(t, []string{"a", "b"}, verrs.Fields())
	assert.Equal(t, []string{"a is too short", "a is not an email"}, verrs.Get("a"))
	assert.True(t, verrs.Has("b"))
	assert.False(t, verrs.Has("c"))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
}

func TestSchemaFlatten(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		[]string{"confirm", "email", "password", "user.emails[0]", "user.name"},
		signupSchema().Paths(),
	)
}
